package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AhmedZafar5533/fitness-sub000/logger"
	"github.com/AhmedZafar5533/fitness-sub000/models"
	"github.com/AhmedZafar5533/fitness-sub000/services"
	"github.com/AhmedZafar5533/fitness-sub000/utils"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init()
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Meal{}, &models.DailyStats{}))
	return db
}

func newTestRecommendationController(t *testing.T) (*RecommendationController, uint) {
	t.Helper()

	db := setupTestDB(t)
	user := &models.User{Email: "test@example.com", Password: "hashed", DietType: models.DietNonVegetarian}
	require.NoError(t, db.Create(user).Error)

	catalog := services.NewFoodCatalog("testdata/food_catalog.json")
	require.NoError(t, catalog.Load())

	stats := services.NewDailyStatsService(db)
	return NewRecommendationController(
		services.NewRecommendationValidator(db, catalog, utils.KeywordPolicy{}),
		services.NewRecommendationExecutor(db, stats),
		services.NewNutritionContextBuilder(db, stats),
	), user.ID
}

func postApply(t *testing.T, rc *RecommendationController, userID uint, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/recommendations/apply", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("userID", userID)

	rc.Apply(c)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestApplySingleObjectUnderRecommendations(t *testing.T) {
	rc, userID := newTestRecommendationController(t)

	w, resp := postApply(t, rc, userID,
		`{"recommendations": {"type": "add_meal", "mealName": "banana", "mealType": "snack"}}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["valid"], 1)
	assert.Empty(t, resp["invalid"])

	results, ok := resp["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 1)
	assert.Equal(t, true, results[0].(map[string]any)["success"])
}

func TestApplySingleObjectUnderRecommendation(t *testing.T) {
	rc, userID := newTestRecommendationController(t)

	w, resp := postApply(t, rc, userID,
		`{"recommendation": {"type": "increase_water", "amount_ml": 500}}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["valid"], 1)
	assert.Empty(t, resp["invalid"])
}

func TestApplyArrayStillAccepted(t *testing.T) {
	rc, userID := newTestRecommendationController(t)

	w, resp := postApply(t, rc, userID,
		`{"recommendations": [{"type": "increase_water", "amount_ml": 250}, {"type": "adjust_goal", "goalType": "calorie", "amount": 2200}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["valid"], 2)
}

func TestApplyNonObjectScalarRejected(t *testing.T) {
	rc, userID := newTestRecommendationController(t)

	w, resp := postApply(t, rc, userID, `{"recommendations": "add_meal"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, resp["valid"])
	invalid, ok := resp["invalid"].([]any)
	require.True(t, ok)
	require.Len(t, invalid, 1)
	assert.Equal(t, "recommendations must be an array", invalid[0].(map[string]any)["reason"])
}

func TestApplyMissingBothKeys(t *testing.T) {
	rc, userID := newTestRecommendationController(t)

	w, _ := postApply(t, rc, userID, `{"other": 1}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
