package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AhmedZafar5533/fitness-sub000/logger"
	"github.com/AhmedZafar5533/fitness-sub000/models"
	"github.com/AhmedZafar5533/fitness-sub000/services"
	"github.com/AhmedZafar5533/fitness-sub000/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MealController handles manual and photo meal logging. Both paths funnel
// through the validator and executor so every write keeps the daily
// aggregate consistent.
type MealController struct {
	db          *gorm.DB
	validator   *services.RecommendationValidator
	executor    *services.RecommendationExecutor
	rekognition *services.RekognitionService
}

func NewMealController(
	db *gorm.DB,
	validator *services.RecommendationValidator,
	executor *services.RecommendationExecutor,
	rekognition *services.RekognitionService,
) *MealController {
	return &MealController{db: db, validator: validator, executor: executor, rekognition: rekognition}
}

// Log records a manually entered meal.
func (mc *MealController) Log(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	body["type"] = services.RecAddMeal

	mc.apply(c, body)
}

// LogPhoto classifies a meal photo, stores the image, and logs the
// recognized food through the same pipeline.
func (mc *MealController) LogPhoto(c *gin.Context) {
	var body struct {
		Image    string `json:"image"` // data URI
		MealType string `json:"mealType"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image required"})
		return
	}

	label, _, err := mc.rekognition.RecognizeFood(c.Request.Context(), body.Image)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	imagePath, err := utils.UploadMealPhoto(c.Request.Context(), body.Image)
	if err != nil {
		// The meal can still be logged; remember why the photo is missing.
		logger.Warn("meal photo upload failed", zap.Error(err))
		imagePath = ""
	}

	rec := map[string]any{
		"type":      services.RecAddMeal,
		"mealName":  label,
		"mealType":  body.MealType,
		"imagePath": imagePath,
	}
	mc.apply(c, rec)
}

func (mc *MealController) apply(c *gin.Context, rec map[string]any) {
	userID := c.GetUint("userID")

	result, err := mc.validator.Validate(c.Request.Context(), []any{rec}, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if len(result.Valid) == 0 {
		reason := "invalid meal"
		if len(result.Invalid) > 0 {
			reason = result.Invalid[0].Reason
		}
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": reason})
		return
	}

	results := mc.executor.Execute(c.Request.Context(), result.Valid, userID)
	if !results[0].Success {
		c.JSON(http.StatusInternalServerError, gin.H{"error": results[0].Error})
		return
	}
	c.JSON(http.StatusCreated, results[0])
}

// Recent lists the user's most recent meals.
func (mc *MealController) Recent(c *gin.Context) {
	userID := c.GetUint("userID")

	var meals []models.Meal
	err := mc.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("time DESC").
		Limit(20).
		Find(&meals).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, meals)
}
