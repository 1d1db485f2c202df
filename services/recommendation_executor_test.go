package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AhmedZafar5533/fitness-sub000/models"
)

func newTestExecutor(t *testing.T) (*RecommendationExecutor, *DailyStatsService, *gorm.DB, uint) {
	t.Helper()
	db := setupTestDB(t)
	user := createTestUser(t, db, models.DietNonVegetarian, nil)
	stats := NewDailyStatsService(db)
	return NewRecommendationExecutor(db, stats), stats, db, user.ID
}

func mealRec(name, mealType string, calories, protein float64) ValidatedRecommendation {
	return ValidatedRecommendation{
		Type:     RecAddMeal,
		MealName: name,
		MealType: mealType,
		Calories: calories,
		Protein:  protein,
	}
}

func TestExecuteAddMealAggregateConservation(t *testing.T) {
	exec, stats, db, userID := newTestExecutor(t)
	ctx := context.Background()

	batch := []ValidatedRecommendation{
		mealRec("Oatmeal", models.MealBreakfast, 158, 6),
		mealRec("Grilled Chicken Breast", models.MealLunch, 284, 53),
		mealRec("Banana", models.MealSnack, 105, 1.3),
	}
	results := exec.Execute(ctx, batch, userID)
	require.Len(t, results, 3)
	for _, res := range results {
		require.True(t, res.Success, res.Error)
		assert.NotZero(t, res.MealID)
	}

	today, err := stats.Today(ctx, userID)
	require.NoError(t, err)

	// Totals equal the sum of the applied meals' contributions.
	assert.InDelta(t, 158+284+105, today.Calories, 1e-9)
	assert.InDelta(t, 6+53+1.3, today.Protein, 1e-9)
	assert.InDelta(t, 158, today.BreakfastCalories, 1e-9)
	assert.InDelta(t, 284, today.LunchCalories, 1e-9)
	assert.InDelta(t, 0, today.DinnerCalories, 1e-9)
	assert.InDelta(t, 105, today.SnackCalories, 1e-9)

	require.Len(t, today.MealIDs, 3)
	var meals []models.Meal
	require.NoError(t, db.Where("user_id = ?", userID).Order("id").Find(&meals).Error)
	require.Len(t, meals, 3)
	for i, meal := range meals {
		assert.Equal(t, meal.ID, today.MealIDs[i])
	}
}

func TestExecuteAddMealUnknownBucket(t *testing.T) {
	exec, stats, _, userID := newTestExecutor(t)
	ctx := context.Background()

	results := exec.Execute(ctx, []ValidatedRecommendation{
		mealRec("Midnight Toast", "supper", 120, 3),
	}, userID)
	require.True(t, results[0].Success)

	today, err := stats.Today(ctx, userID)
	require.NoError(t, err)
	// Totals move; no per-type bucket does.
	assert.InDelta(t, 120, today.Calories, 1e-9)
	assert.Zero(t, today.BreakfastCalories+today.LunchCalories+today.DinnerCalories+today.SnackCalories)
}

func TestExecuteIncreaseWater(t *testing.T) {
	exec, stats, _, userID := newTestExecutor(t)
	ctx := context.Background()

	results := exec.Execute(ctx, []ValidatedRecommendation{
		{Type: RecIncreaseWater, AmountMl: 500},
	}, userID)
	require.Len(t, results, 1)
	require.True(t, results[0].Success, results[0].Error)
	assert.Equal(t, 500.0, results[0].AmountMl)
	require.NotNil(t, results[0].Stats)
	assert.Equal(t, 500.0, results[0].Stats.WaterMl)

	today, err := stats.Today(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 500.0, today.WaterMl)

	// Defensive rejection of a non-positive amount.
	bad := exec.Execute(ctx, []ValidatedRecommendation{{Type: RecIncreaseWater, AmountMl: 0}}, userID)
	assert.False(t, bad[0].Success)
}

func TestExecuteAdjustGoal(t *testing.T) {
	exec, _, _, userID := newTestExecutor(t)
	ctx := context.Background()

	results := exec.Execute(ctx, []ValidatedRecommendation{
		{Type: RecAdjustGoal, GoalType: "calorie", Amount: 2200},
		{Type: RecAdjustGoal, GoalType: "water", Amount: 3000},
	}, userID)
	require.Len(t, results, 2)
	require.True(t, results[0].Success, results[0].Error)
	require.True(t, results[1].Success, results[1].Error)
	assert.Equal(t, 2200.0, results[1].Stats.CalorieGoal)
	assert.Equal(t, 3000.0, results[1].Stats.WaterGoalMl)
}

func TestExecuteUnknownTypeAndIsolation(t *testing.T) {
	exec, stats, _, userID := newTestExecutor(t)
	ctx := context.Background()

	results := exec.Execute(ctx, []ValidatedRecommendation{
		{Type: "launch_rocket"},
		{Type: RecIncreaseWater, AmountMl: 250},
	}, userID)
	require.Len(t, results, 2)

	assert.False(t, results[0].Success)
	assert.Equal(t, "unknown type", results[0].Error)

	// The failure did not abort the rest of the batch.
	require.True(t, results[1].Success, results[1].Error)

	today, err := stats.Today(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 250.0, today.WaterMl)
}

func TestExecuteAddMealRollsBackOnAggregateFailure(t *testing.T) {
	exec, stats, db, userID := newTestExecutor(t)
	ctx := context.Background()

	// Seed today's aggregate with one successful meal.
	seed := exec.Execute(ctx, []ValidatedRecommendation{
		mealRec("Oatmeal", models.MealBreakfast, 158, 6),
	}, userID)
	require.True(t, seed[0].Success, seed[0].Error)
	before, err := stats.Today(ctx, userID)
	require.NoError(t, err)

	// Force the aggregate-update step to fail.
	fail := true
	err = db.Callback().Update().Before("gorm:update").Register("test:force_fail", func(tx *gorm.DB) {
		if fail && tx.Statement.Table == "daily_stats" {
			tx.AddError(errors.New("simulated storage failure"))
		}
	})
	require.NoError(t, err)
	defer db.Callback().Update().Remove("test:force_fail")

	results := exec.Execute(ctx, []ValidatedRecommendation{
		mealRec("Banana", models.MealSnack, 105, 1.3),
	}, userID)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Contains(t, results[0].Error, "simulated storage failure")

	fail = false

	// Neither the Meal nor the aggregate update survived the rollback.
	var count int64
	require.NoError(t, db.Model(&models.Meal{}).
		Where("user_id = ? AND meal_name = ?", userID, "Banana").
		Count(&count).Error)
	assert.Zero(t, count)

	after, err := stats.Today(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, before.Calories, after.Calories)
	assert.Equal(t, before.SnackCalories, after.SnackCalories)
	assert.Equal(t, len(before.MealIDs), len(after.MealIDs))
}

func TestDayWindow(t *testing.T) {
	at := time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local)
	start, end := DayWindow(at)
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local), start)
	assert.Equal(t, start.Add(24*time.Hour), end)
}
