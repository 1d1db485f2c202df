package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AhmedZafar5533/fitness-sub000/logger"
	"github.com/AhmedZafar5533/fitness-sub000/models"
)

// ExecutionResult is the per-item outcome of applying one validated
// recommendation.
type ExecutionResult struct {
	Rec     ValidatedRecommendation `json:"rec"`
	Success bool                    `json:"success"`
	Error   string                  `json:"error,omitempty"`

	MealID   uint               `json:"mealId,omitempty"`
	Stats    *models.DailyStats `json:"stats,omitempty"`
	AmountMl float64            `json:"amount_ml,omitempty"`
}

// RecommendationExecutor applies validated recommendations as atomic state
// transitions against stored meals and the daily aggregate. Items are
// processed sequentially in input order; one failure never aborts the rest
// of the batch.
type RecommendationExecutor struct {
	db    *gorm.DB
	stats *DailyStatsService
}

func NewRecommendationExecutor(db *gorm.DB, stats *DailyStatsService) *RecommendationExecutor {
	return &RecommendationExecutor{db: db, stats: stats}
}

func (e *RecommendationExecutor) Execute(ctx context.Context, recs []ValidatedRecommendation, userID uint) []ExecutionResult {
	results := make([]ExecutionResult, 0, len(recs))
	for _, rec := range recs {
		res := e.executeOne(ctx, rec, userID)
		if !res.Success {
			logger.Warn("recommendation failed to apply",
				zap.Uint("userID", userID),
				zap.String("type", rec.Type),
				zap.String("error", res.Error))
		}
		results = append(results, res)
	}
	return results
}

// executeOne is the uniform attempt-and-report wrapper: every
// recommendation type surfaces storage failures the same way.
func (e *RecommendationExecutor) executeOne(ctx context.Context, rec ValidatedRecommendation, userID uint) ExecutionResult {
	res := ExecutionResult{Rec: rec}

	var err error
	switch rec.Type {
	case RecAddMeal:
		err = e.addMeal(ctx, rec, userID, &res)
	case RecIncreaseWater:
		err = e.increaseWater(ctx, rec, userID, &res)
	case RecAdjustGoal:
		err = e.adjustGoal(ctx, rec, userID, &res)
	default:
		err = fmt.Errorf("unknown type")
	}

	if err != nil {
		res.Success = false
		res.Error = err.Error()
	} else {
		res.Success = true
	}
	return res
}

// addMeal inserts the Meal and applies its aggregate delta in one
// transaction: either both persist or neither does. The day lock is held
// across the transaction so a concurrent add for the same user and day
// cannot interleave with the aggregate read-modify-write.
func (e *RecommendationExecutor) addMeal(ctx context.Context, rec ValidatedRecommendation, userID uint, res *ExecutionResult) error {
	now := time.Now()
	day, _ := DayWindow(now)
	unlock := e.stats.LockDay(userID, day)
	defer unlock()

	return e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meal := models.Meal{
			UserID:    userID,
			MealType:  rec.MealType,
			MealName:  rec.MealName,
			Time:      now,
			Calories:  rec.Calories,
			Protein:   rec.Protein,
			Carbs:     rec.Carbs,
			Fat:       rec.Fat,
			Fiber:     rec.Fiber,
			Sugar:     rec.Sugar,
			Sodium:    rec.Sodium,
			ImagePath: rec.ImagePath,
		}
		if err := tx.Create(&meal).Error; err != nil {
			return err
		}

		stats, err := e.stats.UpsertDay(ctx, tx, userID, day)
		if err != nil {
			return err
		}
		if err := e.stats.ApplyMealDelta(ctx, tx, stats, &meal); err != nil {
			return err
		}

		res.MealID = meal.ID
		return nil
	})
}

func (e *RecommendationExecutor) increaseWater(ctx context.Context, rec ValidatedRecommendation, userID uint, res *ExecutionResult) error {
	// Redundant with validation, kept as defense in depth.
	if rec.AmountMl <= 0 {
		return fmt.Errorf("invalid water amount")
	}
	stats, err := e.stats.AddWater(ctx, userID, rec.AmountMl)
	if err != nil {
		return err
	}
	res.Stats = stats
	res.AmountMl = rec.AmountMl
	return nil
}

func (e *RecommendationExecutor) adjustGoal(ctx context.Context, rec ValidatedRecommendation, userID uint, res *ExecutionResult) error {
	stats, err := e.stats.SetGoal(ctx, userID, rec.GoalType, rec.Amount)
	if err != nil {
		return err
	}
	res.Stats = stats
	return nil
}
