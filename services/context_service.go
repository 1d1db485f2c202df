package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/AhmedZafar5533/fitness-sub000/models"
)

const recentMealLimit = 5

// NutritionContext is the read-only snapshot that seeds the
// recommendation-generating conversation: the user's dietary profile,
// today's running totals, and their most recent meals.
type NutritionContext struct {
	Profile     *models.User       `json:"profile"`
	TodayStats  *models.DailyStats `json:"todayStats"`
	RecentMeals []models.Meal      `json:"recentMeals"`
}

// NutritionContextBuilder assembles NutritionContext snapshots. It only
// reads state; recommendations derived from its output come back through
// the validator before anything mutates.
type NutritionContextBuilder struct {
	db    *gorm.DB
	stats *DailyStatsService
}

func NewNutritionContextBuilder(db *gorm.DB, stats *DailyStatsService) *NutritionContextBuilder {
	return &NutritionContextBuilder{db: db, stats: stats}
}

func (b *NutritionContextBuilder) Build(ctx context.Context, userID uint) (*NutritionContext, error) {
	var user models.User
	if err := b.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}

	stats, err := b.stats.Today(ctx, userID)
	if err != nil {
		return nil, err
	}

	var meals []models.Meal
	err = b.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("time DESC").
		Limit(recentMealLimit).
		Find(&meals).Error
	if err != nil {
		return nil, err
	}

	return &NutritionContext{
		Profile:     &user,
		TodayStats:  stats,
		RecentMeals: meals,
	}, nil
}
