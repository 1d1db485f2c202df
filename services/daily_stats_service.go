package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/AhmedZafar5533/fitness-sub000/models"
)

// DailyStatsService owns all mutations of the per-user-per-day aggregate.
// Daily buckets run midnight to midnight in the server's local timezone.
//
// The naive upsert-read-modify-write pattern loses updates when two
// requests for the same user race. Mutations here go through atomic column
// increments where possible, and any sequence that must read before
// writing (the add_meal transaction) holds the per-(user, day) lock for
// its duration.
type DailyStatsService struct {
	db *gorm.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewDailyStatsService(db *gorm.DB) *DailyStatsService {
	return &DailyStatsService{db: db, locks: make(map[string]*sync.Mutex)}
}

// DayWindow returns [startOfDay, endOfDay) for t in server-local time.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

// LockDay acquires the mutation lock for (userID, day) and returns its
// unlock func. Lock entries are kept for the process lifetime; the key
// space is bounded by active users per day.
func (s *DailyStatsService) LockDay(userID uint, day time.Time) func() {
	key := fmt.Sprintf("%d:%s", userID, day.Format("2006-01-02"))
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// UpsertToday finds today's aggregate for the user, creating it with
// default goals when absent. tx may be an open transaction.
func (s *DailyStatsService) UpsertToday(ctx context.Context, tx *gorm.DB, userID uint) (*models.DailyStats, error) {
	start, _ := DayWindow(time.Now())
	return s.UpsertDay(ctx, tx, userID, start)
}

// UpsertDay is UpsertToday for an explicit day bucket (start of day).
// Callers holding the day lock pass the same value they locked on, so the
// lock and the mutated row always refer to the same day.
func (s *DailyStatsService) UpsertDay(ctx context.Context, tx *gorm.DB, userID uint, day time.Time) (*models.DailyStats, error) {
	if tx == nil {
		tx = s.db
	}

	stats := models.DailyStats{
		UserID:      userID,
		Date:        day,
		WaterGoalMl: models.DefaultWaterGoalMl,
		CalorieGoal: models.DefaultCalorieGoal,
		MealIDs:     []uint{},
	}
	err := tx.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, day).
		FirstOrCreate(&stats).Error
	if err != nil {
		// A concurrent first-of-day request may have inserted the row
		// between our read and create; the (user_id, date) unique index
		// fails the loser. Re-read before giving up.
		var existing models.DailyStats
		ferr := tx.WithContext(ctx).
			Where("user_id = ? AND date = ?", userID, day).
			First(&existing).Error
		if ferr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &stats, nil
}

// ApplyMealDelta adds one meal's contribution to the aggregate inside tx:
// totals, the matching per-meal-type calorie bucket, and the meal_ids
// index. Numeric fields use atomic increments; the meal_ids append is a
// read-modify-write and relies on the caller holding the day lock.
func (s *DailyStatsService) ApplyMealDelta(ctx context.Context, tx *gorm.DB, stats *models.DailyStats, meal *models.Meal) error {
	updates := map[string]any{
		"calories": gorm.Expr("calories + ?", meal.Calories),
		"protein":  gorm.Expr("protein + ?", meal.Protein),
		"carbs":    gorm.Expr("carbs + ?", meal.Carbs),
		"fat":      gorm.Expr("fat + ?", meal.Fat),
		"fiber":    gorm.Expr("fiber + ?", meal.Fiber),
		"sugar":    gorm.Expr("sugar + ?", meal.Sugar),
		"sodium":   gorm.Expr("sodium + ?", meal.Sodium),
	}
	if col, ok := mealTypeBucket(meal.MealType); ok {
		updates[col] = gorm.Expr(col+" + ?", meal.Calories)
	}
	updates["meal_ids"] = append(stats.MealIDs, meal.ID)

	return tx.WithContext(ctx).
		Model(&models.DailyStats{}).
		Where("id = ?", stats.ID).
		Updates(updates).Error
}

// mealTypeBucket maps a meal type to its calorie-bucket column.
// Unrecognized types add to no bucket.
func mealTypeBucket(mealType string) (string, bool) {
	switch mealType {
	case models.MealBreakfast:
		return "breakfast_calories", true
	case models.MealLunch:
		return "lunch_calories", true
	case models.MealDinner:
		return "dinner_calories", true
	case models.MealSnack:
		return "snack_calories", true
	}
	return "", false
}

// AddWater atomically adds amountMl to today's water intake and returns the
// updated aggregate.
func (s *DailyStatsService) AddWater(ctx context.Context, userID uint, amountMl float64) (*models.DailyStats, error) {
	if amountMl <= 0 {
		return nil, fmt.Errorf("water amount must be positive")
	}
	stats, err := s.UpsertToday(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).
		Model(&models.DailyStats{}).
		Where("id = ?", stats.ID).
		UpdateColumn("water_ml", gorm.Expr("water_ml + ?", amountMl)).Error
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, stats.ID)
}

// SetGoal overwrites the calorie or water goal on today's aggregate.
func (s *DailyStatsService) SetGoal(ctx context.Context, userID uint, goalType string, amount float64) (*models.DailyStats, error) {
	stats, err := s.UpsertToday(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	var col string
	switch goalType {
	case "calorie":
		col = "calorie_goal"
	case "water":
		col = "water_goal_ml"
	default:
		return nil, fmt.Errorf("unknown goal type %q", goalType)
	}

	err = s.db.WithContext(ctx).
		Model(&models.DailyStats{}).
		Where("id = ?", stats.ID).
		UpdateColumn(col, amount).Error
	if err != nil {
		return nil, err
	}
	return s.reload(ctx, stats.ID)
}

// Today returns the current day's aggregate, creating it if needed.
func (s *DailyStatsService) Today(ctx context.Context, userID uint) (*models.DailyStats, error) {
	return s.UpsertToday(ctx, nil, userID)
}

func (s *DailyStatsService) reload(ctx context.Context, id uint) (*models.DailyStats, error) {
	var stats models.DailyStats
	if err := s.db.WithContext(ctx).First(&stats, id).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
