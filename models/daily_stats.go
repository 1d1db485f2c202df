package models

import (
    "time"

    "gorm.io/datatypes"
    "gorm.io/gorm"
)

// Default goals applied when a day's stats row is first created.
const (
    DefaultCalorieGoal = 2000
    DefaultWaterGoalMl = 2000
)

// DailyStats is the per-user-per-day aggregate: running nutrition totals,
// water intake and goals, plus per-meal-type calorie buckets. Exactly one
// row exists per (user_id, date) where date is the start of the server-local
// day. The meal_ids column is a derived index over the Meal table; the Meal
// rows remain the source of truth.
type DailyStats struct {
    gorm.Model
    UserID uint      `gorm:"not null;uniqueIndex:idx_user_day" json:"userId"`
    Date   time.Time `gorm:"not null;uniqueIndex:idx_user_day" json:"date"`

    Calories float64 `json:"calories"`
    Protein  float64 `json:"protein"`
    Carbs    float64 `json:"carbs"`
    Fat      float64 `json:"fat"`
    Fiber    float64 `json:"fiber"`
    Sugar    float64 `json:"sugar"`
    Sodium   float64 `json:"sodium"` // mg

    WaterMl     float64 `json:"water_ml"`
    WaterGoalMl float64 `json:"water_goal_ml"`
    CalorieGoal float64 `json:"calorie_goal"`

    BreakfastCalories float64 `json:"breakFastCalories"`
    LunchCalories     float64 `json:"lunchCalories"`
    DinnerCalories    float64 `json:"dinnerCalories"`
    SnackCalories     float64 `json:"snackCalories"`

    MealIDs datatypes.JSONSlice[uint] `json:"mealIds"`
}
