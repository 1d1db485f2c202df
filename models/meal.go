package models

import (
    "time"

    "gorm.io/gorm"
)

// Meal types used for the per-type calorie buckets on DailyStats.
const (
    MealBreakfast = "breakfast"
    MealLunch     = "lunch"
    MealDinner    = "dinner"
    MealSnack     = "snack"
)

// Meal is one logged meal with its nutrition snapshot. Meals are created
// by the executor (or the manual logging endpoint) and never mutated.
type Meal struct {
    gorm.Model
    UserID   uint      `gorm:"index;not null" json:"userId"`
    MealType string    `json:"mealType"` // breakfast|lunch|dinner|snack
    MealName string    `json:"mealName"`
    Time     time.Time `gorm:"index" json:"time"`

    Calories float64 `json:"calories"`
    Protein  float64 `json:"protein"`
    Carbs    float64 `json:"carbs"`
    Fat      float64 `json:"fat"`
    Fiber    float64 `json:"fiber"`
    Sugar    float64 `json:"sugar"`
    Sodium   float64 `json:"sodium"` // mg

    ImagePath string `json:"imagePath,omitempty"`
}
