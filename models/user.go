package models

import (
    "gorm.io/datatypes"
    "gorm.io/gorm"
)

// Diet types the content policy understands.
const (
    DietVegetarian    = "vegetarian"
    DietNonVegetarian = "non-vegetarian"
    DietVegan         = "vegan"
    DietPescatarian   = "pescatarian"
)

type User struct {
    gorm.Model
    Email    string `gorm:"uniqueIndex;not null" json:"email"`
    Password string `gorm:"not null" json:"-"`
    FullName string `json:"fullName"`

    // Dietary profile read by the recommendation validator.
    DietType  string                      `json:"dietType"` // vegetarian|non-vegetarian|vegan|pescatarian
    Allergies datatypes.JSONSlice[string] `json:"allergies"`
}
