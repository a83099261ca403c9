package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal types as stored in the DB and accepted by the API.
const (
	MealTypeBreakfast = "breakfast"
	MealTypeLunch     = "lunch"
	MealTypeDinner    = "dinner"
	MealTypeSnack     = "snack"
)

func ValidMealType(t string) bool {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return true
	}
	return false
}

// One logged meal. Date is normalized to UTC midnight before it reaches
// this model; Time is the wall-clock HH:MM of the meal.
// The (user, date, time, type, items) tuple is unique so re-submitting an
// identical meal is an upsert, not a duplicate row.
type Meal struct {
	gorm.Model
	UserID     string    `gorm:"index;uniqueIndex:idx_meal_identity;not null" json:"userId"`
	Date       time.Time `gorm:"uniqueIndex:idx_meal_identity;not null" json:"date"`
	Time       string    `gorm:"size:5;uniqueIndex:idx_meal_identity;not null" json:"time"`
	Type       string    `gorm:"size:16;uniqueIndex:idx_meal_identity;not null" json:"type"`
	Items      string    `gorm:"uniqueIndex:idx_meal_identity" json:"items"`
	HasCarb    bool      `json:"has_carb"`
	HasProtein bool      `json:"has_protein"`
	HasVeggies bool      `json:"has_veggies"`
	Notes      string    `json:"notes"`
}
