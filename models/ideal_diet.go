package models

import (
	"gorm.io/gorm"
)

// IdealDiet holds a user's daily nutritional targets. At most one per user;
// updates replace the whole profile including its meal rules.
type IdealDiet struct {
	gorm.Model
	UserID       string              `gorm:"uniqueIndex;not null" json:"userId"`
	IdealCarb    bool                `json:"ideal_carb"`
	IdealProtein bool                `json:"ideal_protein"`
	IdealVeggies bool                `json:"ideal_veggies"`
	Notes        string              `json:"notes"`
	MealRules    []IdealDietMealRule `gorm:"constraint:OnDelete:CASCADE" json:"mealRules"`
}

// IdealDietMealRule is a per-meal-type expectation ("breakfast should have
// carb+protein"). At most one rule per meal type within a diet.
type IdealDietMealRule struct {
	gorm.Model
	IdealDietID   uint   `gorm:"index;uniqueIndex:idx_diet_rule_type;not null" json:"-"`
	MealType      string `gorm:"size:16;uniqueIndex:idx_diet_rule_type;not null" json:"mealType"`
	ExpectCarb    bool   `json:"expect_carb"`
	ExpectProtein bool   `json:"expect_protein"`
	ExpectVeggies bool   `json:"expect_veggies"`
}
