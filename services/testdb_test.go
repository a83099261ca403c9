package services

import (
	"testing"
	"time"

	"github.com/carolinaesses/comocomo/models"
	"github.com/carolinaesses/comocomo/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Meal{},
		&models.IdealDiet{},
		&models.IdealDietMealRule{},
		&models.DailyScore{},
	))
	return db
}

func newTestScoringService(t *testing.T) (*ScoringService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewScoringService(db, zap.NewNop()), db
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := utils.NormalizeDate(s)
	require.NoError(t, err)
	return d
}

func seedMeal(t *testing.T, db *gorm.DB, userID, date, hhmm, mealType string, carb, protein, veggies bool) {
	t.Helper()
	meal := models.Meal{
		UserID:     userID,
		Date:       mustDate(t, date),
		Time:       hhmm,
		Type:       mealType,
		Items:      mealType + " at " + hhmm,
		HasCarb:    carb,
		HasProtein: protein,
		HasVeggies: veggies,
	}
	require.NoError(t, db.Create(&meal).Error)
}

func seedDiet(t *testing.T, db *gorm.DB, userID string, rules []models.IdealDietMealRule) {
	t.Helper()
	diet := models.IdealDiet{
		UserID:       userID,
		IdealCarb:    true,
		IdealProtein: true,
		IdealVeggies: true,
		MealRules:    rules,
	}
	require.NoError(t, db.Create(&diet).Error)
}
