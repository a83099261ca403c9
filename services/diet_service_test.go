package services

import (
	"context"
	"testing"

	"github.com/carolinaesses/comocomo/models"
	"github.com/carolinaesses/comocomo/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDietService(t *testing.T) (*DietService, *gorm.DB) {
	t.Helper()
	scoring, db := newTestScoringService(t)
	return NewDietService(db, scoring, zap.NewNop()), db
}

func TestGetDietReturnsNilWhenMissing(t *testing.T) {
	svc, _ := newTestDietService(t)

	diet, err := svc.GetDiet(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, diet)
}

func TestUpsertDietCreatesProfile(t *testing.T) {
	svc, _ := newTestDietService(t)
	ctx := context.Background()

	diet, err := svc.UpsertDiet(ctx, "user-1", DietRequest{
		IdealCarb:    true,
		IdealProtein: true,
		IdealVeggies: false,
		Notes:        "cutting",
		MealRules: []DietRuleRequest{
			{MealType: "breakfast", ExpectCarb: true, ExpectProtein: true},
			{MealType: "dinner", ExpectProtein: true, ExpectVeggies: true},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, diet)
	assert.True(t, diet.IdealCarb)
	assert.False(t, diet.IdealVeggies)
	assert.Len(t, diet.MealRules, 2)
}

func TestUpsertDietReplacesRulesWholesale(t *testing.T) {
	svc, db := newTestDietService(t)
	ctx := context.Background()

	_, err := svc.UpsertDiet(ctx, "user-1", DietRequest{
		IdealCarb: true,
		MealRules: []DietRuleRequest{
			{MealType: "breakfast", ExpectCarb: true},
			{MealType: "lunch", ExpectVeggies: true},
		},
	})
	require.NoError(t, err)

	diet, err := svc.UpsertDiet(ctx, "user-1", DietRequest{
		IdealProtein: true,
		MealRules: []DietRuleRequest{
			{MealType: "snack", ExpectProtein: true},
		},
	})
	require.NoError(t, err)
	require.Len(t, diet.MealRules, 1)
	assert.Equal(t, "snack", diet.MealRules[0].MealType)
	assert.False(t, diet.IdealCarb)
	assert.True(t, diet.IdealProtein)

	// Only one profile row per user, old rules really gone.
	var dietCount, ruleCount int64
	require.NoError(t, db.Model(&models.IdealDiet{}).Where("user_id = ?", "user-1").Count(&dietCount).Error)
	require.NoError(t, db.Model(&models.IdealDietMealRule{}).Count(&ruleCount).Error)
	assert.EqualValues(t, 1, dietCount)
	assert.EqualValues(t, 1, ruleCount)
}

func TestUpsertDietKeepsRuleTypeAcrossUpserts(t *testing.T) {
	svc, db := newTestDietService(t)
	ctx := context.Background()

	req := DietRequest{
		IdealCarb: true,
		MealRules: []DietRuleRequest{{MealType: "breakfast", ExpectCarb: true}},
	}
	_, err := svc.UpsertDiet(ctx, "user-1", req)
	require.NoError(t, err)

	// Tweak a flag while keeping the same meal type; the replaced rule must
	// not linger in the unique index and block the new one.
	req.MealRules[0].ExpectProtein = true
	diet, err := svc.UpsertDiet(ctx, "user-1", req)
	require.NoError(t, err)
	require.Len(t, diet.MealRules, 1)
	assert.Equal(t, "breakfast", diet.MealRules[0].MealType)
	assert.True(t, diet.MealRules[0].ExpectProtein)

	// Unscoped count: replaced rules are gone from the table, not just hidden.
	var ruleCount int64
	require.NoError(t, db.Unscoped().Model(&models.IdealDietMealRule{}).Count(&ruleCount).Error)
	assert.EqualValues(t, 1, ruleCount)
}

func TestUpsertDietRejectsInvalidRules(t *testing.T) {
	svc, _ := newTestDietService(t)
	ctx := context.Background()

	_, err := svc.UpsertDiet(ctx, "user-1", DietRequest{
		MealRules: []DietRuleRequest{{MealType: "brunch"}},
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpsertDiet(ctx, "user-1", DietRequest{
		MealRules: []DietRuleRequest{
			{MealType: "lunch", ExpectCarb: true},
			{MealType: "lunch", ExpectVeggies: true},
		},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpsertDietRescoresTrailingWindow(t *testing.T) {
	svc, db := newTestDietService(t)
	ctx := context.Background()
	today := utils.Today()

	seedMeal(t, db, "user-1", utils.FormatDate(today), "08:00", "breakfast", true, true, false)

	_, err := svc.UpsertDiet(ctx, "user-1", DietRequest{IdealCarb: true})
	require.NoError(t, err)

	var score models.DailyScore
	require.NoError(t, db.Where("user_id = ? AND date = ?", "user-1", today).First(&score).Error)
	// only the carb axis counts under the new profile
	assert.Equal(t, 10, score.Score)
}
