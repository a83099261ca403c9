package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseMeals() []MealInput {
	return []MealInput{
		{Time: "08:00", Type: "breakfast", HasCarb: true, HasProtein: true, HasVeggies: false},
		{Time: "13:00", Type: "lunch", HasCarb: true, HasProtein: true, HasVeggies: true},
		{Time: "20:00", Type: "dinner", HasCarb: false, HasProtein: true, HasVeggies: true},
	}
}

func baseDiet() *DietInput {
	return &DietInput{
		IdealCarb:    true,
		IdealProtein: true,
		IdealVeggies: true,
		MealRules: []MealRuleInput{
			{MealType: "breakfast", ExpectCarb: true, ExpectProtein: true},
			{MealType: "lunch", ExpectCarb: true, ExpectProtein: true, ExpectVeggies: true},
			{MealType: "dinner", ExpectProtein: true, ExpectVeggies: true},
		},
	}
}

func TestCalculateDailyScoreFullDay(t *testing.T) {
	res := CalculateDailyScore(baseMeals(), baseDiet(), DefaultScoringConfig)

	assert.Equal(t, 30, res.Axes.Points)
	assert.True(t, res.Axes.Carb)
	assert.True(t, res.Axes.Protein)
	assert.True(t, res.Axes.Veggies)

	require.Len(t, res.MealMatching, 3)
	for _, m := range res.MealMatching {
		assert.Equal(t, MatchPerfect, m.MatchLevel, "rule for %s", m.MealType)
		assert.Equal(t, 15, m.Points)
		assert.True(t, m.HasMeal)
	}

	assert.True(t, res.VarietyBonus.Earned)
	assert.Equal(t, 10, res.VarietyBonus.Points)
	assert.False(t, res.PenaltyNone.Applied)

	// 30 axes + 45 matching + 10 variety + 0 penalty
	assert.Equal(t, 85, res.Total)
}

func TestCalculateDailyScoreIgnoresDisabledAxis(t *testing.T) {
	diet := &DietInput{IdealCarb: false, IdealProtein: true, IdealVeggies: true}
	res := CalculateDailyScore(baseMeals(), diet, DefaultScoringConfig)

	assert.False(t, res.Axes.Carb)
	assert.Equal(t, 20, res.Axes.Points)
}

func TestCalculateDailyScoreDefaultDietWhenNil(t *testing.T) {
	res := CalculateDailyScore(baseMeals(), nil, DefaultScoringConfig)

	// Default profile: all axes ideal, no rules.
	assert.Equal(t, 30, res.Axes.Points)
	assert.Empty(t, res.MealMatching)
	assert.Empty(t, res.MealRules)
	assert.Equal(t, 40, res.Total) // 30 axes + 10 variety
}

func TestCalculateDailyScoreZeroMeals(t *testing.T) {
	res := CalculateDailyScore(nil, baseDiet(), DefaultScoringConfig)

	assert.Equal(t, 0, res.Axes.Points)
	for _, m := range res.MealMatching {
		assert.Equal(t, MatchNone, m.MatchLevel)
		assert.False(t, m.HasMeal)
		assert.Equal(t, 0, m.Points)
	}
	assert.False(t, res.VarietyBonus.Earned)
	assert.True(t, res.PenaltyNone.Applied)
	assert.Equal(t, -10, res.PenaltyNone.Points)
	assert.Equal(t, -10, res.Total)
}

func TestCalculateDailyScoreMatchLevels(t *testing.T) {
	cases := []struct {
		name      string
		rule      MealRuleInput
		meal      MealInput
		wantLevel MatchLevel
		wantPts   int
	}{
		{
			name:      "perfect when all expected present",
			rule:      MealRuleInput{MealType: "breakfast", ExpectCarb: true, ExpectProtein: true},
			meal:      MealInput{Type: "breakfast", HasCarb: true, HasProtein: true},
			wantLevel: MatchPerfect,
			wantPts:   15,
		},
		{
			name:      "partial at half of expected",
			rule:      MealRuleInput{MealType: "lunch", ExpectCarb: true, ExpectProtein: true},
			meal:      MealInput{Type: "lunch", HasCarb: true},
			wantLevel: MatchPartial,
			wantPts:   8,
		},
		{
			name:      "low below half of expected",
			rule:      MealRuleInput{MealType: "lunch", ExpectCarb: true, ExpectProtein: true, ExpectVeggies: true},
			meal:      MealInput{Type: "lunch", HasCarb: true},
			wantLevel: MatchLow,
			wantPts:   3,
		},
		{
			name:      "none when nothing expected matches",
			rule:      MealRuleInput{MealType: "dinner", ExpectProtein: true},
			meal:      MealInput{Type: "dinner", HasCarb: true},
			wantLevel: MatchNone,
			wantPts:   0,
		},
		{
			name:      "none when rule expects nothing",
			rule:      MealRuleInput{MealType: "snack"},
			meal:      MealInput{Type: "snack", HasCarb: true, HasProtein: true, HasVeggies: true},
			wantLevel: MatchNone,
			wantPts:   0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			diet := &DietInput{MealRules: []MealRuleInput{tc.rule}}
			res := CalculateDailyScore([]MealInput{tc.meal}, diet, DefaultScoringConfig)

			require.Len(t, res.MealMatching, 1)
			assert.Equal(t, tc.wantLevel, res.MealMatching[0].MatchLevel)
			assert.Equal(t, tc.wantPts, res.MealMatching[0].Points)
		})
	}
}

func TestCalculateDailyScoreRuleWithoutMeal(t *testing.T) {
	diet := &DietInput{MealRules: []MealRuleInput{
		{MealType: "dinner", ExpectProtein: true, ExpectVeggies: true},
	}}
	res := CalculateDailyScore([]MealInput{{Type: "breakfast", HasCarb: true}}, diet, DefaultScoringConfig)

	require.Len(t, res.MealMatching, 1)
	assert.False(t, res.MealMatching[0].HasMeal)
	assert.Equal(t, MatchNone, res.MealMatching[0].MatchLevel)
	assert.Equal(t, NutrientFlags{}, res.MealMatching[0].ActualNutrients)
}

func TestCalculateDailyScoreLegacyRulesParallel(t *testing.T) {
	// The first breakfast misses protein, the second has everything. The
	// enhanced matching grades only the first; the legacy "met" check is
	// existential over all breakfasts. Their disagreement is expected and
	// the legacy points never reach the total.
	meals := []MealInput{
		{Time: "08:00", Type: "breakfast", HasCarb: true},
		{Time: "10:00", Type: "breakfast", HasCarb: true, HasProtein: true},
	}
	diet := &DietInput{MealRules: []MealRuleInput{
		{MealType: "breakfast", ExpectCarb: true, ExpectProtein: true},
	}}

	res := CalculateDailyScore(meals, diet, DefaultScoringConfig)

	require.Len(t, res.MealRules, 1)
	assert.True(t, res.MealRules[0].Met)
	assert.Equal(t, 5, res.MealRules[0].Points)

	require.Len(t, res.MealMatching, 1)
	assert.Equal(t, MatchPartial, res.MealMatching[0].MatchLevel)
	assert.Equal(t, 8, res.MealMatching[0].Points)

	// Daily ideals are all off here, so only the enhanced points reach the
	// total; the legacy 5 must not be added on top.
	assert.Equal(t, 8, res.Total)
}

func TestCalculateDailyScoreVarietyBonus(t *testing.T) {
	meals := []MealInput{
		{Time: "09:00", Type: "breakfast", HasCarb: true},
		{Time: "13:00", Type: "lunch", HasProtein: true, HasVeggies: true},
	}
	res := CalculateDailyScore(meals, &DietInput{}, DefaultScoringConfig)

	assert.True(t, res.VarietyBonus.Earned)
	assert.Equal(t, 10, res.VarietyBonus.Points)
}

func TestCalculateDailyScoreNoVarietyFromSingleMeal(t *testing.T) {
	// One meal covering everything is not "variety": the bonus needs a pair.
	meals := []MealInput{
		{Time: "13:00", Type: "lunch", HasCarb: true, HasProtein: true, HasVeggies: true},
	}
	res := CalculateDailyScore(meals, &DietInput{}, DefaultScoringConfig)

	assert.False(t, res.VarietyBonus.Earned)
}

func TestCalculateDailyScorePenaltyIgnoresDietToggles(t *testing.T) {
	// Meals exist but carry no nutrients at all; the penalty is about raw
	// presence, so disabled ideals don't prevent it.
	meals := []MealInput{{Time: "08:00", Type: "breakfast"}}
	res := CalculateDailyScore(meals, &DietInput{}, DefaultScoringConfig)

	assert.True(t, res.PenaltyNone.Applied)
	assert.Equal(t, -10, res.Total)
}

func TestCalculateDailyScoreDeterministic(t *testing.T) {
	a := CalculateDailyScore(baseMeals(), baseDiet(), DefaultScoringConfig)
	b := CalculateDailyScore(baseMeals(), baseDiet(), DefaultScoringConfig)
	assert.Equal(t, a, b)
}

func TestCalculateDailyScorePermutationInvariance(t *testing.T) {
	meals := baseMeals()
	reversed := []MealInput{meals[2], meals[1], meals[0]}

	a := CalculateDailyScore(meals, baseDiet(), DefaultScoringConfig)
	b := CalculateDailyScore(reversed, baseDiet(), DefaultScoringConfig)

	// Axes, variety and penalty depend only on the multiset of meals.
	assert.Equal(t, a.Axes, b.Axes)
	assert.Equal(t, a.VarietyBonus, b.VarietyBonus)
	assert.Equal(t, a.PenaltyNone, b.PenaltyNone)
}

func TestCalculateDailyScoreRuleMatchingIsOrderDependent(t *testing.T) {
	// Two breakfasts with different flags: the rule grades whichever comes
	// first, so reordering changes the match level. This is the documented
	// exception to permutation invariance.
	perfect := MealInput{Time: "08:00", Type: "breakfast", HasCarb: true, HasProtein: true}
	partial := MealInput{Time: "10:00", Type: "breakfast", HasCarb: true}
	diet := &DietInput{MealRules: []MealRuleInput{
		{MealType: "breakfast", ExpectCarb: true, ExpectProtein: true},
	}}

	a := CalculateDailyScore([]MealInput{perfect, partial}, diet, DefaultScoringConfig)
	b := CalculateDailyScore([]MealInput{partial, perfect}, diet, DefaultScoringConfig)

	assert.Equal(t, MatchPerfect, a.MealMatching[0].MatchLevel)
	assert.Equal(t, MatchPartial, b.MealMatching[0].MatchLevel)
}

func TestCalculateDailyScoreConfigOverrides(t *testing.T) {
	cfg := DefaultScoringConfig
	cfg.PointsAxis = 7
	cfg.PointsPerfectMatch = 20

	diet := &DietInput{
		IdealCarb: true,
		MealRules: []MealRuleInput{{MealType: "breakfast", ExpectCarb: true}},
	}
	meals := []MealInput{{Time: "08:00", Type: "breakfast", HasCarb: true}}

	res := CalculateDailyScore(meals, diet, cfg)
	assert.Equal(t, 7, res.Axes.Points)
	assert.Equal(t, 20, res.MealMatching[0].Points)
	assert.Equal(t, 27, res.Total)
}
