package services

// Daily nutrition scoring. Pure computation: a day's meals plus the user's
// ideal-diet profile in, a point breakdown out. No I/O, safe to call
// concurrently.

type MealInput struct {
	Time       string `json:"time"` // HH:MM
	Type       string `json:"type"`
	HasCarb    bool   `json:"has_carb"`
	HasProtein bool   `json:"has_protein"`
	HasVeggies bool   `json:"has_veggies"`
}

type MealRuleInput struct {
	MealType      string `json:"mealType"`
	ExpectCarb    bool   `json:"expect_carb"`
	ExpectProtein bool   `json:"expect_protein"`
	ExpectVeggies bool   `json:"expect_veggies"`
}

type DietInput struct {
	IdealCarb    bool            `json:"ideal_carb"`
	IdealProtein bool            `json:"ideal_protein"`
	IdealVeggies bool            `json:"ideal_veggies"`
	MealRules    []MealRuleInput `json:"mealRules"`
}

type ScoringConfig struct {
	PointsAxis         int `json:"points_axis"`
	PointsRule         int `json:"points_rule"`
	BonusVariety       int `json:"bonus_variety"`
	PenaltyNone        int `json:"penalty_none"`
	PointsPerfectMatch int `json:"points_perfect_match"`
	PointsPartialMatch int `json:"points_partial_match"`
	PointsLowMatch     int `json:"points_low_match"`
}

var DefaultScoringConfig = ScoringConfig{
	PointsAxis:         10,
	PointsRule:         5,
	BonusVariety:       10,
	PenaltyNone:        10,
	PointsPerfectMatch: 15,
	PointsPartialMatch: 8,
	PointsLowMatch:     3,
}

type MatchLevel string

const (
	MatchPerfect MatchLevel = "perfect"
	MatchPartial MatchLevel = "partial"
	MatchLow     MatchLevel = "low"
	MatchNone    MatchLevel = "none"
)

type NutrientFlags struct {
	Carb    bool `json:"carb"`
	Protein bool `json:"protein"`
	Veggies bool `json:"veggies"`
}

type AxesResult struct {
	Carb    bool `json:"carb"`
	Protein bool `json:"protein"`
	Veggies bool `json:"veggies"`
	Points  int  `json:"points"`
}

// Legacy binary rule result, kept for API shape compatibility. Not part of
// the total: the graded MealMatchResult points replaced it.
type MealRuleResult struct {
	MealType string `json:"mealType"`
	Met      bool   `json:"met"`
	Points   int    `json:"points"`
}

type MealMatchResult struct {
	MealType          string        `json:"mealType"`
	HasMeal           bool          `json:"hasMeal"`
	ExpectedNutrients NutrientFlags `json:"expectedNutrients"`
	ActualNutrients   NutrientFlags `json:"actualNutrients"`
	MatchLevel        MatchLevel    `json:"matchLevel"`
	Points            int           `json:"points"`
}

type VarietyBonusResult struct {
	Earned bool `json:"earned"`
	Points int  `json:"points"`
}

type PenaltyNoneResult struct {
	Applied bool `json:"applied"`
	Points  int  `json:"points"`
}

type ScoreBreakdown struct {
	Axes         AxesResult         `json:"axes"`
	MealRules    []MealRuleResult   `json:"mealRules"`
	MealMatching []MealMatchResult  `json:"mealMatching"`
	VarietyBonus VarietyBonusResult `json:"varietyBonus"`
	PenaltyNone  PenaltyNoneResult  `json:"penaltyNone"`
	Total        int                `json:"total"`
}

// CalculateDailyScore scores one day of meals against a diet profile.
// A nil diet falls back to the default profile (all daily ideals on, no
// meal rules); that substitution happens only here.
//
// Total = daily axes + enhanced per-rule matching + variety bonus + penalty.
// The legacy MealRules list is computed alongside but never summed in.
func CalculateDailyScore(meals []MealInput, diet *DietInput, cfg ScoringConfig) ScoreBreakdown {
	if diet == nil {
		diet = &DietInput{IdealCarb: true, IdealProtein: true, IdealVeggies: true}
	}

	hasAny := NutrientFlags{}
	for _, m := range meals {
		hasAny.Carb = hasAny.Carb || m.HasCarb
		hasAny.Protein = hasAny.Protein || m.HasProtein
		hasAny.Veggies = hasAny.Veggies || m.HasVeggies
	}

	axes := AxesResult{
		Carb:    diet.IdealCarb && hasAny.Carb,
		Protein: diet.IdealProtein && hasAny.Protein,
		Veggies: diet.IdealVeggies && hasAny.Veggies,
	}
	for _, earned := range []bool{axes.Carb, axes.Protein, axes.Veggies} {
		if earned {
			axes.Points += cfg.PointsAxis
		}
	}

	matching := make([]MealMatchResult, 0, len(diet.MealRules))
	matchingPoints := 0
	for _, rule := range diet.MealRules {
		res := matchRule(rule, meals, cfg)
		matchingPoints += res.Points
		matching = append(matching, res)
	}

	legacy := make([]MealRuleResult, 0, len(diet.MealRules))
	for _, rule := range diet.MealRules {
		met := false
		for _, m := range meals {
			if m.Type != rule.MealType {
				continue
			}
			if (!rule.ExpectCarb || m.HasCarb) &&
				(!rule.ExpectProtein || m.HasProtein) &&
				(!rule.ExpectVeggies || m.HasVeggies) {
				met = true
				break
			}
		}
		points := 0
		if met {
			points = cfg.PointsRule
		}
		legacy = append(legacy, MealRuleResult{MealType: rule.MealType, Met: met, Points: points})
	}

	variety := VarietyBonusResult{Earned: varietyEarned(meals)}
	if variety.Earned {
		variety.Points = cfg.BonusVariety
	}

	// Raw presence across all meals, not gated by diet toggles.
	penalty := PenaltyNoneResult{Applied: !hasAny.Carb && !hasAny.Protein && !hasAny.Veggies}
	if penalty.Applied {
		penalty.Points = -cfg.PenaltyNone
	}

	return ScoreBreakdown{
		Axes:         axes,
		MealRules:    legacy,
		MealMatching: matching,
		VarietyBonus: variety,
		PenaltyNone:  penalty,
		Total:        axes.Points + matchingPoints + variety.Points + penalty.Points,
	}
}

// matchRule grades the first meal of the rule's type against the expected
// nutrients. Later meals of the same type are ignored on purpose: the rule
// describes one meal, not an aggregate.
func matchRule(rule MealRuleInput, meals []MealInput, cfg ScoringConfig) MealMatchResult {
	expected := NutrientFlags{Carb: rule.ExpectCarb, Protein: rule.ExpectProtein, Veggies: rule.ExpectVeggies}

	var meal *MealInput
	for i := range meals {
		if meals[i].Type == rule.MealType {
			meal = &meals[i]
			break
		}
	}
	if meal == nil {
		return MealMatchResult{
			MealType:          rule.MealType,
			ExpectedNutrients: expected,
			MatchLevel:        MatchNone,
		}
	}

	actual := NutrientFlags{Carb: meal.HasCarb, Protein: meal.HasProtein, Veggies: meal.HasVeggies}

	totalExpected := 0
	matches := 0
	for _, pair := range [][2]bool{
		{rule.ExpectCarb, meal.HasCarb},
		{rule.ExpectProtein, meal.HasProtein},
		{rule.ExpectVeggies, meal.HasVeggies},
	} {
		if pair[0] {
			totalExpected++
			if pair[1] {
				matches++
			}
		}
	}

	level := MatchNone
	points := 0
	switch {
	case totalExpected == 0:
		// A rule expecting nothing cannot be matched.
	case matches == totalExpected:
		level, points = MatchPerfect, cfg.PointsPerfectMatch
	case matches >= (totalExpected+1)/2:
		level, points = MatchPartial, cfg.PointsPartialMatch
	case matches > 0:
		level, points = MatchLow, cfg.PointsLowMatch
	}

	return MealMatchResult{
		MealType:          rule.MealType,
		HasMeal:           true,
		ExpectedNutrients: expected,
		ActualNutrients:   actual,
		MatchLevel:        level,
		Points:            points,
	}
}

// varietyEarned reports whether some pair of distinct meals jointly covers
// all three axes. Pairwise scan, first success wins.
func varietyEarned(meals []MealInput) bool {
	for i := 0; i < len(meals); i++ {
		for j := i + 1; j < len(meals); j++ {
			if (meals[i].HasCarb || meals[j].HasCarb) &&
				(meals[i].HasProtein || meals[j].HasProtein) &&
				(meals[i].HasVeggies || meals[j].HasVeggies) {
				return true
			}
		}
	}
	return false
}
