package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/carolinaesses/comocomo/models"
	"github.com/carolinaesses/comocomo/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoringService struct {
	db  *gorm.DB
	cfg ScoringConfig
	log *zap.Logger
}

func NewScoringService(db *gorm.DB, log *zap.Logger) *ScoringService {
	return &ScoringService{db: db, cfg: DefaultScoringConfig, log: log}
}

type DailyScoreResult struct {
	UserID string    `json:"userId"`
	Date   time.Time `json:"date"`
	Score  int       `json:"score"`
}

// RecalcDailyScores rescores every day in [from, to] that has at least one
// meal, upserting one DailyScore row per day. Days without meals are left
// untouched. Each day's upsert is independent: on failure the rows already
// written stay committed and the returned slice tells the caller which days
// succeeded.
func (s *ScoringService) RecalcDailyScores(ctx context.Context, userID string, from, to time.Time) ([]DailyScoreResult, error) {
	diet, err := s.loadDiet(ctx, userID)
	if err != nil {
		return nil, err
	}

	var meals []models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, time ASC").
		Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("load meals for %s: %w", userID, err)
	}

	// Group by the normalized day value. Order of days and of meals within
	// a day follows the query ordering, which decides the "first" meal a
	// rule is graded against.
	var days []time.Time
	byDay := map[int64][]models.Meal{}
	for _, m := range meals {
		key := m.Date.UTC().Unix()
		if _, seen := byDay[key]; !seen {
			days = append(days, m.Date.UTC())
		}
		byDay[key] = append(byDay[key], m)
	}

	results := make([]DailyScoreResult, 0, len(days))
	for _, day := range days {
		dayMeals := byDay[day.Unix()]
		inputs := make([]MealInput, 0, len(dayMeals))
		for _, m := range dayMeals {
			inputs = append(inputs, MealInput{
				Time:       m.Time,
				Type:       m.Type,
				HasCarb:    m.HasCarb,
				HasProtein: m.HasProtein,
				HasVeggies: m.HasVeggies,
			})
		}

		breakdown := CalculateDailyScore(inputs, diet, s.cfg)
		details, err := json.Marshal(breakdown)
		if err != nil {
			return results, fmt.Errorf("marshal breakdown for %s: %w", utils.FormatDate(day), err)
		}

		row := models.DailyScore{
			UserID:  userID,
			Date:    day,
			Score:   breakdown.Total,
			Details: details,
		}
		if err := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{"score", "details", "updated_at"}),
			}).
			Create(&row).Error; err != nil {
			return results, fmt.Errorf("upsert daily score for %s: %w", utils.FormatDate(day), err)
		}

		s.log.Debug("daily score recalculated",
			zap.String("user_id", userID),
			zap.String("date", utils.FormatDate(day)),
			zap.Int("score", breakdown.Total))

		results = append(results, DailyScoreResult{UserID: userID, Date: day, Score: breakdown.Total})
	}

	return results, nil
}

// GetDailyScores returns persisted scores in [from, to], oldest first. Pure
// read: scores can be stale if meals changed without a recalculation.
func (s *ScoringService) GetDailyScores(ctx context.Context, userID string, from, to time.Time) ([]models.DailyScore, error) {
	var scores []models.DailyScore
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC").
		Find(&scores).Error
	if err != nil {
		return nil, fmt.Errorf("load daily scores for %s: %w", userID, err)
	}
	return scores, nil
}

// loadDiet fetches the user's profile with rules, or nil when none exists so
// the engine applies its default profile.
func (s *ScoringService) loadDiet(ctx context.Context, userID string) (*DietInput, error) {
	var diet models.IdealDiet
	err := s.db.WithContext(ctx).
		Preload("MealRules").
		Where("user_id = ?", userID).
		First(&diet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ideal diet for %s: %w", userID, err)
	}

	input := &DietInput{
		IdealCarb:    diet.IdealCarb,
		IdealProtein: diet.IdealProtein,
		IdealVeggies: diet.IdealVeggies,
		MealRules:    make([]MealRuleInput, 0, len(diet.MealRules)),
	}
	for _, r := range diet.MealRules {
		input.MealRules = append(input.MealRules, MealRuleInput{
			MealType:      r.MealType,
			ExpectCarb:    r.ExpectCarb,
			ExpectProtein: r.ExpectProtein,
			ExpectVeggies: r.ExpectVeggies,
		})
	}
	return input, nil
}
