package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/carolinaesses/comocomo/models"
	"github.com/carolinaesses/comocomo/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Window rescored after a profile change.
const dietRecalcDays = 30

type DietService struct {
	db      *gorm.DB
	scoring *ScoringService
	log     *zap.Logger
}

func NewDietService(db *gorm.DB, scoring *ScoringService, log *zap.Logger) *DietService {
	return &DietService{db: db, scoring: scoring, log: log}
}

type DietRuleRequest struct {
	MealType      string `json:"mealType" binding:"required"`
	ExpectCarb    bool   `json:"expect_carb"`
	ExpectProtein bool   `json:"expect_protein"`
	ExpectVeggies bool   `json:"expect_veggies"`
}

type DietRequest struct {
	IdealCarb    bool              `json:"ideal_carb"`
	IdealProtein bool              `json:"ideal_protein"`
	IdealVeggies bool              `json:"ideal_veggies"`
	Notes        string            `json:"notes"`
	MealRules    []DietRuleRequest `json:"mealRules"`
}

// GetDiet returns the user's profile with rules, or nil when none exists.
func (s *DietService) GetDiet(ctx context.Context, userID string) (*models.IdealDiet, error) {
	var diet models.IdealDiet
	err := s.db.WithContext(ctx).
		Preload("MealRules").
		Where("user_id = ?", userID).
		First(&diet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ideal diet: %w", err)
	}
	return &diet, nil
}

// UpsertDiet replaces the user's profile wholesale: daily flags updated and
// the rule set deleted and recreated. Afterwards the trailing 30 days are
// rescored so existing scores reflect the new targets.
func (s *DietService) UpsertDiet(ctx context.Context, userID string, req DietRequest) (*models.IdealDiet, error) {
	seen := map[string]bool{}
	for _, r := range req.MealRules {
		if !models.ValidMealType(r.MealType) {
			return nil, fmt.Errorf("%w: invalid meal type %q", ErrValidation, r.MealType)
		}
		if seen[r.MealType] {
			return nil, fmt.Errorf("%w: duplicate rule for meal type %q", ErrValidation, r.MealType)
		}
		seen[r.MealType] = true
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var diet models.IdealDiet
		err := tx.Where("user_id = ?", userID).First(&diet).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			diet = models.IdealDiet{UserID: userID}
		} else if err != nil {
			return err
		}

		diet.IdealCarb = req.IdealCarb
		diet.IdealProtein = req.IdealProtein
		diet.IdealVeggies = req.IdealVeggies
		diet.Notes = req.Notes
		if err := tx.Save(&diet).Error; err != nil {
			return err
		}

		// Hard delete: a soft-deleted rule would still occupy the
		// (diet_id, meal_type) unique index and block the re-create.
		if err := tx.Unscoped().Where("ideal_diet_id = ?", diet.ID).
			Delete(&models.IdealDietMealRule{}).Error; err != nil {
			return err
		}
		for _, r := range req.MealRules {
			rule := models.IdealDietMealRule{
				IdealDietID:   diet.ID,
				MealType:      r.MealType,
				ExpectCarb:    r.ExpectCarb,
				ExpectProtein: r.ExpectProtein,
				ExpectVeggies: r.ExpectVeggies,
			}
			if err := tx.Create(&rule).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("upsert ideal diet: %w", err)
	}

	to := utils.Today()
	from := to.AddDate(0, 0, -(dietRecalcDays - 1))
	if _, err := s.scoring.RecalcDailyScores(ctx, userID, from, to); err != nil {
		return nil, err
	}

	s.log.Info("ideal diet replaced",
		zap.String("user_id", userID),
		zap.Int("rules", len(req.MealRules)))

	return s.GetDiet(ctx, userID)
}
