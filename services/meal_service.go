package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/carolinaesses/comocomo/models"
	"github.com/carolinaesses/comocomo/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ErrValidation marks client-input failures so handlers can tell them apart
// from storage errors.
var ErrValidation = errors.New("invalid input")

type MealService struct {
	db      *gorm.DB
	scoring *ScoringService
	log     *zap.Logger
}

func NewMealService(db *gorm.DB, scoring *ScoringService, log *zap.Logger) *MealService {
	return &MealService{db: db, scoring: scoring, log: log}
}

type MealRequest struct {
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Items      string `json:"items" binding:"required"`
	HasCarb    bool   `json:"has_carb"`
	HasProtein bool   `json:"has_protein"`
	HasVeggies bool   `json:"has_veggies"`
	Notes      string `json:"notes"`
}

func (r MealRequest) toModel(userID string) (models.Meal, error) {
	date, err := utils.NormalizeDate(r.Date)
	if err != nil {
		return models.Meal{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if !timeRe.MatchString(r.Time) {
		return models.Meal{}, fmt.Errorf("%w: invalid time %q (want HH:MM)", ErrValidation, r.Time)
	}
	if !models.ValidMealType(r.Type) {
		return models.Meal{}, fmt.Errorf("%w: invalid meal type %q", ErrValidation, r.Type)
	}
	return models.Meal{
		UserID:     userID,
		Date:       date,
		Time:       r.Time,
		Type:       r.Type,
		Items:      r.Items,
		HasCarb:    r.HasCarb,
		HasProtein: r.HasProtein,
		HasVeggies: r.HasVeggies,
		Notes:      r.Notes,
	}, nil
}

var mealIdentityColumns = []clause.Column{
	{Name: "user_id"}, {Name: "date"}, {Name: "time"}, {Name: "type"}, {Name: "items"},
}

// CreateMeal logs one meal and rescores its day. Re-submitting an identical
// meal hits the identity index and is a no-op on the meals table, but the
// day is still rescored.
func (s *MealService) CreateMeal(ctx context.Context, userID string, req MealRequest) (*models.Meal, error) {
	meal, err := req.toModel(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: mealIdentityColumns, DoNothing: true}).
		Create(&meal).Error; err != nil {
		return nil, fmt.Errorf("create meal: %w", err)
	}

	// On conflict Create leaves the struct without the existing row's ID;
	// reload by identity so the caller always gets the persisted record.
	var saved models.Meal
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ? AND time = ? AND type = ? AND items = ?",
			meal.UserID, meal.Date, meal.Time, meal.Type, meal.Items).
		First(&saved).Error; err != nil {
		return nil, fmt.Errorf("reload meal: %w", err)
	}

	if _, err := s.scoring.RecalcDailyScores(ctx, userID, meal.Date, meal.Date); err != nil {
		return nil, err
	}
	return &saved, nil
}

// BulkImport upserts a batch of meals and rescores the min..max date span
// the batch touched. The whole batch is validated before the first insert;
// one bad record rejects the batch without writing anything. Returns how
// many rows were newly inserted.
func (s *MealService) BulkImport(ctx context.Context, userID string, records []MealRequest) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	meals := make([]models.Meal, 0, len(records))
	for i, r := range records {
		meal, err := r.toModel(userID)
		if err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
		meals = append(meals, meal)
	}

	var minDate, maxDate time.Time
	inserted := 0
	for i := range meals {
		tx := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{Columns: mealIdentityColumns, DoNothing: true}).
			Create(&meals[i])
		if tx.Error != nil {
			return inserted, fmt.Errorf("record %d: %w", i, tx.Error)
		}
		inserted += int(tx.RowsAffected)

		if minDate.IsZero() || meals[i].Date.Before(minDate) {
			minDate = meals[i].Date
		}
		if maxDate.IsZero() || meals[i].Date.After(maxDate) {
			maxDate = meals[i].Date
		}
	}

	s.log.Info("bulk meal import",
		zap.String("user_id", userID),
		zap.Int("records", len(records)),
		zap.Int("inserted", inserted))

	if _, err := s.scoring.RecalcDailyScores(ctx, userID, minDate, maxDate); err != nil {
		return inserted, err
	}
	return inserted, nil
}

func (s *MealService) ListMealsByDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.Meal, error) {
	var meals []models.Meal
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date ASC, time ASC").
		Find(&meals).Error
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}
