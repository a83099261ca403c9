package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/carolinaesses/comocomo/utils"

	"go.uber.org/zap"
)

type IngestService struct {
	gemini *GeminiService
	sheets *SheetsService
	meals  *MealService
	log    *zap.Logger
}

func NewIngestService(gemini *GeminiService, sheets *SheetsService, meals *MealService, log *zap.Logger) *IngestService {
	return &IngestService{gemini: gemini, sheets: sheets, meals: meals, log: log}
}

type IngestResult struct {
	Processed int                `json:"processed"`
	Inserted  int                `json:"inserted"`
	Appended  int                `json:"appended"`
	Records   []GeminiMealRecord `json:"records"`
}

// IngestChatExport runs the full chat-ingestion pipeline for one user: parse
// the WhatsApp export, send each food-related message to Gemini, persist the
// extracted meals through the bulk path (which rescores the touched days),
// and mirror the rows to the configured spreadsheet.
//
// All extracted meals are attributed to the authenticated user regardless of
// the chat sender; the sender name only reaches the LLM as context.
func (s *IngestService) IngestChatExport(ctx context.Context, userID, text string) (*IngestResult, error) {
	foodMessages := utils.ExtractFoodMessages(text)
	result := &IngestResult{Records: []GeminiMealRecord{}}
	if len(foodMessages) == 0 {
		return result, nil
	}

	var mealReqs []MealRequest
	var rows []SheetRow
	for _, msg := range foodMessages {
		record, err := s.gemini.AnalyzeFoodMessage(ctx, msg.User, msg.Date, msg.Text)
		if err != nil {
			return result, fmt.Errorf("analyze message from %s at %s: %w", msg.User, msg.Date, err)
		}
		result.Processed++
		result.Records = append(result.Records, *record)

		for _, meal := range record.Meals {
			items := strings.Join(meal.Items, ", ")
			mealReqs = append(mealReqs, MealRequest{
				Date:       record.Date,
				Time:       meal.Time,
				Type:       meal.Type,
				Items:      items,
				HasCarb:    meal.HasCarb,
				HasProtein: meal.HasProtein,
				HasVeggies: meal.HasVeggies,
				Notes:      meal.Notes,
			})
			rows = append(rows, SheetRow{
				Date:       record.Date,
				Time:       meal.Time,
				Type:       meal.Type,
				Items:      items,
				HasCarb:    meal.HasCarb,
				HasProtein: meal.HasProtein,
				HasVeggies: meal.HasVeggies,
				UserID:     userID,
				Notes:      meal.Notes,
			})
		}
	}

	inserted, err := s.meals.BulkImport(ctx, userID, mealReqs)
	result.Inserted = inserted
	if err != nil {
		return result, err
	}

	if s.sheets.Configured() {
		appended, err := s.sheets.AppendMealRows(ctx, rows)
		if err != nil {
			// The meals are already persisted and scored; a sheet failure
			// shouldn't undo the ingestion.
			s.log.Warn("sheet append failed", zap.Error(err))
		} else {
			result.Appended = appended
		}
	}

	s.log.Info("chat export ingested",
		zap.String("user_id", userID),
		zap.Int("messages", result.Processed),
		zap.Int("meals", len(mealReqs)),
		zap.Int("inserted", result.Inserted))

	return result, nil
}
