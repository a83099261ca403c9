package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/carolinaesses/comocomo/models"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

const geminiSystemInstruction = `You are a nutrition logging parser. Extract meals precisely and return ONLY valid minified JSON that matches this schema:
{
  "userId": "string",
  "date": "YYYY-MM-DD",
  "meals": [{
    "time": "HH:MM",
    "type": "breakfast"|"lunch"|"dinner"|"snack",
    "items": ["string"],
    "has_carb": boolean,
    "has_protein": boolean,
    "has_veggies": boolean,
    "notes": "string"
  }]
}

Rules:
- Only include meals explicitly present or strongly implied in the message.
- Infer time if not given: use the message timestamp's HH:MM.
- Classify meal type (breakfast/lunch/dinner/snack) based on time and content.
- Set boolean flags based on items (carbs: bread, pasta, rice, potato, cereal; protein: egg, meat, fish, poultry, tofu, dairy; veggies: salad, vegetable names).
- Items should be concise food names in the message language.
- Return ONLY JSON, no markdown, no prose.`

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type GeminiService struct {
	apiKey string
	client *http.Client
}

func NewGeminiService() *GeminiService {
	return &GeminiService{
		apiKey: os.Getenv("GEMINI_API_KEY"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type GeminiMealItem struct {
	Time       string   `json:"time"`
	Type       string   `json:"type"`
	Items      []string `json:"items"`
	HasCarb    bool     `json:"has_carb"`
	HasProtein bool     `json:"has_protein"`
	HasVeggies bool     `json:"has_veggies"`
	Notes      string   `json:"notes"`
}

type GeminiMealRecord struct {
	UserID string           `json:"userId"`
	Date   string           `json:"date"`
	Meals  []GeminiMealItem `json:"meals"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiGenerateResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// AnalyzeFoodMessage sends one chat message to Gemini and returns the
// extracted meal record. The model output is validated strictly: anything
// that doesn't match the schema is a hard failure, never coerced.
func (s *GeminiService) AnalyzeFoodMessage(ctx context.Context, userID, date, message string) (*GeminiMealRecord, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY env var")
	}

	userContent := fmt.Sprintf("Message metadata:\n- userId: %s\n- date: %s\n\nMessage text:\n%s", userID, date, message)
	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"role": "user", "parts": []map[string]string{{"text": geminiSystemInstruction + "\n\n" + userContent}}},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.2,
			"topP":            0.9,
			"maxOutputTokens": 512,
		},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal Gemini payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, geminiEndpoint+"?key="+s.apiKey, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Gemini API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Gemini response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini API error %d: %s", resp.StatusCode, string(body))
	}

	var gr geminiGenerateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini envelope: %w", err)
	}
	text, err := extractGeminiText(gr)
	if err != nil {
		return nil, err
	}

	record, err := parseMealRecord(text)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func extractGeminiText(gr geminiGenerateResponse) (string, error) {
	if len(gr.Candidates) == 0 {
		return "", fmt.Errorf("gemini response missing candidates")
	}
	var sb strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini response missing text")
	}
	return text, nil
}

// parseMealRecord decodes and validates the model's JSON. Unknown fields and
// out-of-schema values are rejected outright.
func parseMealRecord(text string) (*GeminiMealRecord, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var record GeminiMealRecord
	if err := dec.Decode(&record); err != nil {
		return nil, fmt.Errorf("gemini returned non-conforming JSON: %w", err)
	}

	if record.UserID == "" {
		return nil, fmt.Errorf("gemini record missing userId")
	}
	if !dateRe.MatchString(record.Date) {
		return nil, fmt.Errorf("gemini record has invalid date %q", record.Date)
	}
	for i, m := range record.Meals {
		if !timeRe.MatchString(m.Time) {
			return nil, fmt.Errorf("gemini meal %d has invalid time %q", i, m.Time)
		}
		if !models.ValidMealType(m.Type) {
			return nil, fmt.Errorf("gemini meal %d has invalid type %q", i, m.Type)
		}
	}
	return &record, nil
}
