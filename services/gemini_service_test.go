package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMealRecordValid(t *testing.T) {
	text := `{"userId":"carolina","date":"2024-05-01","meals":[{"time":"08:30","type":"breakfast","items":["tostadas","huevos"],"has_carb":true,"has_protein":true,"has_veggies":false,"notes":""}]}`

	record, err := parseMealRecord(text)
	require.NoError(t, err)
	assert.Equal(t, "carolina", record.UserID)
	assert.Equal(t, "2024-05-01", record.Date)
	require.Len(t, record.Meals, 1)
	assert.Equal(t, "breakfast", record.Meals[0].Type)
	assert.True(t, record.Meals[0].HasCarb)
}

func TestParseMealRecordRejectsMalformedOutput(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"not json", "sure! here is the JSON you asked for"},
		{"unknown field", `{"userId":"u","date":"2024-05-01","meals":[],"confidence":0.9}`},
		{"missing userId", `{"userId":"","date":"2024-05-01","meals":[]}`},
		{"bad date", `{"userId":"u","date":"01-05-2024","meals":[]}`},
		{"bad time", `{"userId":"u","date":"2024-05-01","meals":[{"time":"8:3","type":"lunch","items":[],"has_carb":false,"has_protein":false,"has_veggies":false,"notes":""}]}`},
		{"bad type", `{"userId":"u","date":"2024-05-01","meals":[{"time":"13:00","type":"brunch","items":[],"has_carb":false,"has_protein":false,"has_veggies":false,"notes":""}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseMealRecord(tc.text)
			assert.Error(t, err)
		})
	}
}

func TestExtractGeminiTextJoinsParts(t *testing.T) {
	gr := geminiGenerateResponse{
		Candidates: []geminiCandidate{{
			Content: geminiContent{Parts: []geminiPart{{Text: `{"a":`}, {Text: `1}`}}},
		}},
	}

	text, err := extractGeminiText(gr)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, text)
}

func TestExtractGeminiTextMissing(t *testing.T) {
	_, err := extractGeminiText(geminiGenerateResponse{})
	assert.Error(t, err)
}
