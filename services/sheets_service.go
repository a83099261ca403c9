package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type SheetsService struct {
	clientEmail string
	privateKey  string
	sheetID     string
}

// NewSheetsService reads the service-account credentials from the
// environment. Construction never fails; a missing configuration surfaces
// when an append is attempted.
func NewSheetsService() *SheetsService {
	return &SheetsService{
		clientEmail: os.Getenv("GOOGLE_CLIENT_EMAIL"),
		privateKey:  strings.ReplaceAll(os.Getenv("GOOGLE_PRIVATE_KEY"), `\n`, "\n"),
		sheetID:     os.Getenv("SHEET_ID"),
	}
}

// Configured reports whether the sheet sink can be used at all; ingestion
// skips the append when it isn't.
func (s *SheetsService) Configured() bool {
	return s.clientEmail != "" && s.privateKey != "" && s.sheetID != ""
}

type SheetRow struct {
	Date       string
	Time       string
	Type       string
	Items      string
	HasCarb    bool
	HasProtein bool
	HasVeggies bool
	UserID     string
	Notes      string
}

// AppendMealRows appends flattened meal rows to the configured spreadsheet
// using a service account.
func (s *SheetsService) AppendMealRows(ctx context.Context, rows []SheetRow) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if !s.Configured() {
		return 0, fmt.Errorf("missing Google Sheets env vars (GOOGLE_CLIENT_EMAIL, GOOGLE_PRIVATE_KEY, SHEET_ID)")
	}

	conf := &jwt.Config{
		Email:      s.clientEmail,
		PrivateKey: []byte(s.privateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return 0, fmt.Errorf("failed to create Sheets client: %w", err)
	}

	values := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		values = append(values, []interface{}{
			r.Date, r.Time, r.Type, r.Items,
			r.HasCarb, r.HasProtein, r.HasVeggies,
			r.UserID, r.Notes,
		})
	}

	_, err = svc.Spreadsheets.Values.
		Append(s.sheetID, "A:I", &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("failed to append sheet rows: %w", err)
	}
	return len(rows), nil
}
