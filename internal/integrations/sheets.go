package integrations

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// AppendBatchSize caps the rows sent in one append call.
const AppendBatchSize = 1000

type SheetsClient interface {
	Append(ctx context.Context, spreadsheetID, rng string, rows [][]interface{}) error
	Create(ctx context.Context, title string) (string, error)
}

// GoogleSheets talks to the Sheets v4 API with a service account.
type GoogleSheets struct {
	svc *sheets.Service
}

func NewGoogleSheets(ctx context.Context, credentialsFile string) (*GoogleSheets, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}
	return &GoogleSheets{svc: svc}, nil
}

// Append writes rows after the last row of rng, in batches.
func (g *GoogleSheets) Append(ctx context.Context, spreadsheetID, rng string, rows [][]interface{}) error {
	for _, batch := range Batches(rows, AppendBatchSize) {
		_, err := g.svc.Spreadsheets.Values.
			Append(spreadsheetID, rng, &sheets.ValueRange{Values: batch}).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("append to %s: %w", spreadsheetID, err)
		}
	}
	return nil
}

// Create makes a new spreadsheet and returns its id.
func (g *GoogleSheets) Create(ctx context.Context, title string) (string, error) {
	resp, err := g.svc.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create spreadsheet: %w", err)
	}
	return resp.SpreadsheetId, nil
}

// Batches splits rows into chunks of at most size rows.
func Batches(rows [][]interface{}, size int) [][][]interface{} {
	if size <= 0 {
		size = AppendBatchSize
	}
	out := make([][][]interface{}, 0, (len(rows)+size-1)/size)
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		out = append(out, rows[start:end])
	}
	return out
}
