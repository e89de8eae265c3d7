// Package repository provides the row stores behind the journal service.
package repository

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/minhtran/troly_bot/internal/model"
)

// Sheet tab names as they appear in the shared spreadsheet.
const (
	noteSheet     = "Ghi chú"
	reminderSheet = "Nhắc việc"
	expenseSheet  = "Chi tiêu"
)

// SheetsRepository appends journal rows to a Google spreadsheet through the
// Sheets API, authenticated with a service account.
type SheetsRepository struct {
	svc           *sheets.Service
	spreadsheetID string
}

func NewSheetsRepository(ctx context.Context, spreadsheetID string, credentialsJSON []byte) (*SheetsRepository, error) {
	jwt, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}
	return &SheetsRepository{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (r *SheetsRepository) appendRow(ctx context.Context, sheet string, row []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := r.svc.Spreadsheets.Values.
		Append(r.spreadsheetID, sheet, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append to %q: %w", sheet, err)
	}
	return nil
}

func (r *SheetsRepository) AppendNote(ctx context.Context, rec model.NoteRecord) error {
	return r.appendRow(ctx, noteSheet, []interface{}{rec.Timestamp, rec.Content})
}

func (r *SheetsRepository) AppendReminder(ctx context.Context, rec model.ReminderRecord) error {
	return r.appendRow(ctx, reminderSheet, toCells(rec.Fields))
}

func (r *SheetsRepository) AppendExpense(ctx context.Context, rec model.ExpenseRecord) error {
	// Column A is intentionally left blank in the expense sheet.
	row := append([]interface{}{"", rec.Timestamp}, toCells(rec.Fields)...)
	return r.appendRow(ctx, expenseSheet, row)
}

func (r *SheetsRepository) ListExpenses(ctx context.Context) ([]model.ExpenseRecord, error) {
	resp, err := r.svc.Spreadsheets.Values.
		Get(r.spreadsheetID, expenseSheet).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", expenseSheet, err)
	}
	return expenseRecordsFromValues(resp.Values), nil
}

// expenseRecordsFromValues converts raw sheet rows back into records,
// skipping rows too short to carry an entry.
func expenseRecordsFromValues(values [][]interface{}) []model.ExpenseRecord {
	records := make([]model.ExpenseRecord, 0, len(values))
	for _, row := range values {
		if len(row) < 3 {
			continue
		}
		rec := model.ExpenseRecord{Timestamp: cellString(row[1])}
		for _, cell := range row[2:] {
			rec.Fields = append(rec.Fields, cellString(cell))
		}
		records = append(records, rec)
	}
	return records
}

func toCells(fields []string) []interface{} {
	cells := make([]interface{}, len(fields))
	for i, f := range fields {
		cells[i] = f
	}
	return cells
}

func cellString(v interface{}) string {
	s, _ := v.(string)
	return s
}
