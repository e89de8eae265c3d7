package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"

	"github.com/minhtran/troly_bot/internal/model"
)

// SupabaseRepository stores journal rows in Supabase tables. It is selected
// instead of the spreadsheet backend when SUPABASE_URL is configured.
type SupabaseRepository struct {
	client *supabase.Client
}

func NewSupabaseRepository(url, key string) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}
	return &SupabaseRepository{client: client}, nil
}

type noteRow struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

type reminderRow struct {
	ID    string `json:"id"`
	Task  string `json:"task"`
	Time  string `json:"time"`
	Extra string `json:"extra,omitempty"`
}

type expenseRow struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Item      string `json:"item"`
	Amount    string `json:"amount"`
	Payer     string `json:"payer"`
	Extra     string `json:"extra,omitempty"`
}

func (r *SupabaseRepository) AppendNote(_ context.Context, rec model.NoteRecord) error {
	row := noteRow{ID: uuid.New().String(), Timestamp: rec.Timestamp, Content: rec.Content}
	if _, _, err := r.client.From("notes").Insert(row, false, "", "", "").Execute(); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) AppendReminder(_ context.Context, rec model.ReminderRecord) error {
	row := reminderRow{
		ID:   uuid.New().String(),
		Task: rec.Fields[0],
		Time: rec.Fields[1],
	}
	if len(rec.Fields) > 2 {
		row.Extra = strings.Join(rec.Fields[2:], " - ")
	}
	if _, _, err := r.client.From("reminders").Insert(row, false, "", "", "").Execute(); err != nil {
		return fmt.Errorf("insert reminder: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) AppendExpense(_ context.Context, rec model.ExpenseRecord) error {
	row := expenseRow{
		ID:        uuid.New().String(),
		Timestamp: rec.Timestamp,
		Item:      rec.Fields[0],
		Amount:    rec.Fields[1],
		Payer:     rec.Fields[2],
	}
	if len(rec.Fields) > 3 {
		row.Extra = strings.Join(rec.Fields[3:], " - ")
	}
	if _, _, err := r.client.From("expenses").Insert(row, false, "", "", "").Execute(); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) ListExpenses(_ context.Context) ([]model.ExpenseRecord, error) {
	data, _, err := r.client.From("expenses").Select("*", "", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("select expenses: %w", err)
	}

	var rows []expenseRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse expenses: %w", err)
	}
	records := make([]model.ExpenseRecord, 0, len(rows))
	for _, row := range rows {
		rec := model.ExpenseRecord{
			Timestamp: row.Timestamp,
			Fields:    []string{row.Item, row.Amount, row.Payer},
		}
		if row.Extra != "" {
			rec.Fields = append(rec.Fields, row.Extra)
		}
		records = append(records, rec)
	}
	return records, nil
}
