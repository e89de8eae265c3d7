// Package service implements the note, reminder and expense workflows on top
// of a row store.
package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/minhtran/troly_bot/internal/model"
)

// Examples of the expected entry format, shown to the user on bad input.
const (
	ReminderExample = "Gọi khách - 15h"
	ExpenseExample  = "Mua cà phê - 25000 - Linh"
)

// ValidationError reports user input that does not satisfy a workflow's
// syntax. It is user-correctable and never retried; callers distinguish it
// from storage failures with errors.As.
type ValidationError struct {
	Example string
}

func (e *ValidationError) Error() string {
	return "không đủ dữ liệu, ví dụ: " + e.Example
}

// Repository persists journal rows. Implemented by repository.SheetsRepository
// and repository.SupabaseRepository.
type Repository interface {
	AppendNote(ctx context.Context, rec model.NoteRecord) error
	AppendReminder(ctx context.Context, rec model.ReminderRecord) error
	AppendExpense(ctx context.Context, rec model.ExpenseRecord) error
	ListExpenses(ctx context.Context) ([]model.ExpenseRecord, error)
}

// Journal stores notes, reminders and expenses in their row collections.
type Journal struct {
	repo Repository
	now  func() time.Time
}

func NewJournal(repo Repository) *Journal {
	return &Journal{repo: repo, now: time.Now}
}

// SaveNote appends the raw text with the current timestamp.
func (j *Journal) SaveNote(ctx context.Context, text string) error {
	rec := model.NoteRecord{Timestamp: model.Timestamp(j.now()), Content: text}
	if err := j.repo.AppendNote(ctx, rec); err != nil {
		return fmt.Errorf("append note: %w", err)
	}
	return nil
}

// SaveReminder splits text into task/time fields and appends them. Input with
// fewer than two fields is rejected with a ValidationError and nothing is
// stored.
func (j *Journal) SaveReminder(ctx context.Context, text string) error {
	fields := SplitFields(text, FieldDelimiter)
	if len(fields) < 2 {
		return &ValidationError{Example: ReminderExample}
	}
	if err := j.repo.AppendReminder(ctx, model.ReminderRecord{Fields: fields}); err != nil {
		return fmt.Errorf("append reminder: %w", err)
	}
	return nil
}

// SaveExpense splits text into item/amount/payer fields and appends them with
// the current timestamp. Fewer than three fields is a ValidationError.
func (j *Journal) SaveExpense(ctx context.Context, text string) error {
	fields := SplitFields(text, FieldDelimiter)
	if len(fields) < 3 {
		return &ValidationError{Example: ExpenseExample}
	}
	rec := model.ExpenseRecord{Timestamp: model.Timestamp(j.now()), Fields: fields}
	if err := j.repo.AppendExpense(ctx, rec); err != nil {
		return fmt.Errorf("append expense: %w", err)
	}
	return nil
}

// ExpenseSummary aggregates the current month's expense rows by item label.
type ExpenseSummary struct {
	Period string // "01/2006"
	Total  float64
	ByItem []ItemTotal // largest first
	Rows   int
}

type ItemTotal struct {
	Item   string
	Amount float64
}

// ExpenseSummary reads back the expense collection and totals the rows of the
// current month. Amounts are free-form text in the sheet; rows whose amount
// does not parse as a number are counted but excluded from the totals.
func (j *Journal) ExpenseSummary(ctx context.Context) (*ExpenseSummary, error) {
	records, err := j.repo.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	now := j.now()
	summary := &ExpenseSummary{Period: now.Format("01/2006")}
	totals := make(map[string]float64)
	for _, rec := range records {
		if len(rec.Fields) < 2 {
			continue
		}
		ts, err := time.Parse(model.TimestampLayout, rec.Timestamp)
		if err != nil || ts.Year() != now.Year() || ts.Month() != now.Month() {
			continue
		}
		summary.Rows++
		amount, err := strconv.ParseFloat(strings.ReplaceAll(rec.Fields[1], ",", ""), 64)
		if err != nil {
			continue
		}
		totals[rec.Fields[0]] += amount
		summary.Total += amount
	}

	for item, amount := range totals {
		summary.ByItem = append(summary.ByItem, ItemTotal{Item: item, Amount: amount})
	}
	sort.Slice(summary.ByItem, func(i, k int) bool {
		if summary.ByItem[i].Amount != summary.ByItem[k].Amount {
			return summary.ByItem[i].Amount > summary.ByItem[k].Amount
		}
		return summary.ByItem[i].Item < summary.ByItem[k].Item
	})
	return summary, nil
}
