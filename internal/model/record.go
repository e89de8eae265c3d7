package model

import "time"

// TimestampLayout is the date format used in the timestamp column of the
// spreadsheet.
const TimestampLayout = "02/01/2006 15:04:05"

// Timestamp formats t the way rows are stamped in the spreadsheet.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// NoteRecord is one row of the "Ghi chú" sheet.
type NoteRecord struct {
	Timestamp string
	Content   string
}

// ReminderRecord is one row of the "Nhắc việc" sheet. Fields[0] is the task
// and Fields[1] the time; any trailing fields are kept as entered.
type ReminderRecord struct {
	Fields []string
}

// ExpenseRecord is one row of the "Chi tiêu" sheet. The stored row starts
// with a blank cell, then the timestamp, then item, amount, payer and any
// trailing fields.
type ExpenseRecord struct {
	Timestamp string
	Fields    []string
}
