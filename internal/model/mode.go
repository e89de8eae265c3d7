package model

// Mode is the workflow a user is currently in. The zero value is ModeIdle, so
// a user the bot has never seen starts out idle.
type Mode int

const (
	ModeIdle Mode = iota
	ModeNote
	ModeReminder
	ModeExpense
	ModeChat
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeNote:
		return "note"
	case ModeReminder:
		return "reminder"
	case ModeExpense:
		return "expense"
	case ModeChat:
		return "chat"
	}
	return "unknown"
}
