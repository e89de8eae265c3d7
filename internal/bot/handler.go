package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/minhtran/troly_bot/internal/model"
	"github.com/minhtran/troly_bot/internal/service"
)

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil || update.Message.From == nil {
		return nil
	}
	msg := update.Message

	if msg.IsCommand() {
		return b.handleCommand(msg)
	}
	if msg.Text == "" {
		return nil
	}
	return b.handleText(msg.From.ID, msg.Chat.ID, strings.TrimSpace(msg.Text))
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) error {
	switch msg.Command() {
	case "start":
		return b.handleStart(msg.Chat.ID)
	case "report":
		return b.handleReport(msg.Chat.ID)
	}
	return nil
}

// handleStart greets the user and arms the workflow menu. It does not touch
// the user's mode, so it works at any point of a conversation.
func (b *Bot) handleStart(chatID int64) error {
	return b.transport.SendTextWithMenu(chatID, welcomeMessage)
}

// handleText is the workflow state machine. Each menu selection arms a
// single-shot workflow; the next non-menu message is consumed by it and the
// user is idle again.
func (b *Bot) handleText(userID, chatID int64, text string) error {
	// A menu selection always wins, abandoning any workflow in progress.
	if mode, ok := menuModes[text]; ok {
		b.states.Set(userID, mode)
		return b.transport.SendText(chatID, workflowPrompts[mode])
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	// Consuming the pending mode and resetting it is one atomic step, so a
	// second message racing in from the same user finds the mode idle.
	switch b.states.Exchange(userID, model.ModeIdle) {
	case model.ModeNote:
		if err := b.journal.SaveNote(ctx, text); err != nil {
			// No reply: the polling loop logs this turn as failed.
			return err
		}
		return b.transport.SendText(chatID, noteSavedMessage)

	case model.ModeReminder:
		return b.replySaved(chatID, b.journal.SaveReminder(ctx, text), reminderSavedMessage, reminderSyntaxMessage)

	case model.ModeExpense:
		return b.replySaved(chatID, b.journal.SaveExpense(ctx, text), expenseSavedMessage, expenseSyntaxMessage)

	case model.ModeChat:
		answer, err := b.assistant.Complete(ctx, text)
		if err != nil {
			slog.Warn("assistant request failed", "user", userID, "error", err)
			return b.transport.SendText(chatID, fmt.Sprintf(assistantErrorFormat, err))
		}
		return b.transport.SendText(chatID, assistantReplyPrefix+answer)

	default:
		return b.transport.SendText(chatID, invalidCommandMessage)
	}
}

// replySaved turns the outcome of a reminder/expense save into a reply.
// Malformed input and storage failure get distinct messages.
func (b *Bot) replySaved(chatID int64, err error, saved, syntax string) error {
	var verr *service.ValidationError
	switch {
	case err == nil:
		return b.transport.SendText(chatID, saved)
	case errors.As(err, &verr):
		return b.transport.SendText(chatID, syntax)
	default:
		slog.Error("journal append failed", "error", err)
		return b.transport.SendText(chatID, storageErrorMessage)
	}
}

func (b *Bot) handleReport(chatID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	summary, err := b.journal.ExpenseSummary(ctx)
	if err != nil {
		slog.Error("expense summary failed", "error", err)
		return b.transport.SendText(chatID, storageErrorMessage)
	}
	if summary.Rows == 0 {
		return b.transport.SendText(chatID, reportEmptyMessage)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 Chi tiêu tháng %s\n\n💸 Tổng: %.0f\n", summary.Period, summary.Total)
	for _, item := range summary.ByItem {
		fmt.Fprintf(&sb, "• %s: %.0f\n", item.Item, item.Amount)
	}

	png, err := b.charts.ExpensePie(summary)
	if err != nil {
		slog.Warn("chart render failed", "error", err)
	}
	if len(png) > 0 {
		return b.transport.SendPhoto(chatID, sb.String(), png)
	}
	return b.transport.SendText(chatID, sb.String())
}
