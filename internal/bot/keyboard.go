package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// mainKeyboard is the four-button workflow menu sent with /start. One button
// per row, one-time so it folds away after a selection.
func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(noteButton)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(reminderButton)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(expenseButton)),
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(chatButton)),
	)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	return kb
}
