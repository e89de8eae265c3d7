package bot

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/minhtran/troly_bot/internal/assistant"
	"github.com/minhtran/troly_bot/internal/charts"
	"github.com/minhtran/troly_bot/internal/service"
	"github.com/minhtran/troly_bot/internal/state"
)

// collaboratorTimeout bounds every spreadsheet and LLM call so one stuck
// request cannot stall a user's turn forever.
const collaboratorTimeout = 30 * time.Second

// Transport sends outbound messages to the chat service. Tests substitute a
// fake; production wraps the Telegram API.
type Transport interface {
	SendText(chatID int64, text string) error
	SendTextWithMenu(chatID int64, text string) error
	SendPhoto(chatID int64, caption string, png []byte) error
}

type Bot struct {
	api       *tgbotapi.BotAPI // nil when constructed for tests
	transport Transport
	states    state.Store
	journal   *service.Journal
	assistant assistant.Completer
	charts    *charts.ChartGenerator
	timeout   time.Duration
}

func NewBot(token string, journal *service.Journal, completer assistant.Completer, store state.Store) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram client: %w", err)
	}
	b := newBot(&telegramTransport{api: api}, journal, completer, store)
	b.api = api
	return b, nil
}

func newBot(t Transport, journal *service.Journal, completer assistant.Completer, store state.Store) *Bot {
	return &Bot{
		transport: t,
		states:    store,
		journal:   journal,
		assistant: completer,
		charts:    charts.NewChartGenerator(),
		timeout:   collaboratorTimeout,
	}
}

// Start runs the long-polling loop. A failed turn is logged and the loop
// keeps serving; the user whose turn failed gets no reply.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	slog.Info("bot started", "account", b.api.Self.UserName)

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			slog.Error("update failed", "error", err)
		}
	}
	return nil
}

// HandleWebhook is the entry point for webhook deployments: one raw update
// per call.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("decode update: %w", err)
	}
	return b.handleUpdate(update)
}

type telegramTransport struct {
	api *tgbotapi.BotAPI
}

func (t *telegramTransport) SendText(chatID int64, text string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (t *telegramTransport) SendTextWithMenu(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = mainKeyboard()
	_, err := t.api.Send(msg)
	return err
}

func (t *telegramTransport) SendPhoto(chatID int64, caption string, png []byte) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "report.png", Bytes: png})
	photo.Caption = caption
	_, err := t.api.Send(photo)
	return err
}
