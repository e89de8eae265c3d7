package main

import (
	"context"

	"github.com/minhtran/troly_bot/internal/assistant"
	"github.com/minhtran/troly_bot/internal/bot"
	"github.com/minhtran/troly_bot/internal/config"
	"github.com/minhtran/troly_bot/internal/repository"
	"github.com/minhtran/troly_bot/internal/service"
	"github.com/minhtran/troly_bot/internal/state"
)

// Request is the API-gateway envelope carrying one raw Telegram update.
type Request struct {
	Body string `json:"body"`
}

// Response is the API-gateway reply envelope.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler processes a single webhook update. Everything is rebuilt per
// invocation; in this deployment the per-user mode does not survive between
// updates, so only the stateless commands are fully useful here.
func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	repo, err := newRepository(ctx, cfg)
	if err != nil {
		return errorResponse(err)
	}

	journal := service.NewJournal(repo)
	completer := assistant.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)

	b, err := bot.NewBot(cfg.TelegramToken, journal, completer, state.NewMemoryStore())
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func newRepository(ctx context.Context, cfg *config.Config) (service.Repository, error) {
	if cfg.UseSupabase() {
		return repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	}
	return repository.NewSheetsRepository(ctx, cfg.SpreadsheetID, cfg.GoogleCredentials)
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Entry point used only for local builds; the platform calls Handler.
}
