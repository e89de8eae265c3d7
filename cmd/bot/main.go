package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/minhtran/troly_bot/internal/assistant"
	"github.com/minhtran/troly_bot/internal/bot"
	"github.com/minhtran/troly_bot/internal/config"
	"github.com/minhtran/troly_bot/internal/repository"
	"github.com/minhtran/troly_bot/internal/service"
	"github.com/minhtran/troly_bot/internal/state"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	repo, err := newRepository(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	journal := service.NewJournal(repo)
	completer := assistant.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)

	b, err := bot.NewBot(cfg.TelegramToken, journal, completer, state.NewMemoryStore())
	if err != nil {
		log.Fatal(err)
	}

	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
}

func newRepository(ctx context.Context, cfg *config.Config) (service.Repository, error) {
	if cfg.UseSupabase() {
		return repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	}
	return repository.NewSheetsRepository(ctx, cfg.SpreadsheetID, cfg.GoogleCredentials)
}
