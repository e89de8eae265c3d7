package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	OpenAIKey     string
	OpenAIModel   string

	SheetURL          string
	SpreadsheetID     string
	GoogleCredentials []byte

	SupabaseURL string
	SupabaseKey string

	Debug bool
}

// UseSupabase reports whether the Supabase backend should be used instead of
// the spreadsheet.
func (c *Config) UseSupabase() bool {
	return c.SupabaseURL != "" && c.SupabaseKey != ""
}

const defaultModel = "gpt-4o-mini"

var sheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)

// LoadConfig reads the environment and validates it. Every misconfiguration
// is an error here so the process fails at startup, not on the first message.
func LoadConfig() (*Config, error) {
	// .env is optional; deployments usually inject the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   os.Getenv("OPENAI_MODEL"),
		SheetURL:      os.Getenv("SHEET_URL"),
		SupabaseURL:   os.Getenv("SUPABASE_URL"),
		SupabaseKey:   os.Getenv("SUPABASE_KEY"),
		Debug:         os.Getenv("BOT_DEBUG") == "1",
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = defaultModel
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	if cfg.UseSupabase() {
		return cfg, nil
	}
	if cfg.SupabaseURL != "" || cfg.SupabaseKey != "" {
		return nil, fmt.Errorf("SUPABASE_URL and SUPABASE_KEY must be set together")
	}

	if cfg.SheetURL == "" {
		return nil, fmt.Errorf("SHEET_URL is not set")
	}
	id, err := SpreadsheetIDFromURL(cfg.SheetURL)
	if err != nil {
		return nil, err
	}
	cfg.SpreadsheetID = id

	raw := os.Getenv("GOOGLE_CREDENTIALS_JSON")
	if raw == "" {
		return nil, fmt.Errorf("GOOGLE_CREDENTIALS_JSON is not set")
	}
	if !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("GOOGLE_CREDENTIALS_JSON is not valid JSON")
	}
	cfg.GoogleCredentials = []byte(raw)

	return cfg, nil
}

// SpreadsheetIDFromURL extracts the document ID from a Google Sheets URL of
// the form https://docs.google.com/spreadsheets/d/<id>/edit.
func SpreadsheetIDFromURL(url string) (string, error) {
	m := sheetIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("SHEET_URL %q has no /d/<id> segment", url)
	}
	return m[1], nil
}
