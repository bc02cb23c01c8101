package core

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupConfigFromEnv(t *testing.T) {
	addr := "localhost:11111"
	os.Setenv("PUREKB_SERVICE_ADDRESS", addr)
	os.Setenv("PUREKB_SUPABASE_URL", "https://example.supabase.co")
	os.Setenv("PUREKB_AI_TOKEN", "sk-test")
	os.Setenv("PUREKB_CHAT_SEARCH_LIMIT", "7")

	cfg := LoadBaseConfigFromENV()

	assert.Equal(t, cfg.Addr, addr)
	assert.Equal(t, cfg.Supabase.URL, "https://example.supabase.co")
	assert.Equal(t, cfg.AI.Token, "sk-test")
	assert.Equal(t, cfg.Chat.SearchLimit, 7)
}

func TestSlogLevel(t *testing.T) {
	l := Log{Level: "warn"}
	assert.Equal(t, slog.LevelWarn, l.SlogLevel())

	l.Level = ""
	assert.Equal(t, slog.LevelDebug, l.SlogLevel())
}
