package core

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/purekb/purekb/app/store/sqlstore"
	"github.com/purekb/purekb/app/store/supabase"
)

func MustLoadBaseConfig(path string) CoreConfig {
	if path == "" {
		return LoadBaseConfigFromENV()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	conf := &CoreConfig{}
	if err = toml.Unmarshal(raw, conf); err != nil {
		panic(err)
	}

	return *conf
}

func LoadBaseConfigFromENV() CoreConfig {
	var c CoreConfig
	c.FromENV()
	return c
}

type CoreConfig struct {
	Addr string `toml:"addr"`
	Log  Log    `toml:"log"`

	RecordStore RecordStoreConfig `toml:"record_store"`
	Supabase    supabase.Config   `toml:"supabase"`
	Postgres    sqlstore.Config   `toml:"postgres"`

	AI   AIConfig   `toml:"ai"`
	Chat ChatConfig `toml:"chat"`

	Prompt Prompt `toml:"prompt"`
}

type RecordStoreConfig struct {
	// supabase（默认）或 postgres
	Driver string `toml:"driver"`
}

type AIConfig struct {
	Token       string  `toml:"token"`
	Endpoint    string  `toml:"endpoint"`
	ChatModel   string  `toml:"chat_model"`
	VisionModel string  `toml:"vision_model"`
	Temperature float32 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

type ChatConfig struct {
	SearchLimit    int `toml:"search_limit"`
	RequestTimeout int `toml:"request_timeout"` // 秒
}

// Prompt 自定义提示词，为空则使用系统默认
type Prompt struct {
	Chat  string `toml:"chat"`
	Clean string `toml:"clean"`
}

func (c *CoreConfig) FromENV() {
	c.Addr = os.Getenv("PUREKB_SERVICE_ADDRESS")
	c.Log.FromENV()
	c.RecordStore.Driver = os.Getenv("PUREKB_RECORD_STORE_DRIVER")
	c.Supabase.URL = os.Getenv("PUREKB_SUPABASE_URL")
	c.Supabase.ServiceKey = os.Getenv("PUREKB_SUPABASE_SERVICE_KEY")
	c.Supabase.AnonKey = os.Getenv("PUREKB_SUPABASE_ANON_KEY")
	c.Supabase.Table = os.Getenv("PUREKB_SUPABASE_TABLE")
	c.Postgres.DSN = os.Getenv("PUREKB_POSTGRESQL_DSN")
	c.AI.Token = os.Getenv("PUREKB_AI_TOKEN")
	c.AI.Endpoint = os.Getenv("PUREKB_AI_ENDPOINT")
	c.AI.ChatModel = os.Getenv("PUREKB_AI_CHAT_MODEL")
	c.AI.VisionModel = os.Getenv("PUREKB_AI_VISION_MODEL")
	if v := os.Getenv("PUREKB_CHAT_SEARCH_LIMIT"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			c.Chat.SearchLimit = limit
		}
	}
	if v := os.Getenv("PUREKB_CHAT_REQUEST_TIMEOUT"); v != "" {
		if timeout, err := strconv.Atoi(v); err == nil {
			c.Chat.RequestTimeout = timeout
		}
	}
}

type Log struct {
	Level string `toml:"level"`
	Path  string `toml:"path"`
}

func (l *Log) FromENV() {
	l.Level = os.Getenv("PUREKB_LOG_LEVEL")
	l.Path = os.Getenv("PUREKB_LOG_PATH")
}

func (l *Log) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}
