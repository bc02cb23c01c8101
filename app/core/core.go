package core

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/purekb/purekb/app/store"
	"github.com/purekb/purekb/app/store/sqlstore"
	"github.com/purekb/purekb/app/store/supabase"
	"github.com/purekb/purekb/pkg/ai"
	"github.com/purekb/purekb/pkg/ai/openai"
)

const (
	RECORD_STORE_DRIVER_SUPABASE = "supabase"
	RECORD_STORE_DRIVER_POSTGRES = "postgres"

	DEFAULT_REQUEST_TIMEOUT = time.Second * 60
)

type Core struct {
	cfg CoreConfig

	recordStore store.RecordStore
	aiGateway   ai.Gateway

	httpClient *http.Client
	httpEngine *gin.Engine

	metrics *Metrics
}

func MustSetupCore(cfg CoreConfig) *Core {
	{
		var writer io.Writer = os.Stdout
		if cfg.Log.Path != "" {
			writer = &lumberjack.Logger{
				Filename:   cfg.Log.Path,
				MaxSize:    500, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
		}
		l := slog.New(slog.NewJSONHandler(writer, &slog.HandlerOptions{
			Level: cfg.Log.SlogLevel(),
		}))
		slog.SetDefault(l)
	}

	core := NewCore(cfg, nil, nil)

	// setup store
	setupRecordStore(core)

	core.aiGateway = openai.New(cfg.AI.Token, cfg.AI.Endpoint, cfg.AI.ChatModel)

	return core
}

// NewCore 允许测试注入 store 与 gateway 实现
func NewCore(cfg CoreConfig, recordStore store.RecordStore, gateway ai.Gateway) *Core {
	return &Core{
		cfg:         cfg,
		recordStore: recordStore,
		aiGateway:   gateway,
		httpClient:  &http.Client{Timeout: time.Second * 15},
		httpEngine:  gin.New(),
		metrics:     NewMetrics("purekb", "core"),
	}
}

func setupRecordStore(core *Core) {
	switch core.cfg.RecordStore.Driver {
	case RECORD_STORE_DRIVER_POSTGRES:
		core.recordStore = sqlstore.MustSetup(core.cfg.Postgres)
	default:
		core.recordStore = supabase.New(core.cfg.Supabase, core.httpClient)
	}
}

func (s *Core) Cfg() CoreConfig {
	return s.cfg
}

func (s *Core) HttpEngine() *gin.Engine {
	return s.httpEngine
}

func (s *Core) Metrics() *Metrics {
	return s.metrics
}

func (s *Core) Store() store.RecordStore {
	return s.recordStore
}

func (s *Core) AI() ai.Gateway {
	return s.aiGateway
}

// VisionModel 图片识别用的模型，配置优先
func (s *Core) VisionModel() string {
	if s.cfg.AI.VisionModel != "" {
		return s.cfg.AI.VisionModel
	}
	return openai.DEFAULT_VISION_MODEL
}

func (s *Core) RequestTimeout() time.Duration {
	if s.cfg.Chat.RequestTimeout > 0 {
		return time.Duration(s.cfg.Chat.RequestTimeout) * time.Second
	}
	return DEFAULT_REQUEST_TIMEOUT
}
