package service

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/purekb/purekb/app/core"
	"github.com/purekb/purekb/app/store"
	"github.com/purekb/purekb/cmd/service/handler"
	"github.com/purekb/purekb/pkg/ai"
	"github.com/purekb/purekb/pkg/types"
)

type stubStore struct {
	records []types.KnowledgeRecord
}

func (s *stubStore) CreateRecord(ctx context.Context, originalText string, cleaned types.ChunkSet) (int64, error) {
	return 1, nil
}

func (s *stubStore) GetRecord(ctx context.Context, id int64) (*types.KnowledgeRecord, error) {
	return nil, store.ErrNotFound
}

func (s *stubStore) ListRecords(ctx context.Context, limit, offset int) ([]types.KnowledgeRecord, error) {
	return s.records, nil
}

func (s *stubStore) CountRecords(ctx context.Context) (int64, error) {
	return int64(len(s.records)), nil
}

func (s *stubStore) UpdateRecord(ctx context.Context, id int64, cleaned types.ChunkSet) error {
	return nil
}

func (s *stubStore) DeleteRecord(ctx context.Context, id int64) error {
	return nil
}

type stubGateway struct {
	reply string
	err   error
}

func (s *stubGateway) Generate(ctx context.Context, messages []ai.Message, opts ai.GenerateOptions) (ai.GenerateResult, error) {
	if s.err != nil {
		return ai.GenerateResult{}, s.err
	}
	return ai.GenerateResult{Content: s.reply, Model: "test-model"}, nil
}

func newTestServer(gateway ai.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	appCore := core.NewCore(core.CoreConfig{
		AI: core.AIConfig{Token: "sk-test"},
	}, &stubStore{}, gateway)

	httpSrv := &handler.HttpSrv{
		Core:   appCore,
		Engine: appCore.HttpEngine(),
	}
	setupHttpRouter(httpSrv)
	return httpSrv.Engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var parsed map[string]any
	json.Unmarshal(w.Body.Bytes(), &parsed)
	return w, parsed
}

func TestHealthRoute(t *testing.T) {
	engine := newTestServer(&stubGateway{reply: "ok"})

	w, body := doJSON(t, engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "healthy", body["status"])
}

func TestAskRoute(t *testing.T) {
	engine := newTestServer(&stubGateway{reply: "the answer"})

	w, body := doJSON(t, engine, http.MethodPost, "/chat/ask", map[string]any{
		"question": "what is purekb",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "the answer", body["answer"])
	assert.Contains(t, body, "stats")
}

func TestAskRouteGatewayFailure(t *testing.T) {
	engine := newTestServer(&stubGateway{err: stderrors.New("connection reset")})

	w, body := doJSON(t, engine, http.MethodPost, "/chat/ask", map[string]any{
		"question": "what is purekb",
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Upstream service is unavailable", body["error"])
}

func TestAskRouteMissingQuestion(t *testing.T) {
	engine := newTestServer(&stubGateway{reply: "ok"})

	w, body := doJSON(t, engine, http.MethodPost, "/chat/ask", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}

func TestCleanImageRoute(t *testing.T) {
	engine := newTestServer(&stubGateway{reply: `{"chunks":[{"summary":"流程图","keywords":["流程"],"category":"图片识别","search_vector":"审批流程 节点"}]}`})

	w, body := doJSON(t, engine, http.MethodPost, "/data_cleaner/clean_image", map[string]any{
		"image": "iVBORw0KGgo=",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "cleaned_data")
}

func TestCleanImageRouteMissingImage(t *testing.T) {
	engine := newTestServer(&stubGateway{reply: "ok"})

	w, body := doJSON(t, engine, http.MethodPost, "/data_cleaner/clean_image", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestGetDataRouteNotFound(t *testing.T) {
	engine := newTestServer(&stubGateway{reply: "ok"})

	w, body := doJSON(t, engine, http.MethodGet, "/data_cleaner/data/123", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
}
