package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/purekb/purekb/app/store"
	"github.com/purekb/purekb/pkg/types"
)

const DEFAULT_TABLE = "cleaned_data"

type Config struct {
	URL        string `toml:"url"`
	ServiceKey string `toml:"service_key"`
	AnonKey    string `toml:"anon_key"`
	Table      string `toml:"table"`
}

// Driver 通过 PostgREST 接口读写 Supabase 数据表
type Driver struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config, client *http.Client) *Driver {
	if cfg.Table == "" {
		cfg.Table = DEFAULT_TABLE
	}
	if client == nil {
		client = &http.Client{Timeout: time.Second * 15}
	}
	return &Driver{
		cfg:    cfg,
		client: client,
	}
}

func (s *Driver) ready() error {
	if s.cfg.URL == "" || s.cfg.ServiceKey == "" {
		return store.ErrNotConfigured
	}
	return nil
}

func (s *Driver) endpoint() string {
	return fmt.Sprintf("%s/rest/v1/%s", strings.TrimRight(s.cfg.URL, "/"), s.cfg.Table)
}

func (s *Driver) newRequest(ctx context.Context, method, rawURL string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body, %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}

	apikey := s.cfg.AnonKey
	if apikey == "" {
		apikey = s.cfg.ServiceKey
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.ServiceKey)
	req.Header.Set("apikey", apikey)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (s *Driver) do(req *http.Request) (*http.Response, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("record store request failed, %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("record store responded %d, %s", resp.StatusCode, string(raw))
	}
	return resp, nil
}

type recordRow struct {
	ID           int64          `json:"id"`
	OriginalText string         `json:"original_text"`
	CleanedData  types.ChunkSet `json:"cleaned_data"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (r recordRow) toRecord() types.KnowledgeRecord {
	return types.KnowledgeRecord{
		ID:           r.ID,
		OriginalText: r.OriginalText,
		CleanedData:  r.CleanedData,
		CreatedAt:    r.CreatedAt,
	}
}

func (s *Driver) CreateRecord(ctx context.Context, originalText string, cleaned types.ChunkSet) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	payload := map[string]any{
		"original_text": originalText,
		"cleaned_data":  cleaned,
		"created_at":    time.Now().UTC().Format(time.RFC3339),
		"updated_at":    time.Now().UTC().Format(time.RFC3339),
	}

	req, err := s.newRequest(ctx, http.MethodPost, s.endpoint(), payload)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Prefer", "return=representation")

	resp, err := s.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var rows []recordRow
	if err = json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return 0, fmt.Errorf("failed to decode record store response, %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("record store returned no rows for insert")
	}
	return rows[0].ID, nil
}

func (s *Driver) GetRecord(ctx context.Context, id int64) (*types.KnowledgeRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", "eq."+strconv.FormatInt(id, 10))

	req, err := s.newRequest(ctx, http.MethodGet, s.endpoint()+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rows []recordRow
	if err = json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode record store response, %w", err)
	}
	if len(rows) == 0 {
		return nil, store.ErrNotFound
	}

	record := rows[0].toRecord()
	return &record, nil
}

func (s *Driver) ListRecords(ctx context.Context, limit, offset int) ([]types.KnowledgeRecord, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	req, err := s.newRequest(ctx, http.MethodGet, s.endpoint()+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var rows []recordRow
	if err = json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode record store response, %w", err)
	}

	records := make([]types.KnowledgeRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

// CountRecords 借助 PostgREST 的 count=exact 从 Content-Range 读取总数
func (s *Driver) CountRecords(ctx context.Context) (int64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}

	req, err := s.newRequest(ctx, http.MethodHead, s.endpoint()+"?select=*", nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Prefer", "count=exact")

	resp, err := s.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	contentRange := resp.Header.Get("Content-Range")
	parts := strings.Split(contentRange, "/")
	if len(parts) != 2 {
		return 0, fmt.Errorf("record store returned unexpected content range %q", contentRange)
	}
	count, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("record store returned unexpected content range %q", contentRange)
	}
	return count, nil
}

func (s *Driver) UpdateRecord(ctx context.Context, id int64, cleaned types.ChunkSet) error {
	if err := s.ready(); err != nil {
		return err
	}

	payload := map[string]any{
		"cleaned_data": cleaned,
		"updated_at":   time.Now().UTC().Format(time.RFC3339),
	}

	req, err := s.newRequest(ctx, http.MethodPatch, s.endpoint()+"?id=eq."+strconv.FormatInt(id, 10), payload)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=representation")

	resp, err := s.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var rows []recordRow
	if err = json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return fmt.Errorf("failed to decode record store response, %w", err)
	}
	if len(rows) == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Driver) DeleteRecord(ctx context.Context, id int64) error {
	if err := s.ready(); err != nil {
		return err
	}

	req, err := s.newRequest(ctx, http.MethodDelete, s.endpoint()+"?id=eq."+strconv.FormatInt(id, 10), nil)
	if err != nil {
		return err
	}

	resp, err := s.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}
