package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/purekb/purekb/app/store"
	"github.com/purekb/purekb/pkg/types"
)

func newTestDriver(handler http.HandlerFunc) (*Driver, *httptest.Server) {
	server := httptest.NewServer(handler)
	driver := New(Config{
		URL:        server.URL,
		ServiceKey: "service-key",
		AnonKey:    "anon-key",
	}, server.Client())
	return driver, server
}

func TestListRecords(t *testing.T) {
	var gotPath, gotQuery, gotAuth, gotApikey string
	driver, server := newTestDriver(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		gotApikey = r.Header.Get("apikey")
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id":            int64(7),
				"original_text": "raw text",
				"cleaned_data": map[string]any{
					"chunks": []map[string]any{
						{"summary": "s", "search_vector": "sv", "keywords": []string{"k"}},
					},
				},
				"created_at": "2025-01-02T03:04:05Z",
			},
		})
	})
	defer server.Close()

	records, err := driver.ListRecords(context.Background(), 200, 0)
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, int64(7), records[0].ID)
	assert.Equal(t, "sv", records[0].CleanedData.Chunks[0].SearchVector)

	assert.Equal(t, "/rest/v1/cleaned_data", gotPath)
	assert.Contains(t, gotQuery, "order=created_at.desc")
	assert.Contains(t, gotQuery, "limit=200")
	assert.Equal(t, "Bearer service-key", gotAuth)
	assert.Equal(t, "anon-key", gotApikey)
}

func TestCreateRecord(t *testing.T) {
	driver, server := newTestDriver(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "return=representation", r.Header.Get("Prefer"))

		var payload map[string]any
		json.NewDecoder(r.Body).Decode(&payload)
		assert.Equal(t, "some text", payload["original_text"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode([]map[string]any{{"id": int64(42)}})
	})
	defer server.Close()

	id, err := driver.CreateRecord(context.Background(), "some text", types.ChunkSet{})
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestGetRecordNotFound(t *testing.T) {
	driver, server := newTestDriver(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	defer server.Close()

	_, err := driver.GetRecord(context.Background(), 99)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCountRecords(t *testing.T) {
	driver, server := newTestDriver(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "count=exact", r.Header.Get("Prefer"))
		w.Header().Set("Content-Range", "0-9/37")
	})
	defer server.Close()

	count, err := driver.CountRecords(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(37), count)
}

func TestUpstreamFailure(t *testing.T) {
	driver, server := newTestDriver(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := driver.ListRecords(context.Background(), 10, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestNotConfigured(t *testing.T) {
	driver := New(Config{}, nil)

	_, err := driver.ListRecords(context.Background(), 10, 0)
	assert.ErrorIs(t, err, store.ErrNotConfigured)

	_, err = driver.CreateRecord(context.Background(), "text", types.ChunkSet{})
	assert.ErrorIs(t, err, store.ErrNotConfigured)
}
