package rag_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/purekb/purekb/pkg/rag"
	"github.com/purekb/purekb/pkg/types"
)

type fakeRecordSource struct {
	records  []types.KnowledgeRecord
	err      error
	gotLimit int
}

func (f *fakeRecordSource) ListRecords(ctx context.Context, limit, offset int) ([]types.KnowledgeRecord, error) {
	f.gotLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func newRecord(id int64, originalText string, chunks ...types.Chunk) types.KnowledgeRecord {
	return types.KnowledgeRecord{
		ID:           id,
		OriginalText: originalText,
		CleanedData:  types.ChunkSet{Chunks: chunks},
		CreatedAt:    time.Now(),
	}
}

func TestRetrieveChineseSearchVectorHit(t *testing.T) {
	source := &fakeRecordSource{
		records: []types.KnowledgeRecord{
			newRecord(1, "Go语言并发编程笔记", types.Chunk{
				SearchVector: "Go语言的并发模型基于goroutine和channel",
				Keywords:     []string{"并发", "goroutine"},
				Summary:      "Go并发编程要点",
				Category:     "编程语言",
			}),
		},
	}

	result, err := rag.NewRetriever(source).Retrieve(context.Background(), "Go的并发模型是什么", 0, types.LANGUAGE_CN_KEY)
	assert.NoError(t, err)
	assert.Len(t, result.Results, 1)
	assert.Equal(t, 1, result.TotalMatches)
	assert.Equal(t, "Go语言的并发模型基于goroutine和channel", result.Results[0].Content)
	assert.Equal(t, int64(1), result.Results[0].SourceID)
	assert.Equal(t, 200, source.gotLimit)
}

func TestRetrieveRelevanceFloor(t *testing.T) {
	source := &fakeRecordSource{
		records: []types.KnowledgeRecord{
			newRecord(1, "厨房收纳技巧大全", types.Chunk{
				SearchVector: "厨房收纳的十个小技巧",
				Summary:      "收纳技巧",
			}),
		},
	}

	result, err := rag.NewRetriever(source).Retrieve(context.Background(), "kubernetes pod scheduling", 5, types.LANGUAGE_EN_KEY)
	assert.NoError(t, err)
	assert.Empty(t, result.Results)
	assert.Equal(t, 0, result.TotalMatches)
}

func TestRetrieveRankedByScore(t *testing.T) {
	source := &fakeRecordSource{
		records: []types.KnowledgeRecord{
			newRecord(1, "notes about storage engines", types.Chunk{
				Summary: "database index structures",
			}),
			newRecord(2, "database index deep dive", types.Chunk{
				SearchVector: "database index btree hash comparison",
				Keywords:     []string{"database", "index"},
				Summary:      "database index comparison",
			}),
		},
	}

	result, err := rag.NewRetriever(source).Retrieve(context.Background(), "database index", 5, types.LANGUAGE_EN_KEY)
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, len(result.Results), 2)
	assert.Equal(t, int64(2), result.Results[0].SourceID)
	for i := 1; i < len(result.Results); i++ {
		assert.GreaterOrEqual(t, result.Results[i-1].Score, result.Results[i].Score)
	}
}

func TestRetrieveLimit(t *testing.T) {
	var records []types.KnowledgeRecord
	for i := int64(1); i <= 8; i++ {
		records = append(records, newRecord(i, "cache invalidation strategies", types.Chunk{
			SearchVector: "cache invalidation strategies explained",
		}))
	}
	source := &fakeRecordSource{records: records}

	result, err := rag.NewRetriever(source).Retrieve(context.Background(), "cache invalidation", 3, types.LANGUAGE_EN_KEY)
	assert.NoError(t, err)
	assert.Len(t, result.Results, 3)
	assert.Equal(t, 8, result.TotalMatches)
}

func TestRetrieveDefaultLimit(t *testing.T) {
	var records []types.KnowledgeRecord
	for i := int64(1); i <= 10; i++ {
		records = append(records, newRecord(i, "cache invalidation strategies", types.Chunk{
			SearchVector: "cache invalidation strategies explained",
		}))
	}
	source := &fakeRecordSource{records: records}

	result, err := rag.NewRetriever(source).Retrieve(context.Background(), "cache invalidation", 0, types.LANGUAGE_EN_KEY)
	assert.NoError(t, err)
	assert.Len(t, result.Results, rag.DefaultSearchLimit)
}

func TestRetrieveStoreFailure(t *testing.T) {
	source := &fakeRecordSource{err: errors.New("connection refused")}

	result, err := rag.NewRetriever(source).Retrieve(context.Background(), "anything", 5, types.LANGUAGE_EN_KEY)
	assert.Error(t, err)
	assert.Empty(t, result.Results)
	assert.NotEmpty(t, result.KeywordsUsed)
}

func TestRetrieveKeywordsReportTruncated(t *testing.T) {
	source := &fakeRecordSource{}

	result, err := rag.NewRetriever(source).Retrieve(context.Background(),
		"how does raft consensus handle leader election network partition log replication safety", 5, types.LANGUAGE_EN_KEY)
	assert.NoError(t, err)
	assert.Len(t, result.KeywordsUsed, 10)
}
