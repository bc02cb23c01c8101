package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/purekb/purekb/pkg/types"
)

const (
	// 固定拉取最近 200 条记录做线性打分，库量大了需要换倒排或向量索引
	recordFetchWindow = 200

	// 得分需严格大于该阈值才算命中
	relevanceFloor = 0.1

	DefaultSearchLimit = 5

	reportKeywordLimit = 10
)

// 各字段的打分权重
const (
	weightSearchVector = 3
	weightKeywords     = 2
	weightSummary      = 1.5
	weightOriginalText = 0.5
)

type RecordSource interface {
	ListRecords(ctx context.Context, limit, offset int) ([]types.KnowledgeRecord, error)
}

type Retriever struct {
	source RecordSource
}

func NewRetriever(source RecordSource) *Retriever {
	return &Retriever{source: source}
}

type RetrieveResult struct {
	Results      []types.ScoredResult
	TotalMatches int
	SearchTime   int64
	KeywordsUsed []string
}

// Retrieve 对最近的记录逐片段加权打分，返回按得分降序截断后的结果。
// 存储层失败则整体失败，不返回部分结果。
func (r *Retriever) Retrieve(ctx context.Context, question string, limit int, language string) (RetrieveResult, error) {
	start := time.Now()
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	keywords := Tokenize(question, language)
	if len(keywords) > reportKeywordLimit {
		keywords = keywords[:reportKeywordLimit]
	}

	records, err := r.source.ListRecords(ctx, recordFetchWindow, 0)
	if err != nil {
		return RetrieveResult{
			SearchTime:   time.Since(start).Milliseconds(),
			KeywordsUsed: keywords,
		}, fmt.Errorf("failed to list knowledge records, %w", err)
	}

	var scored []types.ScoredResult
	for _, record := range records {
		for _, chunk := range record.CleanedData.Chunks {
			score := scoreChunk(question, record, chunk, language)
			if score <= relevanceFloor {
				continue
			}
			scored = append(scored, types.ScoredResult{
				Score:     score,
				Content:   chunkContent(chunk),
				Summary:   chunk.Summary,
				Keywords:  chunk.Keywords,
				Category:  chunk.Category,
				SourceID:  record.ID,
				CreatedAt: record.CreatedAt,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	total := len(scored)
	if len(scored) > limit {
		scored = scored[:limit]
	}

	return RetrieveResult{
		Results:      scored,
		TotalMatches: total,
		SearchTime:   time.Since(start).Milliseconds(),
		KeywordsUsed: keywords,
	}, nil
}

func scoreChunk(question string, record types.KnowledgeRecord, chunk types.Chunk, language string) float64 {
	var score float64
	if chunk.SearchVector != "" {
		score += Similarity(question, chunk.SearchVector, language) * weightSearchVector
	}
	if len(chunk.Keywords) > 0 {
		score += Similarity(question, strings.Join(chunk.Keywords, " "), language) * weightKeywords
	}
	if chunk.Summary != "" {
		score += Similarity(question, chunk.Summary, language) * weightSummary
	}
	if record.OriginalText != "" {
		score += Similarity(question, record.OriginalText, language) * weightOriginalText
	}
	return score
}

func chunkContent(chunk types.Chunk) string {
	if chunk.SearchVector != "" {
		return chunk.SearchVector
	}
	return chunk.Summary
}
