package types

import "time"

// ScoredResult 命中片段及其加权得分
type ScoredResult struct {
	Score     float64   `json:"score"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary,omitempty"`
	Keywords  []string  `json:"keywords,omitempty"`
	Category  string    `json:"category,omitempty"`
	SourceID  int64     `json:"source_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ChatSource struct {
	Content  string   `json:"content"`
	Summary  string   `json:"summary,omitempty"`
	Category string   `json:"category,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

type ChatStats struct {
	SearchTime   int64    `json:"search_time"`
	AITime       int64    `json:"ai_time"`
	TotalTime    int64    `json:"total_time"`
	TotalMatches int      `json:"total_matches"`
	SourcesUsed  int      `json:"sources_used"`
	KeywordsUsed []string `json:"keywords_used"`
}

type RagChatResponse struct {
	Success bool         `json:"success"`
	Answer  string       `json:"answer"`
	Sources []ChatSource `json:"sources"`
	Stats   ChatStats    `json:"stats"`
}
