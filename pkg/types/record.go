package types

import "time"

const (
	LANGUAGE_AUTO_KEY = "auto"
	LANGUAGE_CN_KEY   = "zh"
	LANGUAGE_EN_KEY   = "en"
)

// Chunk 清洗后的知识片段，所有字段均可缺省
type Chunk struct {
	Summary      string   `json:"summary,omitempty"`
	Keywords     []string `json:"keywords,omitempty"`
	Category     string   `json:"category,omitempty"`
	SearchVector string   `json:"search_vector,omitempty"`
}

type ChunkSet struct {
	Chunks []Chunk `json:"chunks"`
}

type KnowledgeRecord struct {
	ID           int64     `json:"id"`
	OriginalText string    `json:"original_text"`
	CleanedData  ChunkSet  `json:"cleaned_data"`
	CreatedAt    time.Time `json:"created_at"`
}
