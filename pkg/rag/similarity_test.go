package rag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/purekb/purekb/pkg/rag"
	"github.com/purekb/purekb/pkg/types"
)

func TestSimilarityBounds(t *testing.T) {
	cases := [][2]string{
		{"machine learning", "deep learning models"},
		{"数据库索引", "数据库的索引结构与查询优化"},
		{"completely unrelated", "天气真好"},
	}
	for _, c := range cases {
		score := rag.Similarity(c[0], c[1], types.LANGUAGE_AUTO_KEY)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestSimilarityIdentity(t *testing.T) {
	assert.Equal(t, 1.0, rag.Similarity("machine learning basics", "machine learning basics", types.LANGUAGE_EN_KEY))
	assert.Equal(t, 1.0, rag.Similarity("并发编程模型", "并发编程模型", types.LANGUAGE_CN_KEY))
}

func TestSimilarityEmptyQuery(t *testing.T) {
	assert.Equal(t, 0.0, rag.Similarity("", "some knowledge text", types.LANGUAGE_EN_KEY))
	assert.Equal(t, 0.0, rag.Similarity("the is a", "some knowledge text", types.LANGUAGE_EN_KEY))
}

func TestSimilarityAsymmetric(t *testing.T) {
	forward := rag.Similarity("database", "database indexing strategies", types.LANGUAGE_EN_KEY)
	backward := rag.Similarity("database indexing strategies", "database", types.LANGUAGE_EN_KEY)

	assert.Equal(t, 1.0, forward)
	assert.Less(t, backward, forward)
}

// 单字查询词通过双向包含即可命中，这里固化该行为
func TestSimilaritySingleCharacterToken(t *testing.T) {
	assert.Equal(t, 1.0, rag.Similarity("天", "今天天气不错", types.LANGUAGE_CN_KEY))
}
