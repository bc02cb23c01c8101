package store

import (
	"context"
	"errors"

	"github.com/purekb/purekb/pkg/types"
)

var (
	// ErrNotConfigured 存储驱动缺少必要配置，调用前未满足前置条件
	ErrNotConfigured = errors.New("record store is not configured")
	ErrNotFound      = errors.New("record not found")
)

type RecordStore interface {
	CreateRecord(ctx context.Context, originalText string, cleaned types.ChunkSet) (int64, error)
	GetRecord(ctx context.Context, id int64) (*types.KnowledgeRecord, error)
	ListRecords(ctx context.Context, limit, offset int) ([]types.KnowledgeRecord, error)
	CountRecords(ctx context.Context) (int64, error)
	UpdateRecord(ctx context.Context, id int64, cleaned types.ChunkSet) error
	DeleteRecord(ctx context.Context, id int64) error
}
