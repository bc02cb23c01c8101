package v1_test

import (
	"context"

	"github.com/purekb/purekb/app/core"
	"github.com/purekb/purekb/app/store"
	"github.com/purekb/purekb/pkg/ai"
	"github.com/purekb/purekb/pkg/types"
)

type fakeStore struct {
	records   []types.KnowledgeRecord
	listErr   error
	createErr error
	getErr    error
	updateErr error
	deleteErr error
	createdID int64
	saved     []string
}

func (f *fakeStore) CreateRecord(ctx context.Context, originalText string, cleaned types.ChunkSet) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.saved = append(f.saved, originalText)
	return f.createdID, nil
}

func (f *fakeStore) GetRecord(ctx context.Context, id int64) (*types.KnowledgeRecord, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, record := range f.records {
		if record.ID == id {
			return &record, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) ListRecords(ctx context.Context, limit, offset int) ([]types.KnowledgeRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeStore) CountRecords(ctx context.Context) (int64, error) {
	return int64(len(f.records)), nil
}

func (f *fakeStore) UpdateRecord(ctx context.Context, id int64, cleaned types.ChunkSet) error {
	return f.updateErr
}

func (f *fakeStore) DeleteRecord(ctx context.Context, id int64) error {
	return f.deleteErr
}

type fakeGateway struct {
	reply       string
	err         error
	gotMessages []ai.Message
	gotOpts     ai.GenerateOptions
}

func (f *fakeGateway) Generate(ctx context.Context, messages []ai.Message, opts ai.GenerateOptions) (ai.GenerateResult, error) {
	f.gotMessages = messages
	f.gotOpts = opts
	if f.err != nil {
		return ai.GenerateResult{}, f.err
	}
	return ai.GenerateResult{Content: f.reply, Model: "test-model"}, nil
}

func newTestCore(recordStore store.RecordStore, gateway ai.Gateway) *core.Core {
	cfg := core.CoreConfig{
		AI: core.AIConfig{Token: "sk-test"},
	}
	return core.NewCore(cfg, recordStore, gateway)
}
