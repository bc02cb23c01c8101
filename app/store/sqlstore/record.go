package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/purekb/purekb/app/store"
	"github.com/purekb/purekb/pkg/types"
)

type recordRow struct {
	ID           int64     `db:"id"`
	OriginalText string    `db:"original_text"`
	CleanedData  []byte    `db:"cleaned_data"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r recordRow) toRecord() (types.KnowledgeRecord, error) {
	record := types.KnowledgeRecord{
		ID:           r.ID,
		OriginalText: r.OriginalText,
		CreatedAt:    r.CreatedAt,
	}
	if len(r.CleanedData) > 0 {
		if err := json.Unmarshal(r.CleanedData, &record.CleanedData); err != nil {
			return record, fmt.Errorf("failed to unmarshal cleaned data of record %d, %w", r.ID, err)
		}
	}
	return record, nil
}

func (p *Provider) table() string {
	return TABLE_PREFIX + "cleaned_data"
}

func (p *Provider) CreateRecord(ctx context.Context, originalText string, cleaned types.ChunkSet) (int64, error) {
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal cleaned data, %w", err)
	}

	query, args, err := sq.Insert(p.table()).
		Columns("original_text", "cleaned_data").
		Values(originalText, raw).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var id int64
	if err = p.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, err
	}
	return id, nil
}

func (p *Provider) GetRecord(ctx context.Context, id int64) (*types.KnowledgeRecord, error) {
	query, args, err := sq.Select("id", "original_text", "cleaned_data", "created_at").
		From(p.table()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var row recordRow
	if err = p.db.GetContext(ctx, &row, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	record, err := row.toRecord()
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (p *Provider) ListRecords(ctx context.Context, limit, offset int) ([]types.KnowledgeRecord, error) {
	query, args, err := sq.Select("id", "original_text", "cleaned_data", "created_at").
		From(p.table()).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, ErrorSqlBuild(err)
	}

	var rows []recordRow
	if err = p.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	records := make([]types.KnowledgeRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (p *Provider) CountRecords(ctx context.Context) (int64, error) {
	query, args, err := sq.Select("COUNT(*)").From(p.table()).ToSql()
	if err != nil {
		return 0, ErrorSqlBuild(err)
	}

	var count int64
	if err = p.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, err
	}
	return count, nil
}

func (p *Provider) UpdateRecord(ctx context.Context, id int64, cleaned types.ChunkSet) error {
	raw, err := json.Marshal(cleaned)
	if err != nil {
		return fmt.Errorf("failed to marshal cleaned data, %w", err)
	}

	query, args, err := sq.Update(p.table()).
		Set("cleaned_data", raw).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	result, err := p.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (p *Provider) DeleteRecord(ctx context.Context, id int64) error {
	query, args, err := sq.Delete(p.table()).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return ErrorSqlBuild(err)
	}

	_, err = p.db.ExecContext(ctx, query, args...)
	return err
}
