package sqlstore

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func init() {
	sq.StatementBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

const TABLE_PREFIX = "purekb_"

type Config struct {
	DSN string `toml:"dsn"`
}

type Provider struct {
	db *sqlx.DB
}

func MustSetup(cfg Config) *Provider {
	db, err := sqlx.Connect("postgres", cfg.DSN)
	if err != nil {
		panic(fmt.Errorf("failed to connect postgres, %w", err))
	}

	p := &Provider{db: db}
	if err = p.Install(); err != nil {
		panic(err)
	}
	return p
}

// Install 初始化数据表
func (p *Provider) Install() error {
	createTableSQL := `
CREATE TABLE IF NOT EXISTS ` + TABLE_PREFIX + `cleaned_data (
    id BIGSERIAL PRIMARY KEY,
    original_text TEXT NOT NULL,
    cleaned_data JSONB NOT NULL DEFAULT '{}'::jsonb,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ` + TABLE_PREFIX + `cleaned_data_created_at_idx ON ` + TABLE_PREFIX + `cleaned_data (created_at DESC);`

	if _, err := p.db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to install record table, %w", err)
	}
	return nil
}

func ErrorSqlBuild(err error) error {
	return fmt.Errorf("failed to build sql query, %w", err)
}
