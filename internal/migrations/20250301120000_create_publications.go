package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreatePublications, downCreatePublications)
}

func upCreatePublications(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS publications (
			id          BIGSERIAL PRIMARY KEY,
			media_url   TEXT NOT NULL,
			caption     TEXT NOT NULL DEFAULT '',
			media_kind  VARCHAR(16) NOT NULL,
			creation_id VARCHAR(64) NOT NULL DEFAULT '',
			media_id    VARCHAR(64) NOT NULL DEFAULT '',
			state       VARCHAR(32) NOT NULL,
			error       TEXT NOT NULL DEFAULT '',
			created_at  TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			updated_at  TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_publications_state_updated_at ON publications (state, updated_at);
		CREATE INDEX IF NOT EXISTS idx_publications_created_at ON publications (created_at);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downCreatePublications(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS publications;`)
	if err != nil {
		return err
	}
	return nil
}
