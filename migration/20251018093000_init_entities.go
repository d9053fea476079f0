package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upInitEntities, downInitEntities)
}

func upInitEntities(ctx context.Context, tx *sql.Tx) error {
	// every entity kind shares one document table
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE entities (
			kind VARCHAR(64) NOT NULL,
			id VARCHAR(255) NOT NULL,
			position BIGINT NOT NULL,
			body JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (kind, id)
		);
	`)
	return err
}

func downInitEntities(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS entities;`)
	return err
}
