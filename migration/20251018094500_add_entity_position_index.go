package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upAddEntityPositionIndex, downAddEntityPositionIndex)
}

func upAddEntityPositionIndex(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `CREATE INDEX idx_entities_kind_position ON entities(kind, position);`)
	return err
}

func downAddEntityPositionIndex(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_entities_kind_position;`)
	return err
}
