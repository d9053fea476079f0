package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	dbt "logidash/db/db"
	"logidash/entity"
)

// GORMStore is a GORM-based PostgreSQL implementation of dbt.EntityStore.
// All entity types share the entities table and are told apart by kind.
type GORMStore[T entity.Record] struct {
	db   *gorm.DB
	kind string
}

// NewGORMStore creates a store for the records of one kind.
func NewGORMStore[T entity.Record](db *gorm.DB, kind string) *GORMStore[T] {
	return &GORMStore[T]{db: db, kind: kind}
}

// Snapshot loads the whole collection in position order.
func (s *GORMStore[T]) Snapshot(ctx context.Context) ([]T, error) {
	return s.snapshot(s.db.WithContext(ctx))
}

func (s *GORMStore[T]) snapshot(tx *gorm.DB) ([]T, error) {
	var rows []EntityModel
	result := tx.Where("kind = ?", s.kind).Order("position, id").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load %s: %w", s.kind, result.Error)
	}

	records := make([]T, 0, len(rows))
	for _, row := range rows {
		rec, err := decode[T](row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// Get retrieves one record by id.
func (s *GORMStore[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	var row EntityModel
	result := s.db.WithContext(ctx).Where("kind = ? AND id = ?", s.kind, id).First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return zero, fmt.Errorf("get %s %s: %w", s.kind, id, dbt.ErrNotFound)
		}
		return zero, fmt.Errorf("failed to get %s %s: %w", s.kind, id, result.Error)
	}
	return decode[T](row)
}

// Replace locks the row, applies updater and writes the new body back.
func (s *GORMStore[T]) Replace(ctx context.Context, id string, updater dbt.Updater[T]) ([]T, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row EntityModel
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("kind = ? AND id = ?", s.kind, id).
			First(&row)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return fmt.Errorf("replace %s %s: %w", s.kind, id, dbt.ErrNotFound)
			}
			return fmt.Errorf("failed to lock %s %s: %w", s.kind, id, result.Error)
		}

		old, err := decode[T](row)
		if err != nil {
			return err
		}
		updated, err := updater(old)
		if err != nil {
			return err
		}
		if updated.GetID() != id {
			return fmt.Errorf("replace %s: updater changed id to %s", id, updated.GetID())
		}
		body, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("failed to encode %s %s: %w", s.kind, id, err)
		}

		result = tx.Model(&EntityModel{}).
			Where("kind = ? AND id = ?", s.kind, id).
			Updates(map[string]interface{}{"body": string(body), "updated_at": time.Now().UTC()})
		if result.Error != nil {
			return fmt.Errorf("failed to update %s %s: %w", s.kind, id, result.Error)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Snapshot(ctx)
}

// Remove deletes one record.
func (s *GORMStore[T]) Remove(ctx context.Context, id string) ([]T, error) {
	result := s.db.WithContext(ctx).Where("kind = ? AND id = ?", s.kind, id).Delete(&EntityModel{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to delete %s %s: %w", s.kind, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("remove %s %s: %w", s.kind, id, dbt.ErrNotFound)
	}
	return s.Snapshot(ctx)
}

// Append stores rec after the current last position. A transaction-scoped advisory
// lock per kind serializes concurrent appends so no two records share a position.
func (s *GORMStore[T]) Append(ctx context.Context, rec T) ([]T, error) {
	if rec.GetID() == "" {
		return nil, dbt.ErrEmptyID
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// appends of one kind queue behind each other until commit
		if result := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", s.kind); result.Error != nil {
			return fmt.Errorf("failed to lock %s for append: %w", s.kind, result.Error)
		}

		var last int64
		result := tx.Model(&EntityModel{}).
			Where("kind = ?", s.kind).
			Select("COALESCE(MAX(position), 0)").
			Scan(&last)
		if result.Error != nil {
			return fmt.Errorf("failed to read last position of %s: %w", s.kind, result.Error)
		}
		return s.insert(tx, rec, last+1)
	})
	if err != nil {
		return nil, err
	}
	return s.Snapshot(ctx)
}

// Seed inserts records in order when no record of this kind exists yet.
func (s *GORMStore[T]) Seed(ctx context.Context, records []T) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if result := tx.Model(&EntityModel{}).Where("kind = ?", s.kind).Count(&count); result.Error != nil {
			return fmt.Errorf("failed to count %s: %w", s.kind, result.Error)
		}
		if count > 0 {
			return nil
		}
		for i, rec := range records {
			if err := s.insert(tx, rec, int64(i+1)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *GORMStore[T]) insert(tx *gorm.DB, rec T, position int64) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode %s %s: %w", s.kind, rec.GetID(), err)
	}
	row := EntityModel{
		Kind:     s.kind,
		ID:       rec.GetID(),
		Position: position,
		Body:     string(body),
	}
	if result := tx.Create(&row); result.Error != nil {
		if strings.Contains(result.Error.Error(), "duplicate key value violates unique constraint") {
			return fmt.Errorf("append %s %s: %w", s.kind, rec.GetID(), dbt.ErrDuplicateID)
		}
		return fmt.Errorf("failed to create %s %s: %w", s.kind, rec.GetID(), result.Error)
	}
	return nil
}

func decode[T entity.Record](row EntityModel) (T, error) {
	var rec T
	if err := json.Unmarshal([]byte(row.Body), &rec); err != nil {
		return rec, fmt.Errorf("failed to decode %s %s: %w", row.Kind, row.ID, err)
	}
	return rec, nil
}
