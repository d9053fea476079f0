package db

import (
	"errors"
	"fmt"

	"logidash/entity"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrDuplicateID = errors.New("record id already exists")
	ErrEmptyID     = errors.New("record id is empty")
)

// Updater produces the replacement of a record. Returning an error leaves the
// collection untouched.
type Updater[T entity.Record] func(old T) (T, error)

// IndexOf returns the position of id in coll, or -1.
func IndexOf[T entity.Record](coll []T, id string) int {
	for i, rec := range coll {
		if rec.GetID() == id {
			return i
		}
	}
	return -1
}

// Replace returns a new collection in which the record with id is replaced by
// updater(old). coll itself is never modified.
func Replace[T entity.Record](coll []T, id string, updater Updater[T]) ([]T, error) {
	idx := IndexOf(coll, id)
	if idx < 0 {
		return nil, fmt.Errorf("replace %s: %w", id, ErrNotFound)
	}
	updated, err := updater(coll[idx])
	if err != nil {
		return nil, err
	}
	if updated.GetID() != id {
		return nil, fmt.Errorf("replace %s: updater changed id to %s", id, updated.GetID())
	}

	result := make([]T, len(coll))
	copy(result, coll)
	result[idx] = updated
	return result, nil
}

// Remove returns a new collection without the record with id.
func Remove[T entity.Record](coll []T, id string) ([]T, error) {
	idx := IndexOf(coll, id)
	if idx < 0 {
		return nil, fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}
	result := make([]T, 0, len(coll)-1)
	result = append(result, coll[:idx]...)
	return append(result, coll[idx+1:]...), nil
}

// Append returns a new collection with rec added last. Id assignment is the caller's job.
func Append[T entity.Record](coll []T, rec T) ([]T, error) {
	id := rec.GetID()
	if id == "" {
		return nil, ErrEmptyID
	}
	if IndexOf(coll, id) >= 0 {
		return nil, fmt.Errorf("append %s: %w", id, ErrDuplicateID)
	}
	result := make([]T, len(coll), len(coll)+1)
	copy(result, coll)
	return append(result, rec), nil
}
