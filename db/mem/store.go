package mem

import (
	"context"
	"fmt"
	"sync"

	dbt "logidash/db/db"
	"logidash/entity"
)

// inMemoryStore is an in-memory implementation of dbt.EntityStore.
// Every write swaps in a new slice built by the pure collection functions, so a
// snapshot handed out earlier never changes underneath its holder.
type inMemoryStore[T entity.Record] struct {
	records []T
	mu      sync.RWMutex
}

// NewInMemoryStore creates a store seeded with a copy of seed.
func NewInMemoryStore[T entity.Record](seed []T) dbt.EntityStore[T] {
	records := make([]T, len(seed))
	copy(records, seed)
	return &inMemoryStore[T]{records: records}
}

// NewSeededStores builds one in-memory store per entity type from the fixtures.
func NewSeededStores() *dbt.Stores {
	return &dbt.Stores{
		Inquiries: NewInMemoryStore(entity.SeedInquiries()),
		Drivers:   NewInMemoryStore(entity.SeedDrivers()),
		Trips:     NewInMemoryStore(entity.SeedTrips()),
		Payables:  NewInMemoryStore(entity.SeedPayables()),
		SLA:       NewInMemoryStore(entity.SeedSLARecords()),
		Users:     NewInMemoryStore(entity.SeedUsers()),
	}
}

// Snapshot returns a copy of the current collection.
func (s *inMemoryStore[T]) Snapshot(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.records), nil
}

// Get returns the record with id.
func (s *inMemoryStore[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := dbt.IndexOf(s.records, id)
	if idx < 0 {
		return zero, fmt.Errorf("get %s: %w", id, dbt.ErrNotFound)
	}
	return s.records[idx], nil
}

func (s *inMemoryStore[T]) Replace(ctx context.Context, id string, updater dbt.Updater[T]) ([]T, error) {
	return s.write(ctx, func(coll []T) ([]T, error) {
		return dbt.Replace(coll, id, updater)
	})
}

func (s *inMemoryStore[T]) Remove(ctx context.Context, id string) ([]T, error) {
	return s.write(ctx, func(coll []T) ([]T, error) {
		return dbt.Remove(coll, id)
	})
}

func (s *inMemoryStore[T]) Append(ctx context.Context, rec T) ([]T, error) {
	return s.write(ctx, func(coll []T) ([]T, error) {
		return dbt.Append(coll, rec)
	})
}

// write applies op under the write lock and publishes its result as the new collection.
func (s *inMemoryStore[T]) write(ctx context.Context, op func([]T) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := op(s.records)
	if err != nil {
		return nil, err
	}
	s.records = next
	return clone(next), nil
}

func clone[T any](coll []T) []T {
	out := make([]T, len(coll))
	copy(out, coll)
	return out
}
