package db

import (
	"context"

	"logidash/entity"
)

// EntityStore holds the canonical ordered collection of one entity type.
// Mutating methods return the collection as it stands after the change.
type EntityStore[T entity.Record] interface {
	// Read
	Snapshot(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	// Write
	Replace(ctx context.Context, id string, updater Updater[T]) ([]T, error)
	Remove(ctx context.Context, id string) ([]T, error)
	Append(ctx context.Context, rec T) ([]T, error)
}

// Stores groups one store per entity type for a running instance.
type Stores struct {
	Inquiries EntityStore[entity.Inquiry]
	Drivers   EntityStore[entity.Driver]
	Trips     EntityStore[entity.Trip]
	Payables  EntityStore[entity.DriverPayable]
	SLA       EntityStore[entity.SLARecord]
	Users     EntityStore[entity.User]
}
