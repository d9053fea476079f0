package db

import (
	"context"

	"github.com/vikstrous/dataloadgen"

	"logidash/entity"
)

type DataLoaderKey string

const (
	DataLoaderKeyDrivers DataLoaderKey = "driverDataLoader"
)

// WithDriverLoader attaches a request-scoped driver loader to ctx.
func WithDriverLoader(ctx context.Context, loader *dataloadgen.Loader[string, entity.Driver]) context.Context {
	return context.WithValue(ctx, DataLoaderKeyDrivers, loader)
}

// DriverLoaderFrom returns the loader attached by WithDriverLoader, if any.
func DriverLoaderFrom(ctx context.Context) (*dataloadgen.Loader[string, entity.Driver], bool) {
	loader, ok := ctx.Value(DataLoaderKeyDrivers).(*dataloadgen.Loader[string, entity.Driver])
	return loader, ok && loader != nil
}
