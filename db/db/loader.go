package db

import (
	"context"

	"github.com/vikstrous/dataloadgen"

	"logidash/entity"
)

// NewLookupLoader batches concurrent id lookups against store into one snapshot read.
// Ids missing from the snapshot fail with dataloadgen's not-found error. Loaders cache
// what they resolve, so build one per request.
func NewLookupLoader[T entity.Record](store EntityStore[T]) *dataloadgen.Loader[string, T] {
	return dataloadgen.NewMappedLoader(func(ctx context.Context, ids []string) (map[string]T, error) {
		snapshot, err := store.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		wanted := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			wanted[id] = struct{}{}
		}
		found := make(map[string]T, len(ids))
		for _, rec := range snapshot {
			if _, ok := wanted[rec.GetID()]; ok {
				found[rec.GetID()] = rec
			}
		}
		return found, nil
	})
}
