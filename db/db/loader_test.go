package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbt "logidash/db/db"
	"logidash/db/mem"
	"logidash/entity"
)

func TestLookupLoader(t *testing.T) {
	store := mem.NewInMemoryStore(entity.SeedDrivers())
	loader := dbt.NewLookupLoader(store)
	ctx := context.Background()

	drivers, err := loader.LoadAll(ctx, []string{"drv-1", "drv-3"})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", drivers[0].Name)
	assert.Equal(t, "Anita Sharma", drivers[1].Name)

	_, err = loader.Load(ctx, "drv-404")
	assert.Error(t, err)
}
