package mem_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbt "logidash/db/db"
	"logidash/db/mem"
	"logidash/entity"
)

func setupTest() dbt.EntityStore[entity.User] {
	return mem.NewInMemoryStore(entity.SeedUsers())
}

func TestSnapshot(t *testing.T) {
	store := setupTest()
	ctx := context.Background()

	// Test 1: snapshot mirrors the seed order
	users, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.SeedUsers(), users)

	// Test 2: editing a snapshot does not leak into the store
	users[0].Name = "Changed Outside"
	again, err := store.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Priya Menon", again[0].Name)
}

func TestGet(t *testing.T) {
	store := setupTest()
	ctx := context.Background()

	// Test 1: existing record
	user, err := store.Get(ctx, "usr-3")
	assert.NoError(t, err)
	assert.Equal(t, "Kavya Iyer", user.Name)

	// Test 2: missing record
	_, err = store.Get(ctx, "usr-404")
	assert.ErrorIs(t, err, dbt.ErrNotFound)
	assert.Contains(t, err.Error(), "not found")
}

func TestReplace(t *testing.T) {
	store := setupTest()
	ctx := context.Background()
	before, _ := store.Snapshot(ctx)

	// Test 1: replace one record
	after, err := store.Replace(ctx, "usr-2", func(old entity.User) (entity.User, error) {
		old.Status = entity.UserLocked
		return old, nil
	})
	require.NoError(t, err)
	require.Len(t, after, len(before))
	assert.Equal(t, entity.UserLocked, after[1].Status)
	assert.Equal(t, entity.UserActive, before[1].Status, "earlier snapshot must stay untouched")

	current, _ := store.Snapshot(ctx)
	assert.Equal(t, after, current)

	// Test 2: missing id leaves the store as is
	_, err = store.Replace(ctx, "usr-404", func(old entity.User) (entity.User, error) { return old, nil })
	assert.ErrorIs(t, err, dbt.ErrNotFound)
	unchanged, _ := store.Snapshot(ctx)
	assert.Equal(t, current, unchanged)
}

func TestRemoveAndAppend(t *testing.T) {
	store := setupTest()
	ctx := context.Background()

	// Test 1: remove
	after, err := store.Remove(ctx, "usr-1")
	require.NoError(t, err)
	assert.Len(t, after, 4)
	_, err = store.Get(ctx, "usr-1")
	assert.ErrorIs(t, err, dbt.ErrNotFound)

	// Test 2: remove twice fails
	_, err = store.Remove(ctx, "usr-1")
	assert.ErrorIs(t, err, dbt.ErrNotFound)

	// Test 3: append goes last
	newcomer := entity.User{ID: entity.NewID(), Name: "Rahul Nair", Role: entity.RoleViewer, Status: entity.UserActive}
	after, err = store.Append(ctx, newcomer)
	require.NoError(t, err)
	assert.Len(t, after, 5)
	assert.Equal(t, newcomer, after[len(after)-1])

	// Test 4: duplicate id is refused
	_, err = store.Append(ctx, newcomer)
	assert.ErrorIs(t, err, dbt.ErrDuplicateID)
}

func TestCancelledContext(t *testing.T) {
	store := setupTest()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Snapshot(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = store.Remove(ctx, "usr-1")
	assert.ErrorIs(t, err, context.Canceled)

	users, err := store.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 5)
}

func TestConcurrentReplace(t *testing.T) {
	store := mem.NewInMemoryStore(entity.SeedPayables())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Replace(ctx, "pay-1", func(old entity.DriverPayable) (entity.DriverPayable, error) {
				lines := append([]entity.PayableLine(nil), old.Lines...)
				old.Lines = append(lines, entity.PayableLine{Description: "extra", Amount: 1})
				return old, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	payable, err := store.Get(ctx, "pay-1")
	require.NoError(t, err)
	assert.Len(t, payable.Lines, 52)
	assert.InDelta(t, 12850+50, payable.TotalAmount(), 1e-9)
}

func TestNewSeededStores(t *testing.T) {
	stores := mem.NewSeededStores()
	ctx := context.Background()

	trips, err := stores.Trips.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, trips, 5)

	drivers, err := stores.Drivers.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, drivers, 4)
}
