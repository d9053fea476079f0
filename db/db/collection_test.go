package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logidash/entity"
)

func TestReplaceChangesExactlyOneRecord(t *testing.T) {
	coll := entity.SeedPayables()
	original := entity.SeedPayables()

	calls := 0
	var seen entity.DriverPayable
	next, err := Replace(coll, "pay-3", func(old entity.DriverPayable) (entity.DriverPayable, error) {
		calls++
		seen = old
		old.Status = entity.PayablePaid
		return old, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "updater must run exactly once")
	assert.Equal(t, original[2], seen, "updater receives the old record")
	require.Len(t, next, len(coll))
	for i := range next {
		if next[i].ID == "pay-3" {
			assert.Equal(t, entity.PayablePaid, next[i].Status)
			continue
		}
		assert.Equal(t, original[i], next[i], "record %s must not change", next[i].ID)
	}
	assert.Equal(t, original, coll, "input collection must not be mutated")
}

func TestReplaceErrors(t *testing.T) {
	coll := entity.SeedUsers()

	tests := []struct {
		name    string
		id      string
		updater Updater[entity.User]
		wantErr error
		msg     string
	}{
		{
			name:    "missing id",
			id:      "nope",
			updater: func(u entity.User) (entity.User, error) { return u, nil },
			wantErr: ErrNotFound,
		},
		{
			name:    "updater refuses",
			id:      "usr-1",
			updater: func(u entity.User) (entity.User, error) { return u, errors.New("refused") },
			msg:     "refused",
		},
		{
			name: "updater changes id",
			id:   "usr-1",
			updater: func(u entity.User) (entity.User, error) {
				u.ID = "other"
				return u, nil
			},
			msg: "changed id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Replace(coll, tt.id, tt.updater)
			assert.Nil(t, next)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
	assert.Equal(t, entity.SeedUsers(), coll)
}

func TestRemove(t *testing.T) {
	coll := entity.SeedUsers()

	next, err := Remove(coll, "usr-3")
	require.NoError(t, err)
	assert.Len(t, next, 4)
	assert.Equal(t, -1, IndexOf(next, "usr-3"))
	assert.Equal(t, []string{"usr-1", "usr-2", "usr-4", "usr-5"}, ids(next))
	assert.Len(t, coll, 5)

	_, err = Remove(coll, "usr-404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAppend(t *testing.T) {
	coll := entity.SeedUsers()

	next, err := Append(coll, entity.User{ID: "usr-6", Name: "New Hire"})
	require.NoError(t, err)
	assert.Equal(t, "usr-6", next[len(next)-1].ID)
	assert.Len(t, coll, 5)

	_, err = Append(coll, entity.User{ID: "usr-1"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = Append(coll, entity.User{Name: "No Id"})
	assert.ErrorIs(t, err, ErrEmptyID)
}

func ids[T entity.Record](coll []T) []string {
	out := make([]string, 0, len(coll))
	for _, rec := range coll {
		out = append(out, rec.GetID())
	}
	return out
}
