package screen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logidash/action"
	"logidash/db/mem"
	"logidash/entity"
	"logidash/query"
)

func newPayableScreen(pageSize int) *Screen[entity.DriverPayable] {
	stores := mem.NewSeededStores()
	d := action.NewPayableDispatcher(stores.Payables, nil)
	return New(entity.PayableSchema, d, pageSize)
}

func ids(items []entity.DriverPayable) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestSearchAndFilterResetPage(t *testing.T) {
	s := newPayableScreen(2)
	s.SetPage(3)

	s.SetSearch("suresh")
	assert.Equal(t, 1, s.State().Page)

	s.SetPage(2)
	require.NoError(t, s.SetFilter("status", "Approved"))
	assert.Equal(t, 1, s.State().Page)

	s.SetPage(2)
	s.ClearFilters()
	assert.Equal(t, 1, s.State().Page)
	assert.Empty(t, s.State().Filters)
}

func TestSetFilterUnknownField(t *testing.T) {
	s := newPayableScreen(2)
	err := s.SetFilter("colour", "red")
	assert.ErrorIs(t, err, query.ErrUnknownField)
	assert.ErrorIs(t, s.SetSort("colour", false), query.ErrUnknownField)
}

func TestViewAppliesState(t *testing.T) {
	s := newPayableScreen(10)
	ctx := context.Background()

	require.NoError(t, s.SetFilter("status", "Approved", "Pending"))
	require.NoError(t, s.SetFilter("paymentMethod", "Bank Transfer"))
	require.NoError(t, s.SetSort("totalAmount", true))

	res, err := s.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, []string{"pay-1", "pay-3"}, ids(res.Items))

	// removing a filter with no values
	require.NoError(t, s.SetFilter("paymentMethod"))
	res, err = s.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
}

func TestViewClampsPageAfterPageSizeChange(t *testing.T) {
	s := newPayableScreen(2)
	ctx := context.Background()

	s.SetPage(3)
	res, err := s.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Page)
	assert.Len(t, res.Items, 2)

	s.SetPageSize(5)
	res, err = s.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 2, res.Page)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 2, s.State().Page)
}

func TestSelectionAndDispatch(t *testing.T) {
	s := newPayableScreen(10)
	ctx := context.Background()

	// Test 1: nothing selected
	note, err := s.Dispatch(ctx, action.Approve, action.Params{})
	assert.ErrorIs(t, err, action.ErrNoSelection)
	assert.Equal(t, action.LevelError, note.Level)

	// Test 2: selecting opens the modal
	rec, err := s.Select(ctx, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, "PAY-2024-0041", rec.Number)
	assert.True(t, s.State().ModalOpen)
	assert.Equal(t, "pay-1", s.State().SelectedID)

	acts, err := s.Actions(ctx)
	require.NoError(t, err)
	assert.Contains(t, acts, action.Reject)

	// Test 3: a refused action keeps the selection
	note, err = s.Dispatch(ctx, action.Reject, action.Params{})
	assert.True(t, action.IsValidation(err))
	assert.Equal(t, action.LevelError, note.Level)
	assert.True(t, s.State().ModalOpen)

	// Test 4: an accepted action closes the modal
	note, err = s.Dispatch(ctx, action.Reject, action.Params{Reason: "wrong trip"})
	require.NoError(t, err)
	assert.Equal(t, action.LevelSuccess, note.Level)
	assert.False(t, s.State().ModalOpen)
	assert.Empty(t, s.State().SelectedID)

	// Test 5: selecting a missing record changes nothing
	_, err = s.Select(ctx, "pay-404")
	assert.Error(t, err)
	assert.False(t, s.State().ModalOpen)
}

func TestMutationShrinksFilteredView(t *testing.T) {
	s := newPayableScreen(1)
	ctx := context.Background()

	require.NoError(t, s.SetFilter("status", "Approved"))
	s.SetPage(2)
	res, err := s.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pay-3"}, ids(res.Items))

	_, err = s.Select(ctx, "pay-3")
	require.NoError(t, err)
	_, err = s.Dispatch(ctx, action.Pay, action.Params{})
	require.NoError(t, err)

	// only pay-2 is still approved; page 2 no longer exists
	res, err = s.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, []string{"pay-2"}, ids(res.Items))
}

func TestStateIsACopy(t *testing.T) {
	s := newPayableScreen(10)
	require.NoError(t, s.SetFilter("status", "Paid"))
	st := s.State()
	st.Filters["status"][0] = "Pending"
	assert.Equal(t, []string{"Paid"}, s.State().Filters["status"])
}
