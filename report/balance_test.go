package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logidash/entity"
)

func TestDriverBalancesOverSeed(t *testing.T) {
	balances := DriverBalances(entity.SeedPayables())
	require.Len(t, balances, 4)

	expected := []Balance{
		// pay-2 approved 15500, pay-5 on hold 1200
		{DriverID: "drv-2", DriverName: "Suresh Patel", Approved: 15500, OnHold: 1200, Outstanding: 15500, Payables: 2},
		// pay-1 pending 12850, pay-6 rejected
		{DriverID: "drv-1", DriverName: "Ravi Kumar", Pending: 12850, Outstanding: 12850, Payables: 2},
		{DriverID: "drv-3", DriverName: "Anita Sharma", Approved: 7000, Outstanding: 7000, Payables: 1},
		{DriverID: "drv-4", DriverName: "Mohan Das", Paid: 9800, Payables: 1},
	}
	for i, want := range expected {
		got := balances[i]
		assert.Equal(t, want.DriverID, got.DriverID, "row %d", i)
		assert.Equal(t, want.DriverName, got.DriverName, "row %d", i)
		assert.InDelta(t, want.Pending, got.Pending, epsilon, "row %d", i)
		assert.InDelta(t, want.Approved, got.Approved, epsilon, "row %d", i)
		assert.InDelta(t, want.Paid, got.Paid, epsilon, "row %d", i)
		assert.InDelta(t, want.OnHold, got.OnHold, epsilon, "row %d", i)
		assert.InDelta(t, want.Outstanding, got.Outstanding, epsilon, "row %d", i)
		assert.Equal(t, want.Payables, got.Payables, "row %d", i)
	}
}

func TestDriverBalancesTieBreak(t *testing.T) {
	payables := []entity.DriverPayable{
		{ID: "p1", DriverID: "d2", DriverName: "Zara", Status: entity.PayablePending, Lines: []entity.PayableLine{{Amount: 100}}},
		{ID: "p2", DriverID: "d1", DriverName: "Amit", Status: entity.PayableApproved, Lines: []entity.PayableLine{{Amount: 60}, {Amount: 40}}},
	}
	balances := DriverBalances(payables)
	require.Len(t, balances, 2)
	assert.Equal(t, "Amit", balances[0].DriverName)
	assert.Equal(t, "Zara", balances[1].DriverName)
}

func TestDriverBalancesEmpty(t *testing.T) {
	assert.Empty(t, DriverBalances(nil))
	assert.Equal(t, Balance{}, Totals(nil))
}

func TestSummarizeAndPrint(t *testing.T) {
	s := Summarize(entity.SeedPayables())
	assert.InDelta(t, 35350.0, s.Totals.Outstanding, epsilon)
	assert.InDelta(t, 9800.0, s.Totals.Paid, epsilon)
	assert.InDelta(t, 1200.0, s.Totals.OnHold, epsilon)
	assert.Equal(t, 6, s.Totals.Payables)

	var buf bytes.Buffer
	require.NoError(t, PrintBalances(&buf, s))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Driver: Suresh Patel (drv-2), Outstanding: 15500"))
	assert.True(t, strings.HasPrefix(lines[4], "Total: Outstanding: 35350"))
}
