package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logidash/action"
	"logidash/db/mem"
	"logidash/query"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		raw     string
		want    query.Condition
		wantErr bool
	}{
		{raw: "status=Approved,Pending", want: query.Condition{Field: "status", Values: []string{"Approved", "Pending"}}},
		{raw: "paymentMethod= Bank Transfer ", want: query.Condition{Field: "paymentMethod", Values: []string{"Bank Transfer"}}},
		{raw: "status=", want: query.Condition{Field: "status"}},
		{raw: "status", wantErr: true},
		{raw: "=Approved", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseFilter(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseParams(t *testing.T) {
	p, err := parseParams([]string{"reason=Missing", "fuel", "receipt", "amount=1200.5"})
	require.NoError(t, err)
	assert.Equal(t, "Missing fuel receipt", p.Reason)
	assert.Equal(t, 1200.5, p.Amount)

	_, err = parseParams([]string{"orphan"})
	assert.Error(t, err)
	_, err = parseParams([]string{"colour=red"})
	assert.Error(t, err)
	_, err = parseParams([]string{"amount=lots"})
	assert.Error(t, err)
}

func TestQueryCommand(t *testing.T) {
	out, err := execute(t, "", "query", "payables", "--filter", "status=Approved,Pending", "--sort", "totalAmount", "--desc", "--size", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "id"))
	assert.True(t, strings.HasPrefix(lines[1], "pay-2"))
	assert.True(t, strings.HasPrefix(lines[2], "pay-1"))
	assert.Equal(t, "page 1 of 2, 3 records", lines[3])
}

func TestQueryCommandErrors(t *testing.T) {
	_, err := execute(t, "", "query", "vehicles")
	assert.ErrorContains(t, err, `unknown entity "vehicles"`)

	_, err = execute(t, "", "query", "users", "--sort", "shoeSize")
	assert.ErrorIs(t, err, query.ErrUnknownField)

	_, err = execute(t, "", "query", "users", "--filter", "status")
	assert.Error(t, err)
}

func TestQueryCommandCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.csv")
	_, err := execute(t, "", "query", "trips", "--search", "chennai", "--csv", path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, "trip-1", rows[1][0])
	assert.Equal(t, "trip-3", rows[2][0])
}

func TestReportCommand(t *testing.T) {
	out, err := execute(t, "", "report")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "Suresh Patel")
	assert.Contains(t, lines[4], "Total: Outstanding: 35350")

	out, err = execute(t, "", "report", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"driverId": "drv-2"`)
}

func TestConsoleSession(t *testing.T) {
	script := strings.Join([]string{
		"filter status Pending",
		"open pay-1",
		"do reject",
		"do reject reason=Duplicate fuel claim",
		"state",
		"do approve",
		"teleport",
		"quit",
	}, "\n")

	var out bytes.Buffer
	set := action.NewSet(mem.NewSeededStores(), nil)
	err := runConsole(context.Background(), strings.NewReader(script), &out, set, "payables", 10)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "actions: approve, hold, reject")
	assert.Contains(t, text, "[error] rejection reason is required")
	assert.Contains(t, text, "[success] Payable PAY-2024-0041 rejected")
	assert.Contains(t, text, `"modalOpen":false`)
	assert.Contains(t, text, "[error] select a record first")
	assert.Contains(t, text, `error: unknown command "teleport"`)

	rec, err := set.Payables.Store().Get(context.Background(), "pay-1")
	require.NoError(t, err)
	assert.Equal(t, "Duplicate fuel claim", rec.RejectionReason)
}

func TestConsoleUnknownEntity(t *testing.T) {
	set := action.NewSet(mem.NewSeededStores(), nil)
	err := runConsole(context.Background(), strings.NewReader(""), &bytes.Buffer{}, set, "vehicles", 10)
	assert.Error(t, err)
}
