package service

import (
	"bytes"
	"encoding/csv"
	"testing"

	"casetrack/internal/model"
	"casetrack/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMovement(t *testing.T, f *fixture) {
	t.Helper()
	f.mustCreateCase(t, "07", "Front Window")
	f.mustReceive(t, "", "012345678905", 5, model.ItemRing)
	_, err := f.inv.Move(MoveInput{
		FromCase: model.NewReceiptsCode,
		ToCase:   "07",
		Entries:  []ScanEntry{{UPC: "012345678905", Qty: 3}},
	}, "u1", "alice")
	require.NoError(t, err)
}

func TestHistoryListFilters(t *testing.T) {
	f := newFixture(t)
	seedMovement(t, f)

	all, err := f.history.List(repository.HistoryFilter{})
	require.NoError(t, err)
	// case create + receive + move
	require.Len(t, all, 3)
	assert.Equal(t, model.ActionMove, all[0].Action, "newest first")

	// Case filter matches either side of a movement.
	forCase, err := f.history.List(repository.HistoryFilter{CaseCode: "07"})
	require.NoError(t, err)
	require.Len(t, forCase, 1)
	assert.Equal(t, model.ActionMove, forCase[0].Action)

	staging, err := f.history.List(repository.HistoryFilter{CaseCode: model.NewReceiptsCode})
	require.NoError(t, err)
	require.Len(t, staging, 2)

	byAction, err := f.history.List(repository.HistoryFilter{Action: model.ActionReceive})
	require.NoError(t, err)
	require.Len(t, byAction, 1)

	byUPC, err := f.history.List(repository.HistoryFilter{UPC: "012345678905"})
	require.NoError(t, err)
	require.Len(t, byUPC, 2)
}

func TestHistoryJoinsItemType(t *testing.T) {
	f := newFixture(t)
	seedMovement(t, f)

	recs, err := f.history.List(repository.HistoryFilter{Action: model.ActionReceive})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, model.ItemRing, recs[0].ItemType)
}

func TestExportHistoryCSV(t *testing.T) {
	f := newFixture(t)
	seedMovement(t, f)

	var buf bytes.Buffer
	require.NoError(t, f.history.ExportCSV(repository.HistoryFilter{}, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus three events")
	assert.Equal(t, "ts", rows[0][0])
	assert.Equal(t, string(model.ActionMove), rows[1][2])
}

func TestExportInventoryCSV(t *testing.T) {
	f := newFixture(t)
	seedMovement(t, f)

	var buf bytes.Buffer
	require.NoError(t, f.history.ExportInventoryCSV(&buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two holdings")
}

func TestExportCaseCSV(t *testing.T) {
	f := newFixture(t)
	seedMovement(t, f)

	var buf bytes.Buffer
	require.NoError(t, f.history.ExportCaseCSV("07", &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "07", rows[1][0])
	assert.Equal(t, "3", rows[1][5])
}
