package service

import (
	"testing"

	"casetrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCase(t *testing.T) {
	f := newFixture(t)

	c, err := f.cases.Create("07", "Front Window", "u1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "07", c.Code)
	assert.True(t, c.IsActive)
	assert.False(t, c.IsVirtual)
	assert.EqualValues(t, 1, f.historyCount(t, model.ActionCaseCreate))
}

func TestCreateCaseRejectsReservedAndDuplicate(t *testing.T) {
	f := newFixture(t)

	_, err := f.cases.Create(model.NewReceiptsCode, "Sneaky", "u1", "alice")
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.cases.Create("07", "Front Window", "u1", "alice")
	require.NoError(t, err)
	_, err = f.cases.Create("07", "Again", "u1", "alice")
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.cases.Create("", "", "u1", "alice")
	require.ErrorIs(t, err, ErrValidation)
}

func TestListOrdersVirtualFirstThenNumeric(t *testing.T) {
	f := newFixture(t)
	f.mustCreateCase(t, "10", "Ten")
	f.mustCreateCase(t, "2", "Two")
	f.mustCreateCase(t, "BACK", "Back Room")

	summaries, err := f.cases.List()
	require.NoError(t, err)
	require.Len(t, summaries, 4)
	assert.Equal(t, model.NewReceiptsCode, summaries[0].Code)
	assert.Equal(t, "2", summaries[1].Code)
	assert.Equal(t, "10", summaries[2].Code)
	assert.Equal(t, "BACK", summaries[3].Code)
}

func TestListSummariesCountUnits(t *testing.T) {
	f := newFixture(t)
	f.mustCreateCase(t, "07", "Front Window")
	f.mustReceive(t, "07", "AAA", 3, model.ItemRing)
	f.mustReceive(t, "07", "BBB", 2, model.ItemEarring)

	summaries, err := f.cases.List()
	require.NoError(t, err)

	var found bool
	for _, s := range summaries {
		if s.Code == "07" {
			found = true
			assert.EqualValues(t, 5, s.TotalQty)
			assert.EqualValues(t, 2, s.DistinctUPCs)
		}
	}
	require.True(t, found)
}

func TestRenameCase(t *testing.T) {
	f := newFixture(t)
	f.mustCreateCase(t, "07", "Front Window")

	c, err := f.cases.Rename("07", "Bridal", "u1", "alice")
	require.NoError(t, err)
	assert.Equal(t, "Bridal", c.Name)
	assert.EqualValues(t, 1, f.historyCount(t, model.ActionCaseEdit))

	// Renaming to the same name is a no-op with no history entry.
	_, err = f.cases.Rename("07", "Bridal", "u1", "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.historyCount(t, model.ActionCaseEdit))
}

func TestArchiveRequiresEmptyCase(t *testing.T) {
	f := newFixture(t)
	f.mustCreateCase(t, "07", "Front Window")
	f.mustReceive(t, "07", "AAA", 1, model.ItemRing)

	err := f.cases.Archive("07", "u1", "alice")
	require.ErrorIs(t, err, ErrValidation)

	_, err = f.inv.MarkMissing(MissingInput{
		CaseCode: "07",
		Entries:  []ScanEntry{{UPC: "AAA", Qty: 1}},
	}, "u1", "alice")
	require.NoError(t, err)

	require.NoError(t, f.cases.Archive("07", "u1", "alice"))
	assert.EqualValues(t, 1, f.historyCount(t, model.ActionCaseDelete))

	// Archived cases no longer resolve.
	_, err = f.cases.Get("07")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestArchiveProtectsNewReceipts(t *testing.T) {
	f := newFixture(t)

	err := f.cases.Archive(model.NewReceiptsCode, "u1", "alice")
	require.ErrorIs(t, err, ErrValidation)
}

func TestGetCaseDetail(t *testing.T) {
	f := newFixture(t)
	f.mustCreateCase(t, "07", "Front Window")
	f.mustReceive(t, "07", "AAA", 3, model.ItemRing)

	detail, err := f.cases.Get("07")
	require.NoError(t, err)
	assert.Equal(t, "07", detail.Case.Code)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 3, detail.Items[0].Qty)
	assert.Equal(t, 3, detail.TypeTotals.Rings)
	assert.NotEmpty(t, detail.History)
	assert.Nil(t, detail.LastCount)
}
