package service

import (
	"bytes"
	"testing"

	"casetrack/internal/model"
	"casetrack/internal/timeutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyActivityPDF(t *testing.T) {
	f := newFixture(t)
	f.mustCreateCase(t, "07", "Front Window")
	f.mustReceive(t, "07", "012345678905", 2, model.ItemRing)
	_, err := f.inv.Sell(SellInput{
		CaseCode: "07",
		Entries:  []ScanEntry{{UPC: "012345678905", Qty: 1}},
		Sold:     validSold(),
	}, "u1", "alice")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.reports.DailyActivityPDF("07", timeutil.Today(), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestDailyActivityPDFUnknownCase(t *testing.T) {
	f := newFixture(t)

	var buf bytes.Buffer
	err := f.reports.DailyActivityPDF("nope", timeutil.Today(), &buf)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDailyCountPDF(t *testing.T) {
	f := newFixture(t)
	f.mustCreateCase(t, "07", "Front Window")
	_, err := f.counts.Record(CountInput{CaseCode: "07", Rings: 2}, "u1", "alice")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.reports.DailyCountPDF("07", timeutil.Today(), &buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
