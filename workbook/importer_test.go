package workbook

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedesk/casedesk/storage"
	"github.com/casedesk/casedesk/storage/model"
)

func newTestBackends(t *testing.T) model.Backends {
	t.Helper()
	s, err := storage.NewStorage(
		storage.Config{
			Driver:  storage.DriverSQLite,
			DataDir: t.TempDir(),
		},
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s.Backends()
}

func importWorkbook() []testSheet {
	return []testSheet{
		{
			name: SheetCases,
			rows: [][]any{
				header(CaseColumns),
				{"C-1", 1, "Acme", "", "", "EU5", "ASTRO", "WIP"},
				{"C-2", 2, "Globex", "", "", "NA", "WINSTON", "SUBMITTED"},
				{"C-1", 3, "Duplicate in file"},
			},
		},
		{
			name: SheetUpdates,
			rows: [][]any{
				header(UpdateColumns),
				{1, "C-1", "kickoff", "dana", "2024-03-01T09:00:00", "KO_SENT"},
				{2, "C-1", "started", "dana", "2024-03-02T09:00:00", "INT_START"},
				{3, "C-9", "orphan", "dana", "2024-03-02T09:00:00", "PAC"},
				{4, "", "no case", "dana", "2024-03-02T09:00:00", "PAC"},
				{5, "C-2", "assigned", "sam", "2024-03-01T12:00:00", "ASSIGNED"},
			},
		},
	}
}

func TestImporter_Import(t *testing.T) {
	backends := newTestBackends(t)
	importer := NewImporter(backends)

	report, err := importer.Import(context.Background(), buildWorkbook(t, importWorkbook()...))
	require.NoError(t, err)
	assert.Equal(t, 2, report.CasesCreated)
	assert.Equal(t, 1, report.CasesSkipped)
	assert.Equal(t, 3, report.UpdatesCreated)
	assert.Equal(t, 2, report.UpdatesSkipped)
	assert.False(t, report.Aborted)

	c1, err := backends.Cases.Get("C-1")
	require.NoError(t, err)
	require.NotNil(t, c1)
	assert.Equal(t, "Acme", c1.SellerName)
	require.NotNil(t, c1.LastSubStatus)
	assert.Equal(t, "INT_START", *c1.LastSubStatus)

	c2, err := backends.Cases.Get("C-2")
	require.NoError(t, err)
	require.NotNil(t, c2.LastSubStatus)
	assert.Equal(t, "ASSIGNED", *c2.LastSubStatus)

	stored, err := model.LastImportReport(backends.KV)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, report.CasesCreated, stored.CasesCreated)
	assert.Equal(t, report.UpdatesSkipped, stored.UpdatesSkipped)
}

func TestImporter_NeverOverwritesCases(t *testing.T) {
	backends := newTestBackends(t)
	require.NoError(t, backends.Cases.Create(model.Case{CaseID: "C-1", SellerName: "Original"}))

	report, err := NewImporter(backends).Import(context.Background(), buildWorkbook(t, importWorkbook()...))
	require.NoError(t, err)
	assert.Equal(t, 1, report.CasesCreated)
	assert.Equal(t, 2, report.CasesSkipped)

	c1, err := backends.Cases.Get("C-1")
	require.NoError(t, err)
	assert.Equal(t, "Original", c1.SellerName)
}

func TestImporter_ReimportAddsUpdatesAgain(t *testing.T) {
	backends := newTestBackends(t)
	importer := NewImporter(backends)
	_, err := importer.Import(context.Background(), buildWorkbook(t, importWorkbook()...))
	require.NoError(t, err)

	report, err := importer.Import(context.Background(), buildWorkbook(t, importWorkbook()...))
	require.NoError(t, err)
	assert.Equal(t, 0, report.CasesCreated)
	assert.Equal(t, 3, report.CasesSkipped)
	assert.Equal(t, 3, report.UpdatesCreated)

	all, err := backends.Updates.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 6)
}

func TestImporter_ExportImportRoundTrip(t *testing.T) {
	source := newTestBackends(t)
	c := sampleCase()
	require.NoError(t, source.Cases.Create(c))
	_, err := source.Updates.Create(
		model.Update{
			CaseID:    c.CaseID,
			Note:      "n",
			UpdatedBy: "dana",
			Timestamp: time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC),
			SubStatus: "PMA",
		},
	)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, NewExporter(source).Export(buf, nil))

	target := newTestBackends(t)
	report, err := NewImporter(target).Import(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, report.CasesCreated)
	assert.Equal(t, 1, report.UpdatesCreated)
	assert.Empty(t, report.Fallbacks)

	got, err := target.Cases.Get(c.CaseID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.SellerName, got.SellerName)
	assert.Equal(t, []string(c.IssueType), []string(got.IssueType))
	assert.True(t, c.CSATScore.Decimal.Equal(got.CSATScore.Decimal))
	require.NotNil(t, got.LastSubStatus)
	assert.Equal(t, "PMA", *got.LastSubStatus)
}

func TestImporter_WholeFileFailuresWriteNothing(t *testing.T) {
	backends := newTestBackends(t)
	importer := NewImporter(backends)

	_, err := importer.Import(
		context.Background(), buildWorkbook(t, testSheet{name: SheetCases, rows: [][]any{header(CaseColumns)}}),
	)
	var schema model.SchemaError
	require.True(t, errors.As(err, &schema), "got %v", err)

	_, err = importer.Import(
		context.Background(), buildWorkbook(
			t,
			testSheet{
				name: SheetCases,
				rows: [][]any{
					header(CaseColumns),
					{"C-1"},
					{"", "12"},
				},
			},
			testSheet{name: SheetUpdates, rows: [][]any{header(UpdateColumns)}},
		),
	)
	var validation model.ValidationError
	require.True(t, errors.As(err, &validation), "got %v", err)

	count, err := backends.Cases.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	stored, err := model.LastImportReport(backends.KV)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestImporter_CancelledContext(t *testing.T) {
	backends := newTestBackends(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewImporter(backends).Import(ctx, buildWorkbook(t, importWorkbook()...))
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, report.Aborted)
	assert.Zero(t, report.CasesCreated)

	count, err := backends.Cases.Count()
	require.NoError(t, err)
	assert.Zero(t, count)

	stored, err := model.LastImportReport(backends.KV)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Aborted)
}

func TestImporter_RecordsFallbacks(t *testing.T) {
	backends := newTestBackends(t)
	buf := buildWorkbook(
		t,
		testSheet{
			name: SheetCases,
			rows: [][]any{
				{ColCaseID, ColSellerID, ColCSATScore},
				{"C-1", "n/a", "9"},
			},
		},
		testSheet{
			name: SheetUpdates,
			rows: [][]any{
				header(UpdateColumns),
				{nil, "C-1", "no time", "dana", "", "PAC"},
			},
		},
	)
	report, err := NewImporter(backends).Import(context.Background(), buf)
	require.NoError(t, err)
	assert.Equal(t, 1, report.CasesCreated)
	assert.Equal(t, 1, report.UpdatesCreated)
	assert.Len(t, report.Fallbacks, 3)

	c, err := backends.Cases.Get("C-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), c.SellerID)
	assert.False(t, c.CSATScore.Valid)
}
