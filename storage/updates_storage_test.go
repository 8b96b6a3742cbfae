package storage

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casedesk/casedesk/storage/model"
)

var baseTime = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func testTime(hours int) time.Time {
	return baseTime.Add(time.Duration(hours) * time.Hour)
}

func lastSubStatus(t *testing.T, s *Storage, caseID string) *string {
	t.Helper()
	c, err := s.CasesStorage().Get(caseID)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c.LastSubStatus
}

func TestUpdatesStorage_CreateMaintainsLastSubStatus(t *testing.T) {
	s := newTestStorage(t)
	mustCreateCase(t, s, fullCase("C-1"))
	assert.Nil(t, lastSubStatus(t, s, "C-1"))

	mustCreateUpdate(t, s, "C-1", "INT_START", testTime(2))
	assert.Equal(t, ptr("INT_START"), lastSubStatus(t, s, "C-1"))

	// older update does not win
	mustCreateUpdate(t, s, "C-1", "ASSIGNED", testTime(1))
	assert.Equal(t, ptr("INT_START"), lastSubStatus(t, s, "C-1"))

	mustCreateUpdate(t, s, "C-1", "INT_WIP", testTime(3))
	assert.Equal(t, ptr("INT_WIP"), lastSubStatus(t, s, "C-1"))
}

func TestUpdatesStorage_EqualTimestampsOrderedByID(t *testing.T) {
	s := newTestStorage(t)
	mustCreateCase(t, s, fullCase("C-1"))
	first := mustCreateUpdate(t, s, "C-1", "PMA", testTime(0))
	second := mustCreateUpdate(t, s, "C-1", "PAA", testTime(0))
	assert.Equal(t, ptr("PAA"), lastSubStatus(t, s, "C-1"))

	caseID := "C-1"
	list, err := s.UpdatesStorage().List(&caseID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)
	assert.Equal(t, first, list[1].ID)
}

func TestUpdatesStorage_ListOrderAndScope(t *testing.T) {
	s := newTestStorage(t)
	mustCreateCase(t, s, fullCase("C-1"))
	mustCreateCase(t, s, fullCase("C-2"))
	mustCreateUpdate(t, s, "C-1", "PMA", testTime(1))
	mustCreateUpdate(t, s, "C-2", "PAC", testTime(5))
	mustCreateUpdate(t, s, "C-1", "MAC", testTime(3))

	caseID := "C-1"
	list, err := s.UpdatesStorage().List(&caseID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "MAC", list[0].SubStatus)
	assert.Equal(t, "PMA", list[1].SubStatus)
	assert.True(t, list[0].Timestamp.Equal(testTime(3)))

	all, err := s.UpdatesStorage().List(nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "PAC", all[0].SubStatus)

	unknown := "nope"
	none, err := s.UpdatesStorage().List(&unknown)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdatesStorage_CreateForUnknownCase(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.UpdatesStorage().Create(model.Update{CaseID: "nope", SubStatus: "PAC", Timestamp: testTime(0)})
	var notFound model.NotFoundError
	require.True(t, errors.As(err, &notFound), "got %v", err)

	all, err := s.UpdatesStorage().List(nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestUpdatesStorage_DeleteRecomputes(t *testing.T) {
	s := newTestStorage(t)
	mustCreateCase(t, s, fullCase("C-1"))
	older := mustCreateUpdate(t, s, "C-1", "PMA", testTime(0))
	newer := mustCreateUpdate(t, s, "C-1", "PAC", testTime(1))

	require.NoError(t, s.UpdatesStorage().Delete(newer))
	assert.Equal(t, ptr("PMA"), lastSubStatus(t, s, "C-1"))

	require.NoError(t, s.UpdatesStorage().Delete(older))
	assert.Nil(t, lastSubStatus(t, s, "C-1"))

	// deleting again is a no-op
	require.NoError(t, s.UpdatesStorage().Delete(older))
}

func TestUpdatesStorage_UpdateRecomputesBothCases(t *testing.T) {
	s := newTestStorage(t)
	mustCreateCase(t, s, fullCase("C-1"))
	mustCreateCase(t, s, fullCase("C-2"))
	mustCreateUpdate(t, s, "C-1", "PMA", testTime(0))
	moving := mustCreateUpdate(t, s, "C-1", "PAC", testTime(1))
	mustCreateUpdate(t, s, "C-2", "KO_SENT", testTime(0))

	require.NoError(
		t, s.UpdatesStorage().Update(
			moving, model.Update{
				CaseID:    "C-2",
				Note:      "moved",
				UpdatedBy: "tester",
				Timestamp: testTime(4),
				SubStatus: "HANDOVER",
			},
		),
	)
	assert.Equal(t, ptr("PMA"), lastSubStatus(t, s, "C-1"))
	assert.Equal(t, ptr("HANDOVER"), lastSubStatus(t, s, "C-2"))

	got, err := s.UpdatesStorage().Get(moving)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "C-2", got.CaseID)
	assert.Equal(t, "moved", got.Note)
}

func TestUpdatesStorage_UpdateTimestampChangesLatest(t *testing.T) {
	s := newTestStorage(t)
	mustCreateCase(t, s, fullCase("C-1"))
	first := mustCreateUpdate(t, s, "C-1", "PMA", testTime(0))
	mustCreateUpdate(t, s, "C-1", "PAC", testTime(1))

	require.NoError(
		t, s.UpdatesStorage().Update(
			first, model.Update{
				CaseID:    "C-1",
				Timestamp: testTime(2),
				SubStatus: "PMA",
			},
		),
	)
	assert.Equal(t, ptr("PMA"), lastSubStatus(t, s, "C-1"))
}

func TestUpdatesStorage_UpdateErrors(t *testing.T) {
	s := newTestStorage(t)
	mustCreateCase(t, s, fullCase("C-1"))
	id := mustCreateUpdate(t, s, "C-1", "PMA", testTime(0))

	err := s.UpdatesStorage().Update(999, model.Update{CaseID: "C-1", SubStatus: "PAC", Timestamp: testTime(1)})
	var notFound model.NotFoundError
	require.True(t, errors.As(err, &notFound), "got %v", err)

	err = s.UpdatesStorage().Update(id, model.Update{CaseID: "nope", SubStatus: "PAC", Timestamp: testTime(1)})
	require.True(t, errors.As(err, &notFound), "got %v", err)
	assert.Equal(t, ptr("PMA"), lastSubStatus(t, s, "C-1"))

	tolerant := newTestStorageWithConfig(
		t, Config{
			Driver:          DriverSQLite,
			DataDir:         t.TempDir(),
			TolerateMissing: true,
		},
	)
	require.NoError(
		t, tolerant.UpdatesStorage().Update(
			999, model.Update{CaseID: "C-1", SubStatus: "PAC", Timestamp: testTime(1)},
		),
	)
}

func TestUpdatesStorage_GetMissing(t *testing.T) {
	got, err := newTestStorage(t).UpdatesStorage().Get(12)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdatesStorage_IDsAreNotReused(t *testing.T) {
	s := newTestStorage(t)
	mustCreateCase(t, s, fullCase("C-1"))
	first := mustCreateUpdate(t, s, "C-1", "PMA", testTime(0))
	second := mustCreateUpdate(t, s, "C-1", "PAC", testTime(1))
	assert.Greater(t, second, first)
}
