package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/casedesk/casedesk/storage/model"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	return newTestStorageWithConfig(
		t, Config{
			Driver:  DriverSQLite,
			DataDir: t.TempDir(),
		},
	)
}

func newTestStorageWithConfig(t *testing.T, config Config) *Storage {
	t.Helper()
	s, err := NewStorage(config)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func ptr[T any](v T) *T {
	return &v
}

func mustCreateCase(t *testing.T, s *Storage, c model.Case) {
	t.Helper()
	require.NoError(t, s.CasesStorage().Create(c))
}

func mustCreateUpdate(t *testing.T, s *Storage, caseID, subStatus string, ts time.Time) uint {
	t.Helper()
	id, err := s.UpdatesStorage().Create(
		model.Update{
			CaseID:    caseID,
			Note:      "note for " + subStatus,
			UpdatedBy: "tester",
			Timestamp: ts,
			SubStatus: subStatus,
		},
	)
	require.NoError(t, err)
	return id
}

func TestNewStorage_SeedsOnEveryStartWithoutDuplicates(t *testing.T) {
	config := Config{
		Driver:  DriverSQLite,
		DataDir: t.TempDir(),
	}
	first, err := NewStorage(config)
	require.NoError(t, err)
	require.NoError(t, first.OptionsStorage().AddAPIOption("Custom API"))
	require.NoError(t, first.Close())

	second := newTestStorageWithConfig(t, config)
	values, err := second.OptionsStorage().APIOptions()
	require.NoError(t, err)
	require.Len(t, values, len(model.DefaultAPIOptions)+1)
	require.Contains(t, values, "Custom API")
}

func TestBackends_AreWired(t *testing.T) {
	b := newTestStorage(t).Backends()
	require.NotNil(t, b.Cases)
	require.NotNil(t, b.Updates)
	require.NotNil(t, b.Options)
	require.NotNil(t, b.Summary)
	require.NotNil(t, b.KV)
}

func TestDSN(t *testing.T) {
	dsn, err := DSN(DriverPostgres, DSNConf{User: "u", Password: "p", Host: "db", DB: "cases"})
	require.NoError(t, err)
	require.Equal(t, "host=db user=u password=p dbname=cases port=5432", dsn)

	dsn, err = DSN(DriverMySQL, DSNConf{User: "u", Password: "p", Host: "db", DB: "cases"})
	require.NoError(t, err)
	require.Equal(t, "u:p@tcp(db:3306)/cases?charset=utf8mb4&parseTime=True", dsn)

	_, err = DSN(DriverSQLite, DSNConf{})
	require.Error(t, err)
	_, err = DSN("oracle", DSNConf{})
	require.Error(t, err)
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := NewStorage(Config{Driver: "oracle"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported database driver")
}

func TestConfig_MySQLMigratesWithBinaryCollation(t *testing.T) {
	s := newTestStorage(t)
	opts, ok := Config{Driver: DriverMySQL}.migrator(s.DB()).Get("gorm:table_options")
	require.True(t, ok)
	require.Equal(t, mysqlTableOptions, opts)

	_, ok = Config{Driver: DriverSQLite}.migrator(s.DB()).Get("gorm:table_options")
	require.False(t, ok)
}
