package database

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simquant/backtester/security"
)

func setupSQLite(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open(DriverSQLite, dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE datapoints (
		symbol TEXT, timestamp INTEGER,
		open REAL, high REAL, low REAL, close REAL, volume REAL)`)
	require.NoError(t, err)

	base := time.Date(2020, 1, 2, 9, 30, 0, 0, time.UTC).Unix()
	for i := int64(0); i < 3; i++ {
		_, err = db.Exec(`INSERT INTO datapoints VALUES (?, ?, ?, ?, ?, ?, ?)`,
			"SPY", base+i*60, 100.0+float64(i), 101.0+float64(i), 99.0+float64(i), 100.5+float64(i), 1000.0)
		require.NoError(t, err)
	}
	return dsn
}

func TestLoadSQLite(t *testing.T) {
	t.Parallel()
	dsn := setupSQLite(t)
	sec, err := security.New("SPY", security.Equity, security.Minute, "USD")
	require.NoError(t, err)

	f := &Feed{
		Driver:   DriverSQLite,
		DSN:      dsn,
		Security: sec,
		Start:    time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, f.Load())

	stream := f.GetStream()
	require.Len(t, stream, 3)
	assert.True(t, stream[0].GetClosePrice().Equal(decimal.NewFromFloat(100.5)))
	assert.True(t, stream[0].GetTime().Before(stream[1].GetTime()))
}

func TestLoadRangeFilter(t *testing.T) {
	t.Parallel()
	dsn := setupSQLite(t)
	sec, err := security.New("SPY", security.Equity, security.Minute, "USD")
	require.NoError(t, err)

	f := &Feed{
		Driver:   DriverSQLite,
		DSN:      dsn,
		Security: sec,
		Start:    time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	assert.Error(t, f.Load(), "empty range should error")
}

func TestLoadUnsupportedDriver(t *testing.T) {
	t.Parallel()
	sec, err := security.New("SPY", security.Equity, security.Minute, "USD")
	require.NoError(t, err)
	f := &Feed{Driver: "oracle", Security: sec}
	assert.Error(t, f.Load())
}
