package csv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simquant/backtester/security"
)

func writeTestFile(t *testing.T, contents string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "spy.csv")
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o644))
	return p
}

func TestLoad(t *testing.T) {
	t.Parallel()
	sec, err := security.New("SPY", security.Equity, security.Minute, "USD")
	require.NoError(t, err)

	f := &Feed{
		FilePath: writeTestFile(t, "timestamp,open,high,low,close,volume\n"+
			"1577923260,100,101,99,100.5,5000\n"+
			"1577923200,99,100,98,100,4000\n"),
		Security: sec,
	}
	require.NoError(t, f.Load())

	stream := f.GetStream()
	require.Len(t, stream, 2)
	assert.True(t, stream[0].GetTime().Before(stream[1].GetTime()), "stream should be sorted")
	assert.Equal(t, "SPY", stream[0].GetSymbol())
	assert.True(t, stream[0].GetClosePrice().Equal(decimal.NewFromInt(100)))
	assert.Equal(t, time.Minute, stream[0].GetPeriod())
}

func TestLoadRFC3339(t *testing.T) {
	t.Parallel()
	sec, err := security.New("EURUSD", security.Forex, security.Second, "USD")
	require.NoError(t, err)

	f := &Feed{
		FilePath: writeTestFile(t, "2020-01-02T09:30:00Z,1.10,1.11,1.09,1.105,0\n"),
		Security: sec,
	}
	require.NoError(t, f.Load())
	require.Len(t, f.GetStream(), 1)
	assert.Equal(t, 2020, f.GetStream()[0].GetTime().Year())
}

func TestLoadFailures(t *testing.T) {
	t.Parallel()
	sec, err := security.New("SPY", security.Equity, security.Minute, "USD")
	require.NoError(t, err)

	f := &Feed{FilePath: filepath.Join(t.TempDir(), "missing.csv"), Security: sec}
	assert.Error(t, f.Load())

	f = &Feed{
		FilePath: writeTestFile(t, "1577923200,not-a-price,100,98,100,4000\n"),
		Security: sec,
	}
	assert.Error(t, f.Load())
}
