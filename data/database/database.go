package database

import (
	"database/sql"
	"fmt"
	"time"

	// database drivers the loader can be configured with
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/data"
	"github.com/simquant/backtester/eventtypes/datapoint"
	"github.com/simquant/backtester/eventtypes/event"
	"github.com/simquant/backtester/log"
	"github.com/simquant/backtester/security"
)

const (
	// DriverPostgres uses lib/pq
	DriverPostgres = "postgres"
	// DriverSQLite uses mattn/go-sqlite3
	DriverSQLite = "sqlite3"

	defaultTable = "datapoints"
)

// Feed loads a security's data points from a SQL table of
// (symbol, timestamp, open, high, low, close, volume) rows with unix-second
// timestamps. The full range is buffered before the run starts; no database
// access happens inside the per-tick path
type Feed struct {
	data.Base
	Driver   string
	DSN      string
	Table    string
	Security *security.Security
	Start    time.Time
	End      time.Time
}

// Load queries and buffers the configured date range
func (f *Feed) Load() error {
	if f.Security == nil {
		return fmt.Errorf("database feed: %w", security.ErrEmptySymbol)
	}
	if f.Driver != DriverPostgres && f.Driver != DriverSQLite {
		return fmt.Errorf("database feed for %v: unsupported driver %q", f.Security.Symbol, f.Driver)
	}
	if f.Table == "" {
		f.Table = defaultTable
	}

	db, err := sql.Open(f.Driver, f.DSN)
	if err != nil {
		return fmt.Errorf("could not open %v database: %w", f.Driver, err)
	}
	defer db.Close()

	rows, err := db.Query(f.query(), f.Security.Symbol, f.Start.Unix(), f.End.Unix())
	if err != nil {
		return fmt.Errorf("could not query data for %v: %w", f.Security.Symbol, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ts int64
		var open, high, low, closePrice, volume float64
		if err = rows.Scan(&ts, &open, &high, &low, &closePrice, &volume); err != nil {
			return fmt.Errorf("could not scan data for %v: %w", f.Security.Symbol, err)
		}
		f.AppendStream(&datapoint.DataPoint{
			Base: event.Base{
				Time:       time.Unix(ts, 0).UTC(),
				Symbol:     f.Security.Symbol,
				AssetType:  f.Security.Asset,
				Resolution: f.Security.Resolution,
			},
			Open:   decimal.NewFromFloat(open),
			High:   decimal.NewFromFloat(high),
			Low:    decimal.NewFromFloat(low),
			Close:  decimal.NewFromFloat(closePrice),
			Volume: decimal.NewFromFloat(volume),
			Period: f.Security.Resolution.Duration(),
		})
	}
	if err = rows.Err(); err != nil {
		return err
	}
	if len(f.GetStream()) == 0 {
		return fmt.Errorf("%v %v-%v: %w", f.Security.Symbol, f.Start, f.End, data.ErrEmptyStream)
	}
	f.SortStream()
	log.Infof(log.Data, "loaded %v data points for %v from %v database",
		len(f.GetStream()), f.Security.Symbol, f.Driver)
	return nil
}

func (f *Feed) query() string {
	q := "SELECT timestamp, open, high, low, close, volume FROM " + f.Table +
		" WHERE symbol = ? AND timestamp >= ? AND timestamp <= ? ORDER BY timestamp"
	if f.Driver == DriverPostgres {
		return "SELECT timestamp, open, high, low, close, volume FROM " + f.Table +
			" WHERE symbol = $1 AND timestamp >= $2 AND timestamp <= $3 ORDER BY timestamp"
	}
	return q
}
