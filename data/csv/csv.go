package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/data"
	"github.com/simquant/backtester/eventtypes/datapoint"
	"github.com/simquant/backtester/eventtypes/event"
	"github.com/simquant/backtester/log"
	"github.com/simquant/backtester/security"
)

// Feed loads a security's data points from a CSV file with rows of
// timestamp,open,high,low,close,volume. Timestamps are unix seconds or
// RFC3339. The whole file is buffered before the run starts
type Feed struct {
	data.Base
	FilePath string
	Security *security.Security
}

// Load reads and buffers the full file
func (f *Feed) Load() error {
	if f.Security == nil {
		return fmt.Errorf("csv feed: %w", security.ErrEmptySymbol)
	}
	fileData, err := os.Open(f.FilePath)
	if err != nil {
		return fmt.Errorf("could not read csv data for %v: %w", f.Security.Symbol, err)
	}
	defer fileData.Close()

	reader := csv.NewReader(fileData)
	reader.FieldsPerRecord = 6
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("could not parse csv data for %v: %w", f.Security.Symbol, err)
	}
	for i := range records {
		if i == 0 && isHeader(records[i][0]) {
			continue
		}
		dp, err := f.recordToDataPoint(records[i])
		if err != nil {
			return fmt.Errorf("row %v: %w", i+1, err)
		}
		f.AppendStream(dp)
	}
	if len(f.GetStream()) == 0 {
		return fmt.Errorf("%v: %w", f.FilePath, data.ErrEmptyStream)
	}
	f.SortStream()
	log.Infof(log.Data, "loaded %v data points for %v from %v",
		len(f.GetStream()), f.Security.Symbol, f.FilePath)
	return nil
}

func (f *Feed) recordToDataPoint(rec []string) (*datapoint.DataPoint, error) {
	ts, err := parseTime(rec[0])
	if err != nil {
		return nil, err
	}
	fields := make([]decimal.Decimal, 5)
	for i := 1; i < 6; i++ {
		v, err := decimal.NewFromString(rec[i])
		if err != nil {
			return nil, fmt.Errorf("could not parse %q: %w", rec[i], err)
		}
		fields[i-1] = v
	}
	return &datapoint.DataPoint{
		Base: event.Base{
			Time:       ts,
			Symbol:     f.Security.Symbol,
			AssetType:  f.Security.Asset,
			Resolution: f.Security.Resolution,
		},
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: fields[4],
		Period: f.Security.Resolution.Duration(),
	}, nil
}

func parseTime(s string) (time.Time, error) {
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("could not parse timestamp %q: %w", s, err)
	}
	return ts.UTC(), nil
}

func isHeader(first string) bool {
	if _, err := strconv.ParseInt(first, 10, 64); err == nil {
		return false
	}
	if _, err := time.Parse(time.RFC3339, first); err == nil {
		return false
	}
	return true
}
