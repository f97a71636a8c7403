package datapoint

import (
	"time"

	"github.com/shopspring/decimal"
)

// GetOpenPrice returns the opening price of the bar
func (d *DataPoint) GetOpenPrice() decimal.Decimal {
	return d.Open
}

// GetHighPrice returns the high price of the bar
func (d *DataPoint) GetHighPrice() decimal.Decimal {
	return d.High
}

// GetLowPrice returns the low price of the bar
func (d *DataPoint) GetLowPrice() decimal.Decimal {
	return d.Low
}

// GetClosePrice returns the closing price of the bar
func (d *DataPoint) GetClosePrice() decimal.Decimal {
	return d.Close
}

// GetVolume returns the traded volume of the bar
func (d *DataPoint) GetVolume() decimal.Decimal {
	return d.Volume
}

// GetPeriod returns the interval the bar covers
func (d *DataPoint) GetPeriod() time.Duration {
	return d.Period
}

// RescalePrices multiplies every price field by factor and divides volume by
// it, preserving traded value. Used when a split adjusts the historical
// series
func (d *DataPoint) RescalePrices(factor decimal.Decimal) {
	d.Open = d.Open.Mul(factor)
	d.High = d.High.Mul(factor)
	d.Low = d.Low.Mul(factor)
	d.Close = d.Close.Mul(factor)
	if !factor.IsZero() {
		d.Volume = d.Volume.Div(factor)
	}
}
