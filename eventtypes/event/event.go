package event

import (
	"fmt"
	"time"

	"github.com/simquant/backtester/security"
)

// GetOffset returns the position in the synchronized stream
func (b *Base) GetOffset() int64 {
	return b.Offset
}

// SetOffset sets the position in the synchronized stream
func (b *Base) SetOffset(o int64) {
	b.Offset = o
}

// GetTime returns the event timestamp
func (b *Base) GetTime() time.Time {
	return b.Time
}

// GetSymbol returns the security symbol the event belongs to
func (b *Base) GetSymbol() string {
	return b.Symbol
}

// GetAssetType returns the security's asset class
func (b *Base) GetAssetType() security.Asset {
	return b.AssetType
}

// GetResolution returns the sampling resolution of the event
func (b *Base) GetResolution() security.Resolution {
	return b.Resolution
}

// GetReason returns the audit trail of decisions made against this event
func (b *Base) GetReason() string {
	return b.Reason
}

// AppendReason adds to the audit trail of decisions made against this event
func (b *Base) AppendReason(y string) {
	if b.Reason == "" {
		b.Reason = y
		return
	}
	b.Reason = b.Reason + ". " + y
}

// AppendReasonf formats and adds to the audit trail
func (b *Base) AppendReasonf(format string, v ...interface{}) {
	b.AppendReason(fmt.Sprintf(format, v...))
}
