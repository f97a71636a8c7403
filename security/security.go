package security

import (
	"fmt"
	"strings"
	"time"
)

// New validates and returns a subscribed security. Currency defaults to USD
func New(symbol string, a Asset, r Resolution, currency string) (*Security, error) {
	if symbol == "" {
		return nil, ErrEmptySymbol
	}
	if !a.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAsset, a)
	}
	if currency == "" {
		currency = "USD"
	}
	return &Security{
		Symbol:     strings.ToUpper(symbol),
		Asset:      a,
		Resolution: r,
		Currency:   strings.ToUpper(currency),
	}, nil
}

// SetResolution widens the subscription resolution. Narrowing is rejected
// because finer data was never loaded for the run
func (s *Security) SetResolution(r Resolution) error {
	if r < s.Resolution {
		return fmt.Errorf("%w: %v -> %v for %v", ErrResolutionNarrowed, s.Resolution, r, s.Symbol)
	}
	s.Resolution = r
	return nil
}

// IsValid returns whether the asset class is supported
func (a Asset) IsValid() bool {
	switch a {
	case Equity, Forex, Futures, Crypto:
		return true
	}
	return false
}

// AssetFromString parses an asset class from its config representation
func AssetFromString(s string) (Asset, error) {
	a := Asset(strings.ToLower(s))
	if !a.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAsset, s)
	}
	return a, nil
}

// Duration returns the bar period covered at this resolution, zero for tick
func (r Resolution) Duration() time.Duration {
	return time.Duration(r)
}

func (r Resolution) String() string {
	switch r {
	case Tick:
		return "tick"
	case Second:
		return "second"
	case Minute:
		return "minute"
	case Hour:
		return "hour"
	case Daily:
		return "daily"
	}
	return time.Duration(r).String()
}

// ResolutionFromString parses a resolution from its config representation
func ResolutionFromString(s string) (Resolution, error) {
	switch strings.ToLower(s) {
	case "tick":
		return Tick, nil
	case "second":
		return Second, nil
	case "minute":
		return Minute, nil
	case "hour":
		return Hour, nil
	case "daily", "day":
		return Daily, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidResolution, s)
}
