package config

import (
	"errors"
	"time"
)

var (
	errNoStrategy       = errors.New("no strategy set")
	errNoSubscriptions  = errors.New("no subscriptions set")
	errInvalidDates     = errors.New("end date must be after start date")
	errNegativeCash     = errors.New("initial cash cannot be negative")
	errNegativeFee      = errors.New("fee rate cannot be negative")
	errUnknownSource    = errors.New("unknown data source")
	errUnknownSlippage  = errors.New("unknown slippage model")
	errMissingPath      = errors.New("csv source requires a path")
	errMissingDSN       = errors.New("database source requires a driver and dsn")
	errBadLeverage      = errors.New("max leverage must be at least 1")
	errUnknownBenchmark = errors.New("benchmark symbol is not subscribed")
)

// Data source names
const (
	SourceCSV       = "csv"
	SourceDatabase  = "database"
	SourceSynthetic = "synthetic"
)

// Slippage model names
const (
	SlippageNone      = "none"
	SlippageFixedRate = "fixed-rate"
	SlippageRandom    = "random"
)

// Config holds everything needed to assemble and run a backtest
type Config struct {
	Nickname         string            `mapstructure:"nickname"`
	StartDate        time.Time         `mapstructure:"start-date"`
	EndDate          time.Time         `mapstructure:"end-date"`
	InitialCash      float64           `mapstructure:"initial-cash"`
	FeeRate          float64           `mapstructure:"fee-rate"`
	RiskFreeRate     float64           `mapstructure:"risk-free-rate"`
	Benchmark        string            `mapstructure:"benchmark"`
	Verbose          bool              `mapstructure:"verbose"`
	Margin           Margin            `mapstructure:"margin"`
	Slippage         Slippage          `mapstructure:"slippage"`
	Strategy         Strategy          `mapstructure:"strategy"`
	Subscriptions    []Subscription    `mapstructure:"subscriptions"`
	CorporateActions []CorporateAction `mapstructure:"corporate-actions"`
}

// Margin settings gate short selling and leveraged buying
type Margin struct {
	Enabled     bool    `mapstructure:"enabled"`
	MaxLeverage float64 `mapstructure:"max-leverage"`
}

// Slippage selects and parameterizes the fill price adjustment model
type Slippage struct {
	Model string  `mapstructure:"model"`
	Rate  float64 `mapstructure:"rate"`
	Seed  int64   `mapstructure:"seed"`
}

// Strategy names the strategy to load and its custom settings
type Strategy struct {
	Name           string         `mapstructure:"name"`
	CustomSettings map[string]any `mapstructure:"custom-settings"`
}

// Subscription describes one security and where its data comes from
type Subscription struct {
	Symbol     string `mapstructure:"symbol"`
	Asset      string `mapstructure:"asset"`
	Resolution string `mapstructure:"resolution"`
	Currency   string `mapstructure:"currency"`
	Data       Data   `mapstructure:"data"`
}

// Data describes a subscription's feed source
type Data struct {
	Source string `mapstructure:"source"`
	// Path is the csv file location
	Path string `mapstructure:"path"`
	// Driver and DSN configure the database source
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Table  string `mapstructure:"table"`
	// StartPrice and Seed configure the synthetic source
	StartPrice float64 `mapstructure:"start-price"`
	Seed       int64   `mapstructure:"seed"`
}

// CorporateAction schedules a dividend or split
type CorporateAction struct {
	Symbol string    `mapstructure:"symbol"`
	Date   time.Time `mapstructure:"date"`
	Kind   string    `mapstructure:"kind"`
	Factor float64   `mapstructure:"factor"`
	Amount float64   `mapstructure:"amount"`
}
