// Package config loads and validates backtest run configuration
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/simquant/backtester/log"
	"github.com/simquant/backtester/security"
)

// ReadConfigFromPath loads, decodes and validates a config file. Format is
// inferred from the file extension; json and yaml both work
func ReadConfigFromPath(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("could not read config %v: %w", path, err)
	}
	cfg := &Config{}
	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("could not decode config %v: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Infof(log.Config, "loaded config %q from %v", cfg.Nickname, path)
	return cfg, nil
}

// Validate checks the config describes a runnable backtest
func (c *Config) Validate() error {
	if !c.EndDate.After(c.StartDate) {
		return fmt.Errorf("%w: %v -> %v", errInvalidDates, c.StartDate, c.EndDate)
	}
	if c.InitialCash < 0 {
		return fmt.Errorf("%w: %v", errNegativeCash, c.InitialCash)
	}
	if c.FeeRate < 0 {
		return fmt.Errorf("%w: %v", errNegativeFee, c.FeeRate)
	}
	if c.Strategy.Name == "" {
		return errNoStrategy
	}
	if len(c.Subscriptions) == 0 {
		return errNoSubscriptions
	}
	if c.Margin.Enabled && c.Margin.MaxLeverage < 1 {
		return fmt.Errorf("%w: %v", errBadLeverage, c.Margin.MaxLeverage)
	}
	switch c.Slippage.Model {
	case "", SlippageNone, SlippageFixedRate, SlippageRandom:
	default:
		return fmt.Errorf("%w: %q", errUnknownSlippage, c.Slippage.Model)
	}
	for i := range c.Subscriptions {
		if err := c.Subscriptions[i].validate(); err != nil {
			return err
		}
	}
	if c.Benchmark != "" && !c.isSubscribed(c.Benchmark) {
		return fmt.Errorf("%w: %v", errUnknownBenchmark, c.Benchmark)
	}
	return nil
}

func (s *Subscription) validate() error {
	if _, err := security.AssetFromString(s.Asset); err != nil {
		return fmt.Errorf("subscription %v: %w", s.Symbol, err)
	}
	if _, err := security.ResolutionFromString(s.Resolution); err != nil {
		return fmt.Errorf("subscription %v: %w", s.Symbol, err)
	}
	switch s.Data.Source {
	case SourceCSV:
		if s.Data.Path == "" {
			return fmt.Errorf("%w: subscription %v", errMissingPath, s.Symbol)
		}
	case SourceDatabase:
		if s.Data.Driver == "" || s.Data.DSN == "" {
			return fmt.Errorf("%w: subscription %v", errMissingDSN, s.Symbol)
		}
	case SourceSynthetic:
	default:
		return fmt.Errorf("%w: %q for subscription %v", errUnknownSource,
			s.Data.Source, s.Symbol)
	}
	return nil
}

func (c *Config) isSubscribed(symbol string) bool {
	for i := range c.Subscriptions {
		if strings.EqualFold(c.Subscriptions[i].Symbol, symbol) {
			return true
		}
	}
	return false
}
