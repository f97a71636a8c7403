package engine

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simquant/backtester/config"
	"github.com/simquant/backtester/corporateactions"
	"github.com/simquant/backtester/data"
	"github.com/simquant/backtester/data/csv"
	"github.com/simquant/backtester/data/database"
	"github.com/simquant/backtester/data/synthetic"
	"github.com/simquant/backtester/exchange"
	"github.com/simquant/backtester/exchange/slippage"
	"github.com/simquant/backtester/log"
	"github.com/simquant/backtester/portfolio"
	"github.com/simquant/backtester/security"
	"github.com/simquant/backtester/statistics"
	"github.com/simquant/backtester/strategies"
	"github.com/simquant/backtester/synchronizer"
)

// NewFromConfig assembles every component of a run from a validated config.
// All feeds are fully loaded before this returns; a data problem surfaces
// here rather than mid-run
func NewFromConfig(cfg *config.Config) (*BackTest, error) {
	if cfg == nil {
		return nil, errNilConfig
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Verbose {
		log.SetDebug(true)
	}

	bt := &BackTest{
		cfg:   cfg,
		feeds: &data.HandlerPerSecurity{},
	}
	bt.feeds.Setup()

	subscriptions := make([]synchronizer.Subscription, 0, len(cfg.Subscriptions))
	for i := range cfg.Subscriptions {
		sec, feed, err := buildFeed(cfg, &cfg.Subscriptions[i])
		if err != nil {
			return nil, err
		}
		if err = feed.Load(); err != nil {
			return nil, fmt.Errorf("could not load %v feed: %w", sec.Symbol, err)
		}
		bt.securities = append(bt.securities, sec)
		bt.feeds.SetHandlerForSecurity(sec.Symbol, feed)
		subscriptions = append(subscriptions, synchronizer.Subscription{
			Security: sec,
			Data:     feed,
		})
	}

	var err error
	bt.sync, err = synchronizer.Setup(cfg.StartDate, cfg.EndDate, subscriptions)
	if err != nil {
		return nil, err
	}

	bt.ledger, err = portfolio.Setup(
		decimal.NewFromFloat(cfg.InitialCash),
		cfg.Margin.Enabled,
		decimal.NewFromFloat(cfg.Margin.MaxLeverage),
	)
	if err != nil {
		return nil, err
	}

	bt.exch, err = exchange.Setup(exchange.Settings{
		FeeRate:  decimal.NewFromFloat(cfg.FeeRate),
		Slippage: buildSlippage(&cfg.Slippage),
	})
	if err != nil {
		return nil, err
	}

	bt.corp, err = corporateactions.Setup(buildActions(cfg.CorporateActions))
	if err != nil {
		return nil, err
	}

	bt.strategy, err = strategies.LoadStrategyByName(cfg.Strategy.Name)
	if err != nil {
		return nil, err
	}
	if len(cfg.Strategy.CustomSettings) > 0 {
		if err = bt.strategy.SetCustomSettings(cfg.Strategy.CustomSettings); err != nil {
			return nil, err
		}
	}

	bt.stats = &statistics.Statistic{
		RiskFreeRate:    decimal.NewFromFloat(cfg.RiskFreeRate),
		BenchmarkSymbol: strings.ToUpper(cfg.Benchmark),
	}
	bt.ctx = &tradingContext{bt: bt}

	log.Infof(log.Engine, "assembled backtest %q: %v securities, strategy %v, %v -> %v",
		cfg.Nickname, len(bt.securities), bt.strategy.Name(), cfg.StartDate, cfg.EndDate)
	return bt, nil
}

func buildFeed(cfg *config.Config, sub *config.Subscription) (*security.Security, data.Handler, error) {
	asset, err := security.AssetFromString(sub.Asset)
	if err != nil {
		return nil, nil, err
	}
	resolution, err := security.ResolutionFromString(sub.Resolution)
	if err != nil {
		return nil, nil, err
	}
	sec, err := security.New(sub.Symbol, asset, resolution, sub.Currency)
	if err != nil {
		return nil, nil, err
	}

	switch sub.Data.Source {
	case config.SourceCSV:
		return sec, &csv.Feed{FilePath: sub.Data.Path, Security: sec}, nil
	case config.SourceDatabase:
		return sec, &database.Feed{
			Driver:   sub.Data.Driver,
			DSN:      sub.Data.DSN,
			Table:    sub.Data.Table,
			Security: sec,
			Start:    cfg.StartDate,
			End:      cfg.EndDate,
		}, nil
	case config.SourceSynthetic:
		return sec, &synthetic.Feed{
			Security:   sec,
			Start:      cfg.StartDate,
			End:        cfg.EndDate,
			StartPrice: decimal.NewFromFloat(sub.Data.StartPrice),
			Seed:       sub.Data.Seed,
		}, nil
	}
	return nil, nil, fmt.Errorf("unhandled data source %q", sub.Data.Source)
}

func buildSlippage(cfg *config.Slippage) slippage.Model {
	switch cfg.Model {
	case config.SlippageFixedRate:
		return slippage.FixedRate{Rate: decimal.NewFromFloat(cfg.Rate)}
	case config.SlippageRandom:
		return slippage.NewRandom(cfg.Seed, decimal.NewFromFloat(cfg.Rate))
	}
	return slippage.None{}
}

func buildActions(actions []config.CorporateAction) []corporateactions.Action {
	out := make([]corporateactions.Action, 0, len(actions))
	for i := range actions {
		out = append(out, corporateactions.Action{
			Symbol: actions[i].Symbol,
			Date:   actions[i].Date,
			Kind:   corporateactions.Kind(strings.ToUpper(actions[i].Kind)),
			Factor: decimal.NewFromFloat(actions[i].Factor),
			Amount: decimal.NewFromFloat(actions[i].Amount),
		})
	}
	return out
}
