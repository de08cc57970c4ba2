// Package history resolves OHLCV bar ranges for the calculator and the
// indicator snapshots.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/gamma-omg/stockdash/internal/config"
	"github.com/gamma-omg/stockdash/internal/market"
)

type Provider interface {
	// Bars returns the bars for ticker within [start, end], ascending by
	// time. An empty result is not an error.
	Bars(ctx context.Context, ticker string, start, end time.Time) ([]market.Bar, error)
}

func Create(ref config.HistoryReference) (Provider, error) {
	csvCfg, ok := ref.Provider.(config.CSVHistory)
	if ok {
		return NewCSVProvider(csvCfg.Dir), nil
	}

	alpacaCfg, ok := ref.Provider.(config.Alpaca)
	if ok {
		return NewAlpacaProvider(alpacaCfg), nil
	}

	return nil, errors.New("unknown history provider")
}
