package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/gamma-omg/stockdash/internal/config"
	"github.com/gamma-omg/stockdash/internal/market"
	"github.com/shopspring/decimal"
)

// AlpacaProvider resolves daily bars from the Alpaca market data API.
type AlpacaProvider struct {
	cfg    config.Alpaca
	client *marketdata.Client
}

func NewAlpacaProvider(cfg config.Alpaca) *AlpacaProvider {
	return &AlpacaProvider{
		cfg: cfg,
		client: marketdata.NewClient(marketdata.ClientOpts{
			BaseURL:   cfg.BaseUrl,
			APIKey:    cfg.ApiKey,
			APISecret: cfg.Secret,
		}),
	}
}

func (p *AlpacaProvider) Bars(ctx context.Context, ticker string, start, end time.Time) ([]market.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	symbol := strings.ToUpper(strings.TrimSpace(ticker))
	raw, err := p.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.Split,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bars for %s: %w", symbol, err)
	}

	bars := make([]market.Bar, len(raw))
	for i, b := range raw {
		bars[i] = market.Bar{
			Time:   b.Timestamp,
			Open:   decimal.NewFromFloat(b.Open),
			High:   decimal.NewFromFloat(b.High),
			Low:    decimal.NewFromFloat(b.Low),
			Close:  decimal.NewFromFloat(b.Close),
			Volume: decimal.NewFromInt(int64(b.Volume)),
		}
	}

	return bars, nil
}
