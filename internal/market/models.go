package market

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Bar struct {
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume decimal.Decimal
}

type Signal int

const (
	SignalBuy  Signal = 1
	SignalSell Signal = -1
)

func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "BUY"
	case SignalSell:
		return "SELL"
	default:
		return fmt.Sprintf("SIGNAL_%d", s)
	}
}

func ParseSignal(raw string) (Signal, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "BUY":
		return SignalBuy, nil
	case "SELL":
		return SignalSell, nil
	default:
		return 0, fmt.Errorf("unknown signal: %q", raw)
	}
}

// Instrument is one row of the batch dataset. VolumeIndicator, BetaRisk and
// LastPrice stay raw at the load boundary: the upstream batch job emits
// "UNKNOWN" markers there, and coercion policy belongs to the consumers.
type Instrument struct {
	Ticker          string
	Name            string
	Sector          string
	Industry        string
	AvgHoldDays     float64
	NumTrades       int
	BuyRange        string
	SellRange       string
	PriceMovement   string
	TotalProfit     decimal.Decimal
	LastPrice       string
	VolumeIndicator string
	BetaRisk        string
}

type Transaction struct {
	Ticker   string
	Date     time.Time
	Signal   Signal
	Price    decimal.Decimal
	Invested decimal.Decimal
	Shares   decimal.Decimal
	AvgPrice decimal.Decimal
	Profit   decimal.Decimal
}

// ProfitPoint is one weekly entry of the historical profit series. Padding
// entries carry an empty label and a zero value.
type ProfitPoint struct {
	Label string
	Value decimal.Decimal
}
