// Package calc implements the gain/loss calculator: manual prices or a
// date range resolved against a bar history provider.
package calc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/gamma-omg/stockdash/internal/history"
	"github.com/shopspring/decimal"
)

// NoSelection is the company-name placeholder carried by degraded results.
const NoSelection = "No Selection"

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

type ManualInput struct {
	Ticker     string
	Investment decimal.Decimal
	BuyPrice   decimal.Decimal
	SellPrice  decimal.Decimal
	TradingFee decimal.Decimal
	TaxRate    decimal.Decimal
}

type RangeInput struct {
	Ticker      string
	Investment  decimal.Decimal
	Start       time.Time
	End         time.Time
	PlatformFee decimal.Decimal
	TradingFee  decimal.Decimal
	TaxRate     decimal.Decimal
}

// Result is produced for every input: failed lookups, bad ranges and
// unparseable inputs yield the zeroed Degraded shape instead of an error,
// so the presentation layer always has something well-formed to show.
type Result struct {
	ROIPercent        decimal.Decimal
	GrossGain         decimal.Decimal
	TotalPlatformFees decimal.Decimal
	TotalTradingFees  decimal.Decimal
	TaxAmount         decimal.Decimal
	NetGain           decimal.Decimal
	CompanyName       string
	BuyPrice          decimal.Decimal
	SellPrice         decimal.Decimal
	NumShares         decimal.Decimal
	Investment        decimal.Decimal
	Degraded          bool
}

type companyDirectory interface {
	CompanyName(ticker string) (string, bool)
}

type Calculator struct {
	log     *slog.Logger
	bars    history.Provider
	company companyDirectory
}

// NewCalculator builds a calculator. bars may be nil when only manual mode
// is used; company may be nil when no instrument table is loaded.
func NewCalculator(log *slog.Logger, bars history.Provider, company companyDirectory) *Calculator {
	return &Calculator{
		log:     log,
		bars:    bars,
		company: company,
	}
}

// Manual computes the breakdown from caller-supplied buy/sell prices.
// Platform fees are not charged in manual mode.
func (c *Calculator) Manual(in ManualInput) Result {
	ticker := strings.ToUpper(strings.TrimSpace(in.Ticker))
	if ticker == "" || in.Investment.IsNegative() {
		return degraded(decimal.Zero, decimal.Zero)
	}

	r := c.breakdown(in.Investment, in.BuyPrice, in.SellPrice, in.TradingFee, in.TaxRate, decimal.Zero)
	r.CompanyName = c.companyName(ticker)
	return r
}

// DateRange computes the breakdown with buy/sell resolved from the first
// and last close of the fetched history. Platform fees accrue per elapsed
// calendar month once the range spans more than one.
func (c *Calculator) DateRange(ctx context.Context, in RangeInput) Result {
	tradingFees := in.TradingFee.Mul(two)

	ticker := strings.ToUpper(strings.TrimSpace(in.Ticker))
	if ticker == "" || in.Start.IsZero() || in.End.IsZero() || in.Investment.IsNegative() {
		return degraded(in.PlatformFee, tradingFees)
	}

	if in.End.Before(in.Start) {
		c.log.Warn("invalid calculator range", slog.Time("start", in.Start), slog.Time("end", in.End))
		return degraded(in.PlatformFee, tradingFees)
	}

	if c.bars == nil {
		return degraded(in.PlatformFee, tradingFees)
	}

	bars, err := c.bars.Bars(ctx, ticker, in.Start, in.End)
	if err != nil {
		c.log.Warn("history lookup failed", slog.String("ticker", ticker), slog.String("error", err.Error()))
		return degraded(in.PlatformFee, tradingFees)
	}
	if len(bars) == 0 {
		return degraded(in.PlatformFee, tradingFees)
	}

	buy := bars[0].Close
	sell := bars[len(bars)-1].Close

	months := (in.End.Year()-in.Start.Year())*12 + int(in.End.Month()) - int(in.Start.Month())
	platformFees := decimal.Zero
	if months > 1 {
		platformFees = in.PlatformFee.Mul(decimal.NewFromInt(int64(months)))
	}

	r := c.breakdown(in.Investment, buy, sell, in.TradingFee, in.TaxRate, platformFees)
	r.CompanyName = c.companyName(ticker)
	return r
}

func (c *Calculator) breakdown(investment, buy, sell, tradingFee, taxRate, platformFees decimal.Decimal) Result {
	tax := investment.Mul(taxRate)
	adjusted := investment.Sub(tax)

	shares := decimal.Zero
	if !buy.IsZero() {
		shares = adjusted.Div(buy)
	}

	gross := shares.Mul(sell).Sub(adjusted)
	tradingFees := tradingFee.Mul(two)
	net := gross.Sub(tradingFees).Sub(platformFees)

	roi := decimal.Zero
	if !investment.IsZero() {
		roi = net.Div(investment).Mul(hundred).Round(2)
	}

	return Result{
		ROIPercent:        roi,
		GrossGain:         gross.Round(2),
		TotalPlatformFees: platformFees.Round(2),
		TotalTradingFees:  tradingFees.Round(2),
		TaxAmount:         tax.Round(2),
		NetGain:           net.Round(2),
		BuyPrice:          buy,
		SellPrice:         sell,
		NumShares:         shares,
		Investment:        investment,
	}
}

// degraded is the uniform placeholder shape. Date-range failures still echo
// the fee inputs so the fee fields of the calculator card keep their values.
func degraded(platformFees, tradingFees decimal.Decimal) Result {
	return Result{
		TotalPlatformFees: platformFees,
		TotalTradingFees:  tradingFees,
		CompanyName:       NoSelection,
		Degraded:          true,
	}
}

func (c *Calculator) companyName(ticker string) string {
	if c.company == nil {
		return NoSelection
	}

	name, ok := c.company.CompanyName(ticker)
	if !ok {
		return NoSelection
	}

	return name
}
