// roicalc is the standalone gain/loss calculator. Manual mode takes buy
// and sell prices from flags; range mode resolves them from the configured
// bar history provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gamma-omg/stockdash/internal/calc"
	"github.com/gamma-omg/stockdash/internal/config"
	"github.com/gamma-omg/stockdash/internal/dataset"
	"github.com/gamma-omg/stockdash/internal/history"
	"github.com/shopspring/decimal"
)

const fetchTimeout = 30 * time.Second

func main() {
	var (
		mode       = flag.String("mode", "manual", "manual or range")
		ticker     = flag.String("ticker", "", "instrument ticker")
		investment = flag.Float64("investment", 0, "investment amount")
		buy        = flag.Float64("buy", 0, "buy price (manual mode)")
		sell       = flag.Float64("sell", 0, "sell price (manual mode)")
		start      = flag.String("start", "", "start date YYYY-MM-DD (range mode)")
		end        = flag.String("end", "", "end date YYYY-MM-DD (range mode)")
		platform   = flag.Float64("platform-fee", 0, "monthly platform fee (range mode)")
		trading    = flag.Float64("trading-fee", 0, "per-trade fee")
		tax        = flag.Float64("tax-rate", 0, "tax rate as a fraction")
	)
	flag.Parse()

	logger := slog.Default()

	var r calc.Result
	switch *mode {
	case "manual":
		c := calc.NewCalculator(logger, nil, nil)
		r = c.Manual(calc.ManualInput{
			Ticker:     *ticker,
			Investment: decimal.NewFromFloat(*investment),
			BuyPrice:   decimal.NewFromFloat(*buy),
			SellPrice:  decimal.NewFromFloat(*sell),
			TradingFee: decimal.NewFromFloat(*trading),
			TaxRate:    decimal.NewFromFloat(*tax),
		})
	case "range":
		cfg, err := config.ReadFromFile(os.Getenv("CONFIG"))
		if err != nil {
			log.Fatal(err)
		}

		bars, err := history.Create(cfg.HistoryRef)
		if err != nil {
			log.Fatal(err)
		}

		startDate, err := time.Parse("2006-01-02", *start)
		if err != nil {
			log.Fatal(err)
		}
		endDate, err := time.Parse("2006-01-02", *end)
		if err != nil {
			log.Fatal(err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		c := calc.NewCalculator(logger, bars, nil)
		if ds, err := dataset.NewLoader(logger, cfg.DataRoot).Load(ctx, cfg.Country); err != nil {
			logger.Warn("dataset unavailable, company names degrade", "error", err)
		} else {
			c = calc.NewCalculator(logger, bars, ds)
		}
		r = c.DateRange(ctx, calc.RangeInput{
			Ticker:      *ticker,
			Investment:  decimal.NewFromFloat(*investment),
			Start:       startDate,
			End:         endDate,
			PlatformFee: decimal.NewFromFloat(*platform),
			TradingFee:  decimal.NewFromFloat(*trading),
			TaxRate:     decimal.NewFromFloat(*tax),
		})
	default:
		log.Fatalf("unknown mode: %s", *mode)
	}

	printResult(r)
}

func printResult(r calc.Result) {
	fmt.Printf("Company:        %s\n", r.CompanyName)
	fmt.Printf("Investment:     %s\n", r.Investment)
	fmt.Printf("Buy price:      %s\n", r.BuyPrice)
	fmt.Printf("Sell price:     %s\n", r.SellPrice)
	fmt.Printf("Shares:         %s\n", r.NumShares)
	fmt.Printf("Gross gain:     %s\n", r.GrossGain)
	fmt.Printf("Platform fees:  %s\n", r.TotalPlatformFees)
	fmt.Printf("Trading fees:   %s\n", r.TotalTradingFees)
	fmt.Printf("Tax:            %s\n", r.TaxAmount)
	fmt.Printf("Net gain:       %s\n", r.NetGain)
	fmt.Printf("ROI:            %s%%\n", r.ROIPercent)
	if r.Degraded {
		fmt.Println("(no data for the given inputs)")
	}
}
