package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gamma-omg/stockdash/internal/config"
	"github.com/gamma-omg/stockdash/internal/dataset"
	"github.com/gamma-omg/stockdash/internal/history"
	"github.com/gamma-omg/stockdash/internal/indicator"
	"github.com/gamma-omg/stockdash/internal/market"
	"github.com/gamma-omg/stockdash/internal/report"
	"github.com/gamma-omg/stockdash/internal/screener"
)

const fetchTimeout = 30 * time.Second

func main() {
	cfg, err := config.ReadFromFile(os.Getenv("CONFIG"))
	if err != nil {
		log.Fatal(err)
	}

	logger := slog.Default()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loader := dataset.NewLoader(logger, cfg.DataRoot)
	ds, err := loader.Load(ctx, cfg.Country)
	if err != nil {
		log.Fatal(err)
	}

	if f := screenFilter(cfg.Filter); f != nil {
		kept := screener.Apply(ds.Instruments, f)
		logger.Info("instrument filter applied", "kept", len(kept), "total", len(ds.Instruments))
		ds = market.NewDataset(ds.Country, kept, ds.Transactions, ds.ProfitHistory)
	}

	b := report.NewBuilder(logger)
	r := b.Build(ds)
	if err := b.WriteToFile(r, cfg.Report); err != nil {
		log.Fatal(err)
	}

	if cfg.Snapshots.Dir == "" || len(cfg.Snapshots.Tickers) == 0 {
		return
	}

	bars, err := history.Create(cfg.HistoryRef)
	if err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(cfg.Snapshots.Dir, 0o755); err != nil {
		log.Fatal(err)
	}

	end := time.Now()
	start := end.AddDate(-1, 0, 0)
	for _, ticker := range cfg.Snapshots.Tickers {
		if err := renderSnapshot(ctx, logger, bars, cfg.Snapshots, ticker, start, end); err != nil {
			logger.Error("failed to render snapshot", "ticker", ticker, "error", err)
		}
	}
}

func screenFilter(f *config.Filter) *screener.Filter {
	if f == nil {
		return nil
	}

	return &screener.Filter{
		Sectors:    f.Sectors,
		Industries: f.Industries,
		Hold:       screenRange(f.Hold),
		Trades:     screenRange(f.Trades),
		Volume:     screenRange(f.Volume),
		Beta:       screenRange(f.Beta),
		LastPrice:  screenRange(f.LastPrice),
	}
}

func screenRange(r *config.RangeFilter) *screener.Range {
	if r == nil {
		return nil
	}

	return &screener.Range{Min: r.Min, Max: r.Max}
}

func renderSnapshot(ctx context.Context, logger *slog.Logger, bars history.Provider, cfg config.Snapshots, ticker string, start, end time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	fetched, err := bars.Bars(ctx, ticker, start, end)
	if err != nil {
		return err
	}
	if len(fetched) == 0 {
		logger.Warn("no bars for ticker, skipping snapshot", "ticker", ticker)
		return nil
	}

	s := indicator.Compute(fetched)
	snap, err := indicator.Render(ticker, s, cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.Dir, ticker+".png")
	if err := snap.Save(path); err != nil {
		return err
	}

	logger.Info("snapshot rendered", "ticker", ticker, "path", path)
	return nil
}
