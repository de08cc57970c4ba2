// Package dataset loads the per-country CSV files produced by the batch
// signal job into an immutable market.Dataset.
package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gamma-omg/stockdash/internal/market"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	batchFile   = "BATCH.csv"
	buySellFile = "BUYSELL.csv"
	pastFile    = "PAST.csv"

	// The dashboard always shows one year of weekly profit history.
	profitHistoryLen = 52
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

type Loader struct {
	log  *slog.Logger
	root string
}

func NewLoader(log *slog.Logger, root string) *Loader {
	return &Loader{log: log, root: root}
}

// Load reads the three dataset files for one country. The files are
// independent and load concurrently; any failure fails the whole load.
func (l *Loader) Load(ctx context.Context, country string) (*market.Dataset, error) {
	dir := filepath.Join(l.root, country)

	var (
		instruments  []market.Instrument
		transactions []market.Transaction
		history      []market.ProfitPoint
	)

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		instruments, err = l.loadBatch(filepath.Join(dir, batchFile))
		return err
	})
	g.Go(func() (err error) {
		transactions, err = l.loadTransactions(filepath.Join(dir, buySellFile))
		return err
	})
	g.Go(func() (err error) {
		history, err = l.loadProfitHistory(filepath.Join(dir, pastFile))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dataset for %s: %w", country, err)
	}

	l.log.Info("dataset loaded",
		slog.String("country", country),
		slog.Int("instruments", len(instruments)),
		slog.Int("transactions", len(transactions)))

	return market.NewDataset(country, instruments, transactions, history), nil
}

func (l *Loader) loadBatch(path string) ([]market.Instrument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open batch file: %w", err)
	}
	defer f.Close()

	return ReadBatch(f)
}

// ReadBatch parses instrument rows. Header names are trimmed before
// matching; the batch job pads them inconsistently.
func ReadBatch(r io.Reader) ([]market.Instrument, error) {
	rdr := csv.NewReader(bufio.NewReader(r))
	rdr.FieldsPerRecord = -1

	cols, err := readHeader(rdr)
	if err != nil {
		return nil, err
	}

	for _, required := range []string{"Ticker", "Name", "Sector", "Industry", "Total Profit"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("batch file is missing column %q", required)
		}
	}

	var instruments []market.Instrument
	for line := 2; ; line++ {
		row, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read batch row: %w", err)
		}

		field := fieldReader(cols, row)

		profit, err := decimal.NewFromString(strings.TrimSpace(field("Total Profit")))
		if err != nil {
			return nil, fmt.Errorf("invalid total profit on line %d: %w", line, err)
		}

		hold, _ := strconv.ParseFloat(strings.TrimSpace(field("Avg Hold Period(days)")), 64)
		trades, _ := strconv.Atoi(strings.TrimSpace(field("Num of Trades")))

		instruments = append(instruments, market.Instrument{
			Ticker:          strings.TrimSpace(field("Ticker")),
			Name:            strings.TrimSpace(field("Name")),
			Sector:          strings.TrimSpace(field("Sector")),
			Industry:        strings.TrimSpace(field("Industry")),
			AvgHoldDays:     hold,
			NumTrades:       trades,
			BuyRange:        strings.TrimSpace(field("BUY Range")),
			SellRange:       strings.TrimSpace(field("SELL Range")),
			PriceMovement:   strings.TrimSpace(field("Price Movement")),
			TotalProfit:     profit,
			LastPrice:       strings.TrimSpace(field("last Price")),
			VolumeIndicator: strings.TrimSpace(field("Volume Indicator")),
			BetaRisk:        strings.TrimSpace(field("Beta Risk")),
		})
	}

	return instruments, nil
}

func (l *Loader) loadTransactions(path string) ([]market.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open buysell file: %w", err)
	}
	defer f.Close()

	return ReadTransactions(f)
}

// ReadTransactions parses ledger rows. Rows keep file order, which is
// ascending by date per ticker.
func ReadTransactions(r io.Reader) ([]market.Transaction, error) {
	rdr := csv.NewReader(bufio.NewReader(r))
	rdr.FieldsPerRecord = -1

	cols, err := readHeader(rdr)
	if err != nil {
		return nil, err
	}

	for _, required := range []string{"Ticker", "Date", "Signal", "Price", "Profit"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("buysell file is missing column %q", required)
		}
	}

	var txs []market.Transaction
	for line := 2; ; line++ {
		row, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read buysell row: %w", err)
		}

		field := fieldReader(cols, row)

		date, err := parseDate(field("Date"))
		if err != nil {
			return nil, fmt.Errorf("invalid date on line %d: %w", line, err)
		}

		signal, err := market.ParseSignal(field("Signal"))
		if err != nil {
			return nil, fmt.Errorf("invalid signal on line %d: %w", line, err)
		}

		money := map[string]*decimal.Decimal{}
		tx := market.Transaction{
			Ticker: strings.TrimSpace(field("Ticker")),
			Date:   date,
			Signal: signal,
		}
		money["Price"] = &tx.Price
		money["Invested"] = &tx.Invested
		money["Shares"] = &tx.Shares
		money["Avg Price"] = &tx.AvgPrice
		money["Profit"] = &tx.Profit

		for name, dst := range money {
			raw := strings.TrimSpace(field(name))
			if raw == "" {
				continue
			}

			*dst, err = decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s on line %d: %w", name, line, err)
			}
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

func (l *Loader) loadProfitHistory(path string) ([]market.ProfitPoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open past file: %w", err)
	}
	defer f.Close()

	return ReadProfitHistory(f)
}

// ReadProfitHistory parses the headerless label,value rows and left-pads
// (or truncates) them to exactly 52 weekly points.
func ReadProfitHistory(r io.Reader) ([]market.ProfitPoint, error) {
	rdr := csv.NewReader(bufio.NewReader(r))
	rdr.FieldsPerRecord = -1

	var points []market.ProfitPoint
	for {
		row, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read past row: %w", err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("malformed past row: %d fields", len(row))
		}

		value, err := decimal.NewFromString(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid past value %q: %w", row[1], err)
		}

		points = append(points, market.ProfitPoint{
			Label: strings.TrimSpace(row[0]),
			Value: value,
		})
	}

	if len(points) > profitHistoryLen {
		points = points[len(points)-profitHistoryLen:]
	}

	padded := make([]market.ProfitPoint, profitHistoryLen-len(points), profitHistoryLen)
	return append(padded, points...), nil
}

func readHeader(rdr *csv.Reader) (map[string]int, error) {
	header, err := rdr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	return cols, nil
}

// fieldReader returns a lookup over one row that yields "" for columns the
// file does not carry.
func fieldReader(cols map[string]int, row []string) func(string) string {
	return func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}

		return row[i]
	}
}

func parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date: %q", raw)
}
