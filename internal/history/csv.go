package history

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gamma-omg/stockdash/internal/market"
	"github.com/shopspring/decimal"
)

// CSVProvider serves bars from one <TICKER>.csv file per instrument, each
// holding timestamp,open,high,low,close,volume rows in ascending order.
type CSVProvider struct {
	dir string
}

func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir}
}

func (p *CSVProvider) Bars(ctx context.Context, ticker string, start, end time.Time) ([]market.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(p.dir, ticker+".csv"))
	if err != nil {
		return nil, fmt.Errorf("unable to open bars file for %s: %w", ticker, err)
	}
	defer f.Close()

	rdr := csv.NewReader(bufio.NewReader(f))
	if _, err := rdr.Read(); err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var bars []market.Bar
	for {
		data, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read bar data: %w", err)
		}

		bar, err := parseBar(data)
		if err != nil {
			return nil, err
		}

		if bar.Time.Before(start) || bar.Time.After(end) {
			continue
		}

		bars = append(bars, bar)
	}

	return bars, nil
}

func parseBar(data []string) (market.Bar, error) {
	if len(data) < 6 {
		return market.Bar{}, fmt.Errorf("malformed bar row: %d fields", len(data))
	}

	timestamp, err := strconv.ParseFloat(data[0], 64)
	if err != nil {
		return market.Bar{}, fmt.Errorf("failed to parse bar time: %w", err)
	}

	fields := make([]decimal.Decimal, 5)
	names := []string{"open", "high", "low", "close", "volume"}
	for i := range fields {
		fields[i], err = decimal.NewFromString(data[i+1])
		if err != nil {
			return market.Bar{}, fmt.Errorf("failed to read %s value: %w", names[i], err)
		}
	}

	return market.Bar{
		Time:   time.Unix(int64(timestamp), 0),
		Open:   fields[0],
		High:   fields[1],
		Low:    fields[2],
		Close:  fields[3],
		Volume: fields[4],
	}, nil
}
