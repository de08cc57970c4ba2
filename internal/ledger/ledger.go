// Package ledger aggregates the buy/sell transaction log: per-ticker
// summaries and sector/industry profit rollups.
package ledger

import (
	"sort"

	"github.com/gamma-omg/stockdash/internal/market"
	"github.com/shopspring/decimal"
)

type Row struct {
	market.Transaction
	IsSummary bool
}

// WithSummary returns the ledger rows for one ticker followed by a summary
// row whose profit is the 2dp-rounded sum of the input. The input must
// already be ordered by date. An empty ledger stays empty: no summary row
// is appended.
func WithSummary(txs []market.Transaction) []Row {
	if len(txs) == 0 {
		return nil
	}

	rows := make([]Row, 0, len(txs)+1)
	total := decimal.Zero
	for _, t := range txs {
		rows = append(rows, Row{Transaction: t})
		total = total.Add(t.Profit)
	}

	summary := Row{IsSummary: true}
	summary.Profit = total.Round(2)
	return append(rows, summary)
}

type SectorProfit struct {
	Sector string
	Profit decimal.Decimal
}

type IndustryProfit struct {
	Industry string
	Profit   decimal.Decimal
}

// SectorProfits sums instrument total profit by sector, sorted by sector
// name. Rows missing either sector or industry are excluded from rollups.
func SectorProfits(instruments []market.Instrument) []SectorProfit {
	sums := make(map[string]decimal.Decimal)
	for _, inst := range instruments {
		if inst.Sector == "" || inst.Industry == "" {
			continue
		}

		sums[inst.Sector] = sums[inst.Sector].Add(inst.TotalProfit)
	}

	out := make([]SectorProfit, 0, len(sums))
	for sector, profit := range sums {
		out = append(out, SectorProfit{Sector: sector, Profit: profit})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Sector < out[j].Sector })
	return out
}

// IndustryProfits is the per-industry rollup restricted to one sector.
func IndustryProfits(instruments []market.Instrument, sector string) []IndustryProfit {
	sums := make(map[string]decimal.Decimal)
	for _, inst := range instruments {
		if inst.Sector != sector || inst.Sector == "" || inst.Industry == "" {
			continue
		}

		sums[inst.Industry] = sums[inst.Industry].Add(inst.TotalProfit)
	}

	out := make([]IndustryProfit, 0, len(sums))
	for industry, profit := range sums {
		out = append(out, IndustryProfit{Industry: industry, Profit: profit})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Industry < out[j].Industry })
	return out
}

func GrandTotal(sectors []SectorProfit) decimal.Decimal {
	total := decimal.Zero
	for _, s := range sectors {
		total = total.Add(s.Profit)
	}

	return total
}
