// Package report renders a market dataset into the JSON summary the
// dashboard front-end consumes: grand total, sector cards, and per-ticker
// ledger and gauge blocks.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gamma-omg/stockdash/internal/gauge"
	"github.com/gamma-omg/stockdash/internal/ledger"
	"github.com/gamma-omg/stockdash/internal/market"
)

type Report struct {
	Country       string                 `json:"country"`
	GrandTotal    string                 `json:"grand_total"`
	Sectors       []SectorCard           `json:"sectors,omitempty"`
	Tickers       map[string]TickerBlock `json:"tickers,omitempty"`
	ProfitHistory []ProfitPoint          `json:"profit_history,omitempty"`
}

type SectorCard struct {
	Sector     string         `json:"sector"`
	Profit     string         `json:"profit"`
	Industries []IndustryCard `json:"industries,omitempty"`
}

type IndustryCard struct {
	Industry string `json:"industry"`
	Profit   string `json:"profit"`
}

type TickerBlock struct {
	Name        string      `json:"name,omitempty"`
	Sector      string      `json:"sector,omitempty"`
	Industry    string      `json:"industry,omitempty"`
	TotalProfit string      `json:"total_profit"`
	Volume      float64     `json:"volume_gauge"`
	Beta        float64     `json:"beta_gauge"`
	Ledger      []LedgerRow `json:"ledger,omitempty"`
}

type LedgerRow struct {
	Date      time.Time `json:"date,omitzero,omitempty"`
	Signal    string    `json:"signal,omitempty"`
	Price     string    `json:"price,omitempty"`
	Invested  string    `json:"invested,omitempty"`
	Shares    string    `json:"shares,omitempty"`
	AvgPrice  string    `json:"avg_price,omitempty"`
	Profit    string    `json:"profit"`
	IsSummary bool      `json:"is_summary,omitempty"`
}

type ProfitPoint struct {
	Label string `json:"label,omitempty"`
	Value string `json:"value"`
}

type Builder struct {
	log *slog.Logger
}

func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{log: log}
}

func (b *Builder) Build(ds *market.Dataset) Report {
	sectors := ledger.SectorProfits(ds.Instruments)

	r := Report{
		Country:    ds.Country,
		GrandTotal: ledger.GrandTotal(sectors).String(),
		Tickers:    make(map[string]TickerBlock, len(ds.Instruments)),
	}

	for _, s := range sectors {
		card := SectorCard{Sector: s.Sector, Profit: s.Profit.String()}
		for _, ind := range ledger.IndustryProfits(ds.Instruments, s.Sector) {
			card.Industries = append(card.Industries, IndustryCard{
				Industry: ind.Industry,
				Profit:   ind.Profit.String(),
			})
		}
		r.Sectors = append(r.Sectors, card)
	}

	for _, inst := range ds.Instruments {
		reading := gauge.ForTicker(ds, inst.Ticker)
		block := TickerBlock{
			Name:        inst.Name,
			Sector:      inst.Sector,
			Industry:    inst.Industry,
			TotalProfit: inst.TotalProfit.String(),
			Volume:      reading.Volume,
			Beta:        reading.Beta,
		}

		for _, row := range ledger.WithSummary(ds.TransactionsFor(inst.Ticker)) {
			block.Ledger = append(block.Ledger, newLedgerRow(row))
		}

		r.Tickers[inst.Ticker] = block
	}

	for _, p := range ds.ProfitHistory {
		r.ProfitHistory = append(r.ProfitHistory, ProfitPoint{
			Label: p.Label,
			Value: p.Value.String(),
		})
	}

	b.log.Info("report built",
		slog.String("country", ds.Country),
		slog.Int("sectors", len(r.Sectors)),
		slog.Int("tickers", len(r.Tickers)),
		slog.String("grand_total", r.GrandTotal))

	return r
}

func newLedgerRow(row ledger.Row) LedgerRow {
	if row.IsSummary {
		return LedgerRow{
			Profit:    row.Profit.String(),
			IsSummary: true,
		}
	}

	return LedgerRow{
		Date:     row.Date,
		Signal:   row.Signal.String(),
		Price:    row.Price.String(),
		Invested: row.Invested.String(),
		Shares:   row.Shares.String(),
		AvgPrice: row.AvgPrice.String(),
		Profit:   row.Profit.String(),
	}
}

func (b *Builder) Write(r Report, w io.Writer) error {
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	if err := e.Encode(r); err != nil {
		return fmt.Errorf("failed to write market report: %w", err)
	}

	return nil
}

func (b *Builder) WriteToFile(r Report, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return b.Write(r, f)
}
