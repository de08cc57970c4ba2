package report

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/gamma-omg/stockdash/internal/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *market.Dataset {
	instruments := []market.Instrument{
		{Ticker: "VOD", Name: "Vodafone Group", Sector: "Telecom", Industry: "Mobile", TotalProfit: decimal.NewFromInt(100), VolumeIndicator: "7", BetaRisk: "1.5"},
		{Ticker: "BP", Name: "BP", Sector: "Energy", Industry: "Oil & Gas", TotalProfit: decimal.NewFromInt(40), VolumeIndicator: "UNKNOWN", BetaRisk: "UNKNOWN"},
	}
	transactions := []market.Transaction{
		{Ticker: "VOD", Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Signal: market.SignalBuy, Price: decimal.NewFromInt(85), Profit: decimal.Zero},
		{Ticker: "VOD", Date: time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), Signal: market.SignalSell, Price: decimal.NewFromInt(95), Profit: decimal.NewFromFloat(111.15)},
	}
	history := []market.ProfitPoint{{Label: "w1.csv", Value: decimal.NewFromInt(5)}}

	return market.NewDataset("UK", instruments, transactions, history)
}

func TestBuild(t *testing.T) {
	b := NewBuilder(slog.Default())
	r := b.Build(testDataset())

	assert.Equal(t, "UK", r.Country)
	assert.Equal(t, "140", r.GrandTotal)

	require.Len(t, r.Sectors, 2)
	assert.Equal(t, "Energy", r.Sectors[0].Sector)
	assert.Equal(t, "40", r.Sectors[0].Profit)
	require.Len(t, r.Sectors[0].Industries, 1)
	assert.Equal(t, "Oil & Gas", r.Sectors[0].Industries[0].Industry)

	vod, ok := r.Tickers["VOD"]
	require.True(t, ok)
	assert.Equal(t, "Vodafone Group", vod.Name)
	assert.Equal(t, 7.0, vod.Volume)
	assert.Equal(t, 1.5, vod.Beta)

	// two transactions plus the summary row
	require.Len(t, vod.Ledger, 3)
	summary := vod.Ledger[2]
	assert.True(t, summary.IsSummary)
	assert.Equal(t, "111.15", summary.Profit)
	assert.Equal(t, "BUY", vod.Ledger[0].Signal)

	// no transactions for BP means no ledger and no summary row
	bp, ok := r.Tickers["BP"]
	require.True(t, ok)
	assert.Empty(t, bp.Ledger)
	assert.Equal(t, 0.0, bp.Volume)
	assert.Equal(t, -5.0, bp.Beta)

	require.Len(t, r.ProfitHistory, 1)
	assert.Equal(t, "w1.csv", r.ProfitHistory[0].Label)
}

func TestWrite(t *testing.T) {
	b := NewBuilder(slog.Default())
	r := b.Build(testDataset())

	var buf bytes.Buffer
	require.NoError(t, b.Write(r, &buf))

	var decoded Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, r.GrandTotal, decoded.GrandTotal)
	assert.Len(t, decoded.Tickers, 2)
}

func TestBuild_Deterministic(t *testing.T) {
	b := NewBuilder(slog.Default())

	var first, second bytes.Buffer
	require.NoError(t, b.Write(b.Build(testDataset()), &first))
	require.NoError(t, b.Write(b.Build(testDataset()), &second))
	assert.Equal(t, first.String(), second.String())
}
