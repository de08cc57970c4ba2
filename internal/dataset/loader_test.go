package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gamma-omg/stockdash/internal/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const batchCSV = `Ticker, Name ,Sector,Industry,Avg Hold Period(days),Num of Trades,BUY Range,SELL Range,Price Movement,Total Profit,last Price,Volume Indicator,Beta Risk
VOD,Vodafone Group,Telecom,Mobile,12.5,8,80-90,110-120,UP,150.25,88.4,7,1.2
BT,BT Group,Telecom,Fixed Line,30,3,100-110,130-140,DOWN,-12.75,105.1,UNKNOWN,UNKNOWN
`

const buySellCSV = `Ticker,Date,Signal,Price,Invested,Shares,Avg Price,Profit
VOD,2024-01-10,BUY,85.5,1000,11.7,85.5,0
VOD,2024-02-15,SELL,95.0,0,11.7,85.5,111.15
BT,2024-03-01,BUY,102,500,4.9,102,0
`

func TestReadBatch(t *testing.T) {
	instruments, err := ReadBatch(strings.NewReader(batchCSV))
	require.NoError(t, err)
	require.Len(t, instruments, 2)

	vod := instruments[0]
	assert.Equal(t, "VOD", vod.Ticker)
	assert.Equal(t, "Vodafone Group", vod.Name)
	assert.Equal(t, "Telecom", vod.Sector)
	assert.Equal(t, "Mobile", vod.Industry)
	assert.Equal(t, 12.5, vod.AvgHoldDays)
	assert.Equal(t, 8, vod.NumTrades)
	assert.Equal(t, "80-90", vod.BuyRange)
	assert.Equal(t, "110-120", vod.SellRange)
	assert.Equal(t, "UP", vod.PriceMovement)
	assert.Equal(t, "150.25", vod.TotalProfit.String())
	assert.Equal(t, "88.4", vod.LastPrice)
	assert.Equal(t, "7", vod.VolumeIndicator)

	bt := instruments[1]
	assert.Equal(t, "UNKNOWN", bt.VolumeIndicator)
	assert.Equal(t, "UNKNOWN", bt.BetaRisk)
	assert.Equal(t, "-12.75", bt.TotalProfit.String())
}

func TestReadBatch_MissingColumn(t *testing.T) {
	_, err := ReadBatch(strings.NewReader("Ticker,Name,Sector\nVOD,Vodafone,Telecom\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestReadBatch_BadProfit(t *testing.T) {
	csv := "Ticker,Name,Sector,Industry,Total Profit\nVOD,Vodafone,Telecom,Mobile,oops\n"
	_, err := ReadBatch(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestReadTransactions(t *testing.T) {
	txs, err := ReadTransactions(strings.NewReader(buySellCSV))
	require.NoError(t, err)
	require.Len(t, txs, 3)

	assert.Equal(t, "VOD", txs[0].Ticker)
	assert.Equal(t, market.SignalBuy, txs[0].Signal)
	assert.Equal(t, "85.5", txs[0].Price.String())
	assert.Equal(t, "1000", txs[0].Invested.String())

	assert.Equal(t, market.SignalSell, txs[1].Signal)
	assert.Equal(t, "111.15", txs[1].Profit.String())
	assert.True(t, txs[1].Date.After(txs[0].Date))
}

func TestReadTransactions_BadSignal(t *testing.T) {
	csv := "Ticker,Date,Signal,Price,Profit\nVOD,2024-01-10,HOLD,85.5,0\n"
	_, err := ReadTransactions(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid signal")
}

func TestReadProfitHistory(t *testing.T) {
	history, err := ReadProfitHistory(strings.NewReader("w1.csv,10.5\nw2.csv,-3\nw3.csv,7\n"))
	require.NoError(t, err)
	require.Len(t, history, 52)

	for _, p := range history[:49] {
		assert.Empty(t, p.Label)
		assert.True(t, p.Value.IsZero())
	}

	assert.Equal(t, "w1.csv", history[49].Label)
	assert.Equal(t, "10.5", history[49].Value.String())
	assert.Equal(t, "w3.csv", history[51].Label)
}

func TestReadProfitHistory_TruncatesToWindow(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("wk,1\n")
	}

	history, err := ReadProfitHistory(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Len(t, history, 52)
	for _, p := range history {
		assert.Equal(t, "1", p.Value.String())
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "UK")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BATCH.csv"), []byte(batchCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "BUYSELL.csv"), []byte(buySellCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "PAST.csv"), []byte("w1.csv,5\n"), 0o644))

	loader := NewLoader(slog.Default(), root)
	ds, err := loader.Load(context.Background(), "UK")
	require.NoError(t, err)

	assert.Equal(t, "UK", ds.Country)
	assert.Len(t, ds.Instruments, 2)
	assert.Len(t, ds.Transactions, 3)
	assert.Len(t, ds.ProfitHistory, 52)

	vod, ok := ds.Instrument("VOD")
	require.True(t, ok)
	assert.Equal(t, "Vodafone Group", vod.Name)

	assert.Len(t, ds.TransactionsFor("VOD"), 2)
	assert.Equal(t, []string{"Telecom"}, ds.Sectors())
}

func TestLoad_MissingFile(t *testing.T) {
	loader := NewLoader(slog.Default(), t.TempDir())
	_, err := loader.Load(context.Background(), "UK")
	require.Error(t, err)
}
