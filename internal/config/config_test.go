package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_CSVHistory(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
data_root: /var/data/exchange
country: UK
report: /var/out/report.json
snapshots:
    dir: /var/out/snapshots
    tickers: [VOD, BT]
    width: 1200
    height: 300
calculator:
    platform_fee: 12
    trading_fee: 4
    tax_rate: 0.005
history:
    csv:
        dir: /var/data/bars
`))

	require.NoError(t, err)

	assert.Equal(t, "/var/data/exchange", cfg.DataRoot)
	assert.Equal(t, "UK", cfg.Country)
	assert.Equal(t, "/var/out/report.json", cfg.Report)
	assert.Equal(t, []string{"VOD", "BT"}, cfg.Snapshots.Tickers)
	assert.Equal(t, 1200, cfg.Snapshots.Width)
	assert.Equal(t, 12.0, cfg.Calculator.PlatformFee)
	assert.Equal(t, 0.005, cfg.Calculator.TaxRate)

	csv, ok := cfg.HistoryRef.Provider.(CSVHistory)
	require.True(t, ok)
	assert.Equal(t, "/var/data/bars", csv.Dir)
}

func TestRead_Filter(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
filter:
    sectors: [Telecom, Energy]
    beta:
        min: -1.5
        max: 3
`))

	require.NoError(t, err)
	require.NotNil(t, cfg.Filter)
	assert.Equal(t, []string{"Telecom", "Energy"}, cfg.Filter.Sectors)
	require.NotNil(t, cfg.Filter.Beta)
	assert.Equal(t, -1.5, cfg.Filter.Beta.Min)
	assert.Equal(t, 3.0, cfg.Filter.Beta.Max)
	assert.Nil(t, cfg.Filter.Hold)
}

func TestRead_AlpacaHistory(t *testing.T) {
	cfg, err := Read(strings.NewReader(`
history:
    alpaca:
        base_url: https://paper-api.example.com
        api_key: key
        secret: shh
`))

	require.NoError(t, err)

	alpaca, ok := cfg.HistoryRef.Provider.(Alpaca)
	require.True(t, ok)
	assert.Equal(t, "https://paper-api.example.com", alpaca.BaseUrl)
	assert.Equal(t, "key", alpaca.ApiKey)
	assert.Equal(t, "shh", alpaca.Secret)
}

func TestRead_UnknownHistoryProvider(t *testing.T) {
	_, err := Read(strings.NewReader(`
history:
    yahoo:
        region: GB
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown history provider")
}
