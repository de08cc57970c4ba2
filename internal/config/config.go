package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataRoot   string           `yaml:"data_root"`
	Country    string           `yaml:"country"`
	Report     string           `yaml:"report"`
	Snapshots  Snapshots        `yaml:"snapshots"`
	Calculator Calculator       `yaml:"calculator"`
	Filter     *Filter          `yaml:"filter"`
	HistoryRef HistoryReference `yaml:"history"`
}

func Read(r io.Reader) (*Config, error) {
	var cfg Config
	d := yaml.NewDecoder(r)
	err := d.Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	return &cfg, nil
}

func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

type Snapshots struct {
	Dir     string   `yaml:"dir"`
	Tickers []string `yaml:"tickers"`
	Width   int      `yaml:"width"`
	Height  int      `yaml:"height"`
}

type Calculator struct {
	PlatformFee float64 `yaml:"platform_fee"`
	TradingFee  float64 `yaml:"trading_fee"`
	TaxRate     float64 `yaml:"tax_rate"`
}

// Filter narrows the instrument table before the report is built. Absent
// ranges are not applied.
type Filter struct {
	Sectors    []string     `yaml:"sectors"`
	Industries []string     `yaml:"industries"`
	Hold       *RangeFilter `yaml:"hold"`
	Trades     *RangeFilter `yaml:"trades"`
	Volume     *RangeFilter `yaml:"volume"`
	Beta       *RangeFilter `yaml:"beta"`
	LastPrice  *RangeFilter `yaml:"last_price"`
}

type RangeFilter struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// history provider configs

type CSVHistory struct {
	Dir string `yaml:"dir"`
}

type Alpaca struct {
	BaseUrl string `yaml:"base_url"`
	ApiKey  string `yaml:"api_key"`
	Secret  string `yaml:"secret"`
}

type Provider interface{}

type HistoryReference struct {
	Provider Provider
}

func (w *HistoryReference) UnmarshalYAML(value *yaml.Node) error {
	if len(value.Content) == 0 {
		return nil
	}

	if value.Kind != yaml.MappingNode || len(value.Content) != 2 {
		return errors.New("invalid history yaml format")
	}

	key := value.Content[0].Value
	switch key {
	case "csv":
		var csv CSVHistory
		if err := value.Content[1].Decode(&csv); err != nil {
			return fmt.Errorf("failed parsing csv history config: %w", err)
		}
		w.Provider = csv
	case "alpaca":
		var alpaca Alpaca
		if err := value.Content[1].Decode(&alpaca); err != nil {
			return fmt.Errorf("failed parsing alpaca history config: %w", err)
		}
		w.Provider = alpaca
	default:
		return fmt.Errorf("unknown history provider type: %s", key)
	}

	return nil
}
