package market

import "sort"

// Dataset holds everything loaded for one country selection. It is built
// once per selection and treated as read-only afterwards.
type Dataset struct {
	Country       string
	Instruments   []Instrument
	Transactions  []Transaction
	ProfitHistory []ProfitPoint

	byTicker map[string]int
}

func NewDataset(country string, instruments []Instrument, transactions []Transaction, history []ProfitPoint) *Dataset {
	byTicker := make(map[string]int, len(instruments))
	for i, inst := range instruments {
		byTicker[inst.Ticker] = i
	}

	return &Dataset{
		Country:       country,
		Instruments:   instruments,
		Transactions:  transactions,
		ProfitHistory: history,
		byTicker:      byTicker,
	}
}

func (d *Dataset) Instrument(ticker string) (Instrument, bool) {
	i, ok := d.byTicker[ticker]
	if !ok {
		return Instrument{}, false
	}

	return d.Instruments[i], true
}

// TransactionsFor returns the ledger rows for one ticker in file order,
// which the batch job keeps ascending by date.
func (d *Dataset) TransactionsFor(ticker string) []Transaction {
	var txs []Transaction
	for _, t := range d.Transactions {
		if t.Ticker == ticker {
			txs = append(txs, t)
		}
	}

	return txs
}

func (d *Dataset) CompanyName(ticker string) (string, bool) {
	inst, ok := d.Instrument(ticker)
	if !ok || inst.Name == "" {
		return "", false
	}

	return inst.Name, true
}

// Sectors returns the distinct non-empty sector names in sorted order.
func (d *Dataset) Sectors() []string {
	seen := make(map[string]struct{})
	var sectors []string
	for _, inst := range d.Instruments {
		if inst.Sector == "" {
			continue
		}
		if _, ok := seen[inst.Sector]; ok {
			continue
		}

		seen[inst.Sector] = struct{}{}
		sectors = append(sectors, inst.Sector)
	}

	sort.Strings(sectors)
	return sectors
}
