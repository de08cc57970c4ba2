// Package screener filters the instrument table by the advanced-filter
// criteria: sector/industry sets and numeric ranges.
package screener

import (
	"strconv"
	"strings"

	"github.com/gamma-omg/stockdash/internal/market"
)

type Range struct {
	Min float64
	Max float64
}

func (r Range) contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Filter holds the active criteria. Nil ranges and empty sets are not
// applied. Range filters on raw string fields (volume indicator, beta risk,
// last price) drop rows whose value does not parse as a number.
type Filter struct {
	Sectors    []string
	Industries []string
	Hold       *Range
	Trades     *Range
	Volume     *Range
	Beta       *Range
	LastPrice  *Range
}

func Apply(instruments []market.Instrument, f *Filter) []market.Instrument {
	if f == nil {
		return instruments
	}

	out := make([]market.Instrument, 0, len(instruments))
	for _, inst := range instruments {
		if f.matches(inst) {
			out = append(out, inst)
		}
	}

	return out
}

func (f *Filter) matches(inst market.Instrument) bool {
	if len(f.Sectors) > 0 && !contains(f.Sectors, inst.Sector) {
		return false
	}
	if len(f.Industries) > 0 && !contains(f.Industries, inst.Industry) {
		return false
	}
	if f.Hold != nil && !f.Hold.contains(inst.AvgHoldDays) {
		return false
	}
	if f.Trades != nil && !f.Trades.contains(float64(inst.NumTrades)) {
		return false
	}
	if !matchesRaw(f.Volume, inst.VolumeIndicator) {
		return false
	}
	if !matchesRaw(f.Beta, inst.BetaRisk) {
		return false
	}
	if !matchesRaw(f.LastPrice, inst.LastPrice) {
		return false
	}

	return true
}

func matchesRaw(r *Range, raw string) bool {
	if r == nil {
		return true
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return false
	}

	return r.contains(v)
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}

	return false
}
