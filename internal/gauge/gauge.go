// Package gauge turns the raw volume-indicator and beta-risk fields into
// bounded dial values.
package gauge

import (
	"strconv"
	"strings"

	"github.com/gamma-omg/stockdash/internal/market"
)

const (
	VolumeMin = 0.0
	VolumeMax = 10.0
	BetaMin   = -5.0
	BetaMax   = 5.0

	unknownMarker = "UNKNOWN"
)

type Reading struct {
	Volume float64
	Beta   float64

	// Raw values as loaded, for display next to the dials.
	RawVolume string
	RawBeta   string
}

// Normalize coerces the raw fields and clamps them into gauge range.
// UNKNOWN (case-insensitive, trimmed) substitutes 0 for volume and -5 for
// beta before clamping; unparseable values coerce the same way.
func Normalize(rawVolume, rawBeta string) Reading {
	return Reading{
		Volume:    clamp(coerce(rawVolume, 0), VolumeMin, VolumeMax),
		Beta:      clamp(coerce(rawBeta, BetaMin), BetaMin, BetaMax),
		RawVolume: rawVolume,
		RawBeta:   rawBeta,
	}
}

// ForTicker resolves the gauge pair for one instrument. An absent ticker
// falls back to (0, 5); the fallback beta sits at the opposite end of the
// range from the UNKNOWN default, matching the batch pipeline's historical
// behavior.
func ForTicker(ds *market.Dataset, ticker string) Reading {
	inst, ok := ds.Instrument(ticker)
	if !ok {
		return Reading{Volume: 0, Beta: 5, RawVolume: unknownMarker, RawBeta: unknownMarker}
	}

	return Normalize(inst.VolumeIndicator, inst.BetaRisk)
}

func coerce(raw string, unknown float64) float64 {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, unknownMarker) {
		return unknown
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return unknown
	}

	return v
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
