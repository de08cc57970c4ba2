package indicator

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"os"
	"slices"

	"github.com/pplcc/plotext"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	rsiOverbought = 70
	rsiOversold   = 30
)

// Snapshot renders indicator panels stacked into a single PNG, with the
// time axes of all panels aligned.
type Snapshot struct {
	plots   []*plot.Plot
	heights []float64
	w       int
	h       int
}

func NewSnapshot(w, h int) *Snapshot {
	return &Snapshot{w: w, h: h}
}

func (s *Snapshot) Add(p *plot.Plot, height float64) {
	s.plots = append(s.plots, p)
	s.heights = append(s.heights, height)
}

// Render builds the three standard panels for a series: close price with
// the fast/slow EMA pair, RSI with its overbought/oversold bands, and MACD
// with the signal line and smoothed momentum curve.
func Render(title string, s Series, w, h int) (*Snapshot, error) {
	snap := NewSnapshot(w, h)

	price := plot.New()
	price.Title.Text = title
	price.Y.Label.Text = "Close"
	price.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	if err := addLines(price, s, map[string][]float64{
		"Close":  s.Close,
		"EMA 10": s.EMAFast,
		"EMA 30": s.EMASlow,
	}); err != nil {
		return nil, err
	}
	snap.Add(price, 2)

	rsi := plot.New()
	rsi.Y.Label.Text = "RSI"
	rsi.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	bands := make(map[string][]float64, 3)
	bands["RSI"] = s.RSI
	bands["Overbought"] = constSeries(rsiOverbought, len(s.Times))
	bands["Oversold"] = constSeries(rsiOversold, len(s.Times))
	if err := addLines(rsi, s, bands); err != nil {
		return nil, err
	}
	snap.Add(rsi, 1)

	macd := plot.New()
	macd.Y.Label.Text = "MACD"
	macd.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	if err := addLines(macd, s, map[string][]float64{
		"MACD":     s.MACD.MACD,
		"Signal":   s.MACD.Signal,
		"Momentum": s.MACD.Momentum,
	}); err != nil {
		return nil, err
	}
	snap.Add(macd, 1)

	return snap, nil
}

func (s *Snapshot) Save(path string) (err error) {
	var axis []*plot.Axis
	for _, p := range s.plots {
		axis = append(axis, &p.X)
	}
	plotext.UniteAxisRanges(axis)

	tbl := plotext.Table{
		RowHeights: s.heights,
		ColWidths:  []float64{1},
	}

	var plots2d [][]*plot.Plot
	for _, p := range s.plots {
		plots2d = append(plots2d, []*plot.Plot{p})
	}

	h := 0.0
	for _, v := range s.heights {
		h += v * float64(s.h)
	}

	img := vgimg.New(vg.Points(float64(s.w)), vg.Points(h))
	dc := draw.New(img)

	canvases := tbl.Align(plots2d, dc)
	for i, p := range s.plots {
		p.Draw(canvases[i][0])
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close snapshot file: %w", cerr))
		}
	}()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

func addLines(p *plot.Plot, s Series, lines map[string][]float64) error {
	for _, name := range sortedKeys(lines) {
		pts := timePoints(s, lines[name])
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("failed to create %s line: %w", name, err)
		}

		p.Add(l)
		p.Legend.Add(name, l)
	}

	return nil
}

// timePoints drops NaN positions so rolling-window warmups do not break
// the drawn path.
func timePoints(s Series, vals []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}

		pts = append(pts, plotter.XY{X: float64(s.Times[i].Unix()), Y: v})
	}

	return pts
}

func sortedKeys(m map[string][]float64) []string {
	return slices.Sorted(maps.Keys(m))
}

func constSeries(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}
