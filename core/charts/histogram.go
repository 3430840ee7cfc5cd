package charts

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultBins is the number of equal-width bins a Histogram uses when Bins is zero.
const DefaultBins = 20

// Histogram buckets Values into equal-width bins and marks the mean and median.
type Histogram struct {
	Title  string
	XLabel string
	YLabel string
	Values []float64
	Bins   int
	// Currency prefixes the legend values, e.g. "$".
	Currency string
}

// Binned returns the bin edges (len Bins+1) and the count in each bin.
// The last edge sits just above the maximum so the largest value is counted.
func (h Histogram) Binned() (dividers, counts []float64, err error) {
	if len(h.Values) == 0 {
		return nil, nil, ErrNoData
	}
	n := h.Bins
	if n <= 0 {
		n = DefaultBins
	}

	x := append([]float64(nil), h.Values...)
	sort.Float64s(x)
	lo, hi := x[0], x[len(x)-1]
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return nil, nil, fmt.Errorf("histogram values contain NaN")
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	dividers = make([]float64, n+1)
	floats.Span(dividers, lo, hi)
	dividers[n] = math.Nextafter(hi, math.Inf(1))

	counts = stat.Histogram(nil, dividers, x, nil)
	return dividers, counts, nil
}

func (h Histogram) Render(w io.Writer) error {
	dividers, counts, err := h.Binned()
	if err != nil {
		return err
	}
	data := stats.Float64Data(h.Values)
	mean, err := data.Mean()
	if err != nil {
		return fmt.Errorf("error computing mean: %w", err)
	}
	median, err := data.Median()
	if err != nil {
		return fmt.Errorf("error computing median: %w", err)
	}
	peak, err := stats.Max(counts)
	if err != nil {
		return fmt.Errorf("error computing bin maximum: %w", err)
	}

	c := newCanvas(h.Title)
	g := newPlotGrid(c, 14, 12)
	top, step := niceMax(peak)
	g.MinX, g.MaxX = dividers[0], dividers[len(dividers)-1]
	g.MinY, g.MaxY = 0, top

	g.HGridlines(step, FormatCount)
	h.xTicks(c, g)

	c.SetLineWidth(0.3)
	c.setDraw(orange)
	for i, n := range counts {
		c.setFill(viridis(float64(i) / float64(len(counts))))
		g.Rect(dividers[i], 0, dividers[i+1], n, "FD")
	}

	c.SetLineWidth(0.6)
	c.dashedLine(2)
	c.setDraw(meanRed)
	g.Line(mean, 0, mean, top)
	c.setDraw(medianBlu)
	g.Line(median, 0, median, top)
	c.solidLine()

	g.Axes(h.XLabel, h.YLabel)
	h.legend(c, g, mean, median)
	return c.finish(w)
}

func (h Histogram) xTicks(c *canvas, g *plotGrid) {
	step := niceStep(g.MaxX-g.MinX, 8)
	c.SetFont(fontFam, "", 8)
	c.setText(axisGray)
	c.SetLineWidth(0.2)
	c.setDraw(axisGray)
	for x := math.Ceil(g.MinX/step) * step; x <= g.MaxX; x += step {
		u := g.U(x)
		c.Line(u, g.OffsetV+g.H, u, g.OffsetV+g.H+1.5)
		c.centeredText(u, g.OffsetV+g.H+5, tickLabel(h.Currency, x, step))
	}
}

func (h Histogram) legend(c *canvas, g *plotGrid, mean, median float64) {
	entries := []struct {
		col   rgbColor
		label string
	}{
		{meanRed, printer.Sprintf("Mean: %s%.0f", h.Currency, mean)},
		{medianBlu, printer.Sprintf("Median: %s%.0f", h.Currency, median)},
	}

	const boxW, rowH = 46.0, 6.0
	x := g.OffsetU + g.W - boxW - 2
	y := g.OffsetV + 2
	c.SetLineWidth(0.2)
	c.setDraw(gridGray)
	c.SetFillColor(255, 255, 255)
	c.Rect(x, y, boxW, rowH*float64(len(entries))+2, "FD")

	c.SetFont(fontFam, "", 9)
	c.setText(black)
	for i, e := range entries {
		ly := y + 1 + rowH*float64(i) + rowH/2
		c.SetLineWidth(0.6)
		c.setDraw(e.col)
		c.dashedLine(1.5)
		c.Line(x+2, ly, x+12, ly)
		c.solidLine()
		c.Text(x+14, ly+1.2, c.tr(e.label))
	}
}
