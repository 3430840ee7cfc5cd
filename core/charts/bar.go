package charts

import (
	"fmt"
	"io"

	"github.com/fbz-tec/skytrack/core/xlsxreport"
)

const (
	// MaxBarLabel is the longest category label drawn under a vertical bar.
	MaxBarLabel = 15
	maxRowLabel = 40
)

// BarChart draws one bar per label. Horizontal charts list the first label at the top.
type BarChart struct {
	Title      string
	XLabel     string
	YLabel     string
	Labels     []string
	Values     []float64
	Horizontal bool
	// HeatMap colors each bar on the report's red-yellow-green scale instead of a flat fill.
	HeatMap bool
}

func (b BarChart) check() error {
	if len(b.Values) == 0 {
		return ErrNoData
	}
	if len(b.Labels) != len(b.Values) {
		return fmt.Errorf("bar chart has %d labels for %d values", len(b.Labels), len(b.Values))
	}
	return nil
}

// fills resolves the fill color of every bar.
func (b BarChart) fills() ([]rgbColor, error) {
	out := make([]rgbColor, len(b.Values))
	base := skyBlue
	if b.Horizontal {
		base = coral
	}
	if !b.HeatMap {
		for i := range out {
			out[i] = base
		}
		return out, nil
	}
	scale := xlsxreport.DefaultColorScale()
	for i, v := range b.Values {
		hex, err := scale.ColorFor(b.Values, v)
		if err != nil {
			return nil, fmt.Errorf("error computing bar color: %w", err)
		}
		col, err := parseHexColor(hex)
		if err != nil {
			return nil, err
		}
		out[i] = col
	}
	return out, nil
}

func (b BarChart) Render(w io.Writer) error {
	if err := b.check(); err != nil {
		return err
	}
	fills, err := b.fills()
	if err != nil {
		return err
	}

	c := newCanvas(b.Title)
	if b.Horizontal {
		b.drawHorizontal(c, fills)
	} else {
		b.drawVertical(c, fills)
	}
	return c.finish(w)
}

func (b BarChart) maxValue() float64 {
	var m float64
	for _, v := range b.Values {
		if v > m {
			m = v
		}
	}
	return m
}

func (b BarChart) drawVertical(c *canvas, fills []rgbColor) {
	g := newPlotGrid(c, 14, 30)
	n := float64(len(b.Values))
	top, step := niceMax(b.maxValue())
	g.MinX, g.MaxX = 0, n
	g.MinY, g.MaxY = 0, top

	g.HGridlines(step, FormatCount)

	c.SetLineWidth(0.25)
	c.setDraw(navy)
	for i, v := range b.Values {
		x := float64(i)
		c.setFill(fills[i])
		g.Rect(x+0.15, 0, x+0.85, v, "FD")

		c.SetFont(fontFam, "B", 9)
		c.setText(black)
		c.centeredText(g.U(x+0.5), g.V(v)-1.5, FormatCount(v))

		c.SetFont(fontFam, "", 8)
		c.rotatedText(g.U(x+0.5), g.OffsetV+g.H+4, 45, TruncateLabel(b.Labels[i], MaxBarLabel))
	}
	g.Axes(b.XLabel, b.YLabel)
}

func (b BarChart) drawHorizontal(c *canvas, fills []rgbColor) {
	c.SetFont(fontFam, "", 8)
	labels := make([]string, len(b.Labels))
	pad := 10.0
	for i, l := range b.Labels {
		labels[i] = TruncateLabel(l, maxRowLabel)
		if w := c.GetStringWidth(c.tr(labels[i])) + 4; w > pad {
			pad = w
		}
	}

	g := newPlotGrid(c, pad+8, 8)
	n := float64(len(b.Values))
	right, step := niceMax(b.maxValue())
	g.MinX, g.MaxX = 0, right
	g.MinY, g.MaxY = 0, n

	g.VGridlines(step, FormatCount)

	c.SetLineWidth(0.25)
	c.setDraw(darkRed)
	for i, v := range b.Values {
		y := n - float64(i) - 1
		c.setFill(fills[i])
		g.Rect(0, y+0.15, v, y+0.85, "FD")

		c.SetFont(fontFam, "B", 8)
		c.setText(black)
		c.Text(g.U(v)+1.5, g.V(y+0.5)+1, FormatCount(v))

		c.SetFont(fontFam, "", 8)
		s := c.tr(labels[i])
		c.Text(g.OffsetU-2-c.GetStringWidth(s), g.V(y+0.5)+1, s)
	}
	g.Axes(b.XLabel, b.YLabel)
}
