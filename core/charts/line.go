package charts

import (
	"fmt"
	"io"
)

// LineChart connects one point per category, left to right, and annotates each with its value.
type LineChart struct {
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Values []float64
}

func (l LineChart) Render(w io.Writer) error {
	if len(l.Values) == 0 {
		return ErrNoData
	}
	if len(l.Labels) != len(l.Values) {
		return fmt.Errorf("line chart has %d labels for %d values", len(l.Labels), len(l.Values))
	}

	var peak float64
	for _, v := range l.Values {
		if v > peak {
			peak = v
		}
	}

	c := newCanvas(l.Title)
	g := newPlotGrid(c, 14, 30)
	top, step := niceMax(peak)
	g.MinX, g.MaxX = -0.5, float64(len(l.Values))-0.5
	g.MinY, g.MaxY = 0, top

	g.HGridlines(step, FormatCount)
	c.SetFont(fontFam, "", 8)
	c.setText(axisGray)
	for i, label := range l.Labels {
		x := float64(i)
		c.SetLineWidth(0.1)
		c.setDraw(gridGray)
		g.Line(x, g.MinY, x, g.MaxY)
		c.rotatedText(g.U(x), g.OffsetV+g.H+4, 45, TruncateLabel(label, MaxBarLabel))
	}

	c.SetLineWidth(1.0)
	c.setDraw(green)
	for i := 1; i < len(l.Values); i++ {
		g.Line(float64(i-1), l.Values[i-1], float64(i), l.Values[i])
	}

	c.SetLineWidth(0.6)
	c.setDraw(darkGrn)
	c.setFill(lightGrn)
	c.SetFont(fontFam, "B", 10)
	c.setText(black)
	for i, v := range l.Values {
		u, vv := g.UV(float64(i), v)
		c.Circle(u, vv, 1.6, "FD")
		c.centeredText(u, vv-4, FormatCount(v))
	}

	g.Axes(l.XLabel, l.YLabel)
	return c.finish(w)
}
