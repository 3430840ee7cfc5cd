package charts

import "math"

// plotGrid maps data coordinates (x, y) onto a rectangle of the page (u, v).
// The origin is bottom-left; v grows downwards as in PDF space.
type plotGrid struct {
	c *canvas

	OffsetU, OffsetV float64 // top-left corner of the plot area
	W, H             float64

	MinX, MaxX, MinY, MaxY float64
}

// newPlotGrid reserves the page area below the title, leaving room for axis labels.
func newPlotGrid(c *canvas, leftPad, bottomPad float64) *plotGrid {
	top := margin + titleH
	return &plotGrid{
		c:       c,
		OffsetU: margin + leftPad,
		OffsetV: top,
		W:       pageW - 2*margin - leftPad,
		H:       pageH - top - margin - bottomPad,
		MaxX:    1,
		MaxY:    1,
	}
}

func (g *plotGrid) U(x float64) float64 {
	return g.OffsetU + (x-g.MinX)/(g.MaxX-g.MinX)*g.W
}

func (g *plotGrid) V(y float64) float64 {
	return g.OffsetV + g.H - (y-g.MinY)/(g.MaxY-g.MinY)*g.H
}

func (g *plotGrid) UV(x, y float64) (float64, float64) {
	return g.U(x), g.V(y)
}

// Line draws a segment between two data points.
func (g *plotGrid) Line(x1, y1, x2, y2 float64) {
	u1, v1 := g.UV(x1, y1)
	u2, v2 := g.UV(x2, y2)
	g.c.Line(u1, v1, u2, v2)
}

// Rect fills the box spanning two data corners.
func (g *plotGrid) Rect(x1, y1, x2, y2 float64, style string) {
	u1, v1 := g.UV(x1, y1)
	u2, v2 := g.UV(x2, y2)
	g.c.Rect(math.Min(u1, u2), math.Min(v1, v2), math.Abs(u2-u1), math.Abs(v2-v1), style)
}

// HGridlines draws horizontal gridlines and left-hand tick labels every step.
func (g *plotGrid) HGridlines(step float64, label func(float64) string) {
	g.c.SetFont(fontFam, "", 8)
	g.c.SetLineWidth(0.1)
	g.c.setDraw(gridGray)
	g.c.setText(axisGray)
	for y := g.MinY; y <= g.MaxY+step/1000; y += step {
		g.Line(g.MinX, y, g.MaxX, y)
		s := g.c.tr(label(y))
		g.c.Text(g.OffsetU-2-g.c.GetStringWidth(s), g.V(y)+1, s)
	}
}

// VGridlines draws vertical gridlines and tick labels under the axis every step.
func (g *plotGrid) VGridlines(step float64, label func(float64) string) {
	g.c.SetFont(fontFam, "", 8)
	g.c.SetLineWidth(0.1)
	g.c.setDraw(gridGray)
	g.c.setText(axisGray)
	for x := g.MinX; x <= g.MaxX+step/1000; x += step {
		g.Line(x, g.MinY, x, g.MaxY)
		g.c.centeredText(g.U(x), g.OffsetV+g.H+5, label(x))
	}
}

// Axes draws the frame and the axis titles.
func (g *plotGrid) Axes(xTitle, yTitle string) {
	g.c.SetLineWidth(0.3)
	g.c.setDraw(axisGray)
	g.c.Line(g.OffsetU, g.OffsetV+g.H, g.OffsetU+g.W, g.OffsetV+g.H)
	g.c.Line(g.OffsetU, g.OffsetV, g.OffsetU, g.OffsetV+g.H)

	g.c.SetFont(fontFam, "B", 10)
	g.c.setText(black)
	if xTitle != "" {
		g.c.centeredText(g.OffsetU+g.W/2, pageH-margin+6, xTitle)
	}
	if yTitle != "" {
		s := g.c.tr(yTitle)
		x := margin - 6
		y := g.OffsetV + g.H/2 + g.c.GetStringWidth(s)/2
		g.c.TransformBegin()
		g.c.TransformRotate(90, x, y)
		g.c.Text(x, y, s)
		g.c.TransformEnd()
	}
}
