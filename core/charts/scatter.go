package charts

import (
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ScatterPlot draws (X[i], Y[i]) points with a least-squares trend line.
type ScatterPlot struct {
	Title  string
	XLabel string
	YLabel string
	X      []float64
	Y      []float64
}

// Fit is the least-squares line y = Intercept + Slope*x and Pearson's r.
// Line is false when X has no spread and no line exists.
type Fit struct {
	Intercept float64
	Slope     float64
	R         float64
	Line      bool
}

func (f Fit) At(x float64) float64 { return f.Intercept + f.Slope*x }

// Fit computes the trend line. R is left at zero when either axis has no variance.
func (s ScatterPlot) Fit() (Fit, error) {
	if len(s.X) == 0 {
		return Fit{}, ErrNoData
	}
	if len(s.X) != len(s.Y) {
		return Fit{}, fmt.Errorf("scatter plot has %d x values for %d y values", len(s.X), len(s.Y))
	}
	if floats.Max(s.X) == floats.Min(s.X) {
		return Fit{}, nil
	}
	alpha, beta := stat.LinearRegression(s.X, s.Y, nil, false)
	fit := Fit{Intercept: alpha, Slope: beta, Line: true}
	if floats.Max(s.Y) != floats.Min(s.Y) {
		r, err := stats.Correlation(s.X, s.Y)
		if err != nil {
			return Fit{}, fmt.Errorf("error computing correlation: %w", err)
		}
		fit.R = r
	}
	return fit, nil
}

func (s ScatterPlot) Render(w io.Writer) error {
	fit, err := s.Fit()
	if err != nil {
		return err
	}

	c := newCanvas(s.Title)
	g := newPlotGrid(c, 16, 12)

	xlo, xhi := floats.Min(s.X), floats.Max(s.X)
	xpad := (xhi - xlo) * 0.05
	if xpad == 0 {
		xpad = 1
	}
	g.MinX, g.MaxX = xlo-xpad, xhi+xpad
	top, ystep := niceMax(floats.Max(s.Y))
	g.MinY, g.MaxY = 0, top
	if lo := floats.Min(s.Y); lo < 0 {
		g.MinY = lo - ystep
	}

	g.HGridlines(ystep, FormatCount)
	xstep := niceStep(g.MaxX-g.MinX, 8)
	c.SetLineWidth(0.1)
	c.setDraw(gridGray)
	for x := float64(int(g.MinX/xstep)) * xstep; x <= g.MaxX; x += xstep {
		if x < g.MinX {
			continue
		}
		g.Line(x, g.MinY, x, g.MaxY)
		c.centeredText(g.U(x), g.OffsetV+g.H+5, tickLabel("", x, xstep))
	}

	c.SetAlpha(0.6, "Normal")
	c.SetLineWidth(0.3)
	c.setDraw(indigo)
	c.setFill(purple)
	for i := range s.X {
		u, v := g.UV(s.X[i], s.Y[i])
		c.Circle(u, v, 1.3, "FD")
	}
	c.SetAlpha(1, "Normal")

	if fit.Line {
		c.SetLineWidth(0.7)
		c.setDraw(trendRed)
		c.dashedLine(2)
		g.Line(xlo, clamp(fit.At(xlo), g.MinY, g.MaxY), xhi, clamp(fit.At(xhi), g.MinY, g.MaxY))
		c.solidLine()
	}

	c.SetFont(fontFam, "", 9)
	c.setText(black)
	c.Text(g.OffsetU+3, g.OffsetV+5, printer.Sprintf("r = %.3f", fit.R))

	g.Axes(s.XLabel, s.YLabel)
	return c.finish(w)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
