package timeline

import (
	"math"

	"github.com/fbz-tec/skytrack/core/charts"
)

const (
	width      = 1200
	height     = 700
	padLeft    = 80
	padRight   = 200
	padTop     = 70
	padBottom  = 170
	maxRadius  = 24.0
	minRadius  = 3.0
	yTickCount = 6
)

var statusColors = []string{"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A", "#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52"}

type tick struct {
	Pos   float64
	Label string
}

type legendItem struct {
	Y      float64
	Color  string
	Status string
}

type marker struct {
	X, Y, R float64
	Color   string
	Tooltip string
}

type frameView struct {
	Month   string
	Markers []marker
}

type view struct {
	Title         string
	Width, Height int
	Left, Top     float64
	Right, Bottom float64
	XTicks        []tick
	YTicks        []tick
	Legend        []legendItem
	Frames        []frameView
	Last          int
}

// layout converts data coordinates to SVG pixels for the template.
func (t *Timeline) layout() view {
	v := view{
		Title:  t.Title,
		Width:  width,
		Height: height,
		Left:   padLeft,
		Top:    padTop,
		Right:  width - padRight,
		Bottom: height - padBottom,
		Last:   len(t.Frames) - 1,
	}

	slot := (v.Right - v.Left) / float64(len(t.Airlines))
	xOf := make(map[string]float64, len(t.Airlines))
	for i, a := range t.Airlines {
		x := v.Left + slot*(float64(i)+0.5)
		xOf[a] = x
		v.XTicks = append(v.XTicks, tick{Pos: x, Label: charts.TruncateLabel(a, 30)})
	}

	ymin, ymax := t.YRange()
	yOf := func(n float64) float64 {
		return v.Bottom - (n-ymin)/(ymax-ymin)*(v.Bottom-v.Top)
	}
	step := math.Max(1, math.Ceil(ymax/yTickCount))
	for n := ymin; n <= ymax; n += step {
		v.YTicks = append(v.YTicks, tick{Pos: yOf(n), Label: charts.FormatCount(n)})
	}

	colorOf := make(map[string]string, len(t.Statuses))
	for i, s := range t.Statuses {
		colorOf[s] = statusColors[i%len(statusColors)]
		v.Legend = append(v.Legend, legendItem{Y: v.Top + 24 + float64(i)*22, Color: colorOf[s], Status: s})
	}

	for _, f := range t.Frames {
		fv := frameView{Month: f.Month}
		for _, p := range f.Points {
			fv.Markers = append(fv.Markers, marker{
				X:       xOf[p.Airline],
				Y:       yOf(p.Count),
				R:       radius(p.Count, t.MaxCount),
				Color:   colorOf[p.Status],
				Tooltip: p.Airline + " / " + p.Status + ": " + charts.FormatCount(p.Count),
			})
		}
		v.Frames = append(v.Frames, fv)
	}
	return v
}

// radius scales marker area with the count.
func radius(count, max float64) float64 {
	if max <= 0 || count <= 0 {
		return minRadius
	}
	return math.Max(minRadius, maxRadius*math.Sqrt(count/max))
}
