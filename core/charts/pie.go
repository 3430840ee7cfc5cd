package charts

import (
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"
)

// PieChart draws one wedge per label, starting at 12 o'clock and running counter-clockwise.
type PieChart struct {
	Title  string
	Labels []string
	Values []float64
}

// Shares returns each value as a percentage of the total.
func (p PieChart) Shares() ([]float64, error) {
	if len(p.Values) == 0 {
		return nil, ErrNoData
	}
	if len(p.Labels) != len(p.Values) {
		return nil, fmt.Errorf("pie chart has %d labels for %d values", len(p.Labels), len(p.Values))
	}
	var total float64
	for _, v := range p.Values {
		if v < 0 {
			return nil, fmt.Errorf("pie chart value %v is negative", v)
		}
		total += v
	}
	if total == 0 {
		return nil, fmt.Errorf("pie chart values sum to zero")
	}
	shares := make([]float64, len(p.Values))
	for i, v := range p.Values {
		shares[i] = v / total * 100
	}
	return shares, nil
}

func (p PieChart) Render(w io.Writer) error {
	shares, err := p.Shares()
	if err != nil {
		return err
	}

	c := newCanvas(p.Title)
	cx, cy := pageW/2, margin+titleH+(pageH-margin-titleH-margin)/2
	r := (pageH - 2*margin - titleH) / 2 * 0.8

	c.SetLineWidth(0.4)
	c.SetDrawColor(255, 255, 255)

	start := 90.0
	for i, share := range shares {
		sweep := share / 100 * 360
		col := mustHex(PiePalette[i%len(PiePalette)])
		c.setFill(col)
		c.Polygon(wedge(cx, cy, r, start, sweep), "FD")

		mid := (start + sweep/2) * math.Pi / 180
		c.SetFont(fontFam, "B", 9)
		c.setText(black)
		c.centeredText(cx+0.6*r*math.Cos(mid), cy-0.6*r*math.Sin(mid)+1.5, fmt.Sprintf("%.1f%%", share))

		c.SetFont(fontFam, "", 10)
		lx, ly := cx+1.12*r*math.Cos(mid), cy-1.12*r*math.Sin(mid)+1.5
		label := c.tr(p.Labels[i])
		if math.Cos(mid) < 0 {
			lx -= c.GetStringWidth(label)
		}
		c.Text(lx, ly, label)

		start += sweep
	}
	return c.finish(w)
}

// wedge approximates a circular sector with one vertex per degree.
func wedge(cx, cy, r, startDeg, sweepDeg float64) []gofpdf.PointType {
	steps := int(math.Ceil(sweepDeg))
	if steps < 1 {
		steps = 1
	}
	pts := make([]gofpdf.PointType, 0, steps+2)
	pts = append(pts, gofpdf.PointType{X: cx, Y: cy})
	for i := 0; i <= steps; i++ {
		a := (startDeg + sweepDeg*float64(i)/float64(steps)) * math.Pi / 180
		pts = append(pts, gofpdf.PointType{X: cx + r*math.Cos(a), Y: cy - r*math.Sin(a)})
	}
	return pts
}
