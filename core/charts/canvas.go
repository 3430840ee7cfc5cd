package charts

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/fbz-tec/skytrack/core/output"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrNoData is returned when a chart is asked to render without any points.
var ErrNoData = errors.New("no data to plot")

// Chart is anything that renders itself as a single-page PDF.
type Chart interface {
	Render(w io.Writer) error
}

// Page geometry, in mm, for landscape Letter.
const (
	pageW   = 279.4
	pageH   = 215.9
	margin  = 18.0
	titleH  = 14.0
	fontFam = "Helvetica"
)

var (
	printer   = message.NewPrinter(language.English)
	titleCase = cases.Title(language.English)
)

// canvas is one chart page.
type canvas struct {
	*gofpdf.Fpdf
	tr func(string) string
}

func newCanvas(title string) *canvas {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("skytrack", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(margin, margin, margin)
	pdf.AddPage()

	c := &canvas{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	c.SetFont(fontFam, "B", 16)
	c.SetTextColor(0x20, 0x20, 0x20)
	c.SetXY(margin, margin-4)
	c.CellFormat(pageW-2*margin, titleH, c.tr(title), "", 0, "C", false, 0, "")
	return c
}

// finish writes the page and surfaces any error gofpdf accumulated while drawing.
func (c *canvas) finish(w io.Writer) error {
	if err := c.Error(); err != nil {
		return fmt.Errorf("error drawing chart: %w", err)
	}
	if err := c.Output(w); err != nil {
		return fmt.Errorf("error writing chart: %w", err)
	}
	return nil
}

// centeredText draws s centered on x with its baseline at y.
func (c *canvas) centeredText(x, y float64, s string) {
	s = c.tr(s)
	c.Text(x-c.GetStringWidth(s)/2, y, s)
}

// rotatedText draws s ending at (x, y), rotated by angle degrees counter-clockwise.
func (c *canvas) rotatedText(x, y, angle float64, s string) {
	s = c.tr(s)
	c.TransformBegin()
	c.TransformRotate(angle, x, y)
	c.Text(x-c.GetStringWidth(s), y, s)
	c.TransformEnd()
}

func (c *canvas) setFill(col rgbColor)  { c.SetFillColor(col.r, col.g, col.b) }
func (c *canvas) setDraw(col rgbColor)  { c.SetDrawColor(col.r, col.g, col.b) }
func (c *canvas) setText(col rgbColor)  { c.SetTextColor(col.r, col.g, col.b) }
func (c *canvas) solidLine()            { c.SetDashPattern([]float64{}, 0) }
func (c *canvas) dashedLine(on float64) { c.SetDashPattern([]float64{on, on}, 0) }

// SaveFile renders chart into a new file at path, creating parent directories.
func SaveFile(chart Chart, path string) (string, error) {
	w, err := output.CreateWriter(output.OutputConfig{Path: path, Compression: output.None})
	if err != nil {
		return "", err
	}
	if err := chart.Render(w); err != nil {
		w.Close()
		os.Remove(w.Path())
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("error closing chart file: %w", err)
	}
	return w.Path(), nil
}

// TruncateLabel shortens labels longer than max runes to max runes plus "...".
func TruncateLabel(label string, max int) string {
	r := []rune(label)
	if len(r) <= max {
		return label
	}
	return string(r[:max]) + "..."
}

// FormatCount renders an integer count with thousands separators.
func FormatCount(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}

// tickLabel prints x with as many decimals as the tick step needs.
func tickLabel(prefix string, x, step float64) string {
	decimals := int(math.Max(0, -math.Floor(math.Log10(step))))
	return printer.Sprintf("%s%.*f", prefix, decimals, x)
}

// StatusLabel title-cases a status value such as "on time" or "CANCELLED".
func StatusLabel(s string) string {
	return titleCase.String(s)
}

// niceStep returns a 1, 2 or 5 times power-of-ten step giving roughly n ticks over span.
func niceStep(span float64, n int) float64 {
	if span <= 0 || n < 1 {
		return 1
	}
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch f := raw / mag; {
	case f <= 1:
		return mag
	case f <= 2:
		return 2 * mag
	case f <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

// niceMax rounds v up to a multiple of the tick step, with headroom for labels.
func niceMax(v float64) (float64, float64) {
	if v <= 0 {
		return 1, 0.2
	}
	step := niceStep(v*1.1, 5)
	return math.Ceil(v*1.1/step) * step, step
}
