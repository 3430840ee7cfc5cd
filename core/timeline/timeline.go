package timeline

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"slices"
	"time"

	"github.com/fbz-tec/skytrack/core/charts"
	"github.com/fbz-tec/skytrack/core/dataset"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Column names the timeline query must return.
const (
	ColAirline = "airline"
	ColStatus  = "flight_status"
	ColMonth   = "month"
	ColCount   = "flight_count"
)

// YHeadroom is added above the busiest point so the largest marker is not clipped.
const YHeadroom = 5

//go:embed timeline.html.tmpl
var pageTemplate string

var tpl = template.Must(template.New("timeline").Funcs(template.FuncMap{
	"title": cases.Title(language.English).String,
}).Parse(pageTemplate))

// Point is one airline/status pair within a month.
type Point struct {
	Airline string
	Status  string
	Count   float64
}

// Frame is every point of one month.
type Frame struct {
	Month  string
	Points []Point
}

// Timeline is an animated scatter of flight counts per airline, one frame per month.
type Timeline struct {
	Title    string
	Frames   []Frame
	Airlines []string
	Statuses []string
	MaxCount float64
}

// Build groups the rows of rs into monthly frames, oldest month first.
// Months must be formatted YYYY-MM.
func Build(title string, rs *dataset.ResultSet) (*Timeline, error) {
	if rs.Empty() {
		return nil, charts.ErrNoData
	}
	airlines, err := rs.Strings(ColAirline)
	if err != nil {
		return nil, err
	}
	statuses, err := rs.Strings(ColStatus)
	if err != nil {
		return nil, err
	}
	months, err := rs.Strings(ColMonth)
	if err != nil {
		return nil, err
	}
	counts, err := rs.Column(ColCount)
	if err != nil {
		return nil, err
	}

	t := &Timeline{Title: title}
	byMonth := map[string]*Frame{}
	for i := range months {
		if _, err := time.Parse("2006-01", months[i]); err != nil {
			return nil, fmt.Errorf("row %d: invalid month %q", i+1, months[i])
		}
		n, ok := dataset.AsFloat(counts[i])
		if !ok {
			return nil, fmt.Errorf("row %d: flight count %v is not a number", i+1, counts[i])
		}

		f, found := byMonth[months[i]]
		if !found {
			f = &Frame{Month: months[i]}
			byMonth[months[i]] = f
		}
		f.Points = append(f.Points, Point{Airline: airlines[i], Status: statuses[i], Count: n})

		if !slices.Contains(t.Airlines, airlines[i]) {
			t.Airlines = append(t.Airlines, airlines[i])
		}
		if !slices.Contains(t.Statuses, statuses[i]) {
			t.Statuses = append(t.Statuses, statuses[i])
		}
		t.MaxCount = math.Max(t.MaxCount, n)
	}

	for _, f := range byMonth {
		t.Frames = append(t.Frames, *f)
	}
	slices.SortFunc(t.Frames, func(a, b Frame) int {
		switch {
		case a.Month < b.Month:
			return -1
		case a.Month > b.Month:
			return 1
		}
		return 0
	})
	slices.Sort(t.Airlines)
	slices.Sort(t.Statuses)
	return t, nil
}

// Months lists the frame keys in display order.
func (t *Timeline) Months() []string {
	out := make([]string, len(t.Frames))
	for i, f := range t.Frames {
		out[i] = f.Month
	}
	return out
}

// YRange is the fixed vertical axis shared by every frame.
func (t *Timeline) YRange() (float64, float64) {
	return 0, t.MaxCount + YHeadroom
}

// Render writes a standalone HTML page with the animated chart.
func (t *Timeline) Render(w io.Writer) error {
	if len(t.Frames) == 0 {
		return charts.ErrNoData
	}
	if err := tpl.Execute(w, t.layout()); err != nil {
		return fmt.Errorf("error executing timeline template: %w", err)
	}
	return nil
}
