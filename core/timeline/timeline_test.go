package timeline

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/fbz-tec/skytrack/core/charts"
	"github.com/fbz-tec/skytrack/core/dataset"
)

func sampleRows() *dataset.ResultSet {
	rs := dataset.New("timeline", ColAirline, ColStatus, ColMonth, ColCount)
	rs.Append("Nordic Air", "on time", "2024-03", int64(4))
	rs.Append("Aero", "delayed", "2024-01", int64(2))
	rs.Append("Aero", "on time", "2024-01", int64(7))
	rs.Append("Nordic Air", "cancelled", "2023-12", int64(1))
	rs.Append("Aero", "on time", "2024-03", int64(12))
	return rs
}

func TestBuildOrdersFramesByMonth(t *testing.T) {
	tl, err := Build("Flights", sampleRows())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if got, want := tl.Months(), []string{"2023-12", "2024-01", "2024-03"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Months() = %v, want %v", got, want)
	}
	if got, want := tl.Airlines, []string{"Aero", "Nordic Air"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Airlines = %v, want %v", got, want)
	}
	if got, want := tl.Statuses, []string{"cancelled", "delayed", "on time"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Statuses = %v, want %v", got, want)
	}
	if n := len(tl.Frames[1].Points); n != 2 {
		t.Errorf("2024-01 has %d points, want 2", n)
	}
}

func TestYRange(t *testing.T) {
	tl, err := Build("Flights", sampleRows())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	lo, hi := tl.YRange()
	if lo != 0 || hi != 17 {
		t.Errorf("YRange() = [%v, %v], want [0, 17]", lo, hi)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		rs   func() *dataset.ResultSet
	}{
		{"missing column", func() *dataset.ResultSet {
			rs := dataset.New("t", ColAirline, ColMonth, ColCount)
			rs.Append("Aero", "2024-01", int64(1))
			return rs
		}},
		{"bad month", func() *dataset.ResultSet {
			rs := dataset.New("t", ColAirline, ColStatus, ColMonth, ColCount)
			rs.Append("Aero", "on time", "January", int64(1))
			return rs
		}},
		{"non-numeric count", func() *dataset.ResultSet {
			rs := dataset.New("t", ColAirline, ColStatus, ColMonth, ColCount)
			rs.Append("Aero", "on time", "2024-01", "many")
			return rs
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build("t", tt.rs()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build("t", dataset.New("t", ColAirline, ColStatus, ColMonth, ColCount))
	if !errors.Is(err, charts.ErrNoData) {
		t.Errorf("Build() error = %v, want ErrNoData", err)
	}
}

func TestRender(t *testing.T) {
	tl, err := Build("Flight Count <Evolution>", sampleRows())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var buf bytes.Buffer
	if err := tl.Render(&buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	page := buf.String()

	for _, want := range []string{
		"<svg",
		`type="range"`,
		`max="2"`,
		`data-month="2023-12"`,
		`data-month="2024-03"`,
		"On Time",
		"Flight Count &lt;Evolution&gt;",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("rendered page does not contain %q", want)
		}
	}
	if n := strings.Count(page, `<g class="frame`); n != 3 {
		t.Errorf("page has %d frames, want 3", n)
	}
	if n := strings.Count(page, "frame active"); n != 1 {
		t.Errorf("page has %d active frames, want 1", n)
	}
	if strings.Contains(page, "<Evolution>") {
		t.Error("title was not escaped")
	}
}

func TestRadiusScalesWithCount(t *testing.T) {
	small := radius(1, 100)
	big := radius(100, 100)
	if big != maxRadius {
		t.Errorf("radius(max) = %v, want %v", big, maxRadius)
	}
	if small >= big || small < minRadius {
		t.Errorf("radius(1) = %v, want within [%v, %v)", small, minRadius, big)
	}
	if got := radius(25, 100); got != maxRadius/2 {
		t.Errorf("radius(25) = %v, want %v", got, maxRadius/2)
	}
}

func TestSaveAsChart(t *testing.T) {
	tl, err := Build("Flights", sampleRows())
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	path := t.TempDir() + "/charts/interactive_timeline.html"
	got, err := charts.SaveFile(tl, path)
	if err != nil {
		t.Fatalf("SaveFile() error = %v", err)
	}
	if got != path {
		t.Errorf("SaveFile() = %q, want %q", got, path)
	}
}
