package runlog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fbz-tec/skytrack/core/dataset"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleSummary() *Summary {
	s := NewSummary("sqlite:snapshot.db")
	s.Record(UnitResult{Name: "pie_chart_airlines", Kind: KindChart, Status: StatusOK, Artifact: "charts/pie_chart_airlines.pdf", Rows: 8, Duration: 120 * time.Millisecond})
	s.Record(UnitResult{Name: "histogram_ticket_prices", Kind: KindChart, Status: StatusSkipped, Message: "no rows"})
	s.Record(UnitResult{Name: "excel_export", Kind: KindExport, Status: StatusFailed, Message: "sheet Booking_Summary | bad"})

	tables := dataset.New("tables", "table_name")
	tables.Append("airline")
	tables.Append("flights")
	s.Overview = append(s.Overview, tables)
	s.Finish()
	return s
}

func TestSummaryCounts(t *testing.T) {
	s := sampleSummary()

	_, err := uuid.Parse(s.RunID)
	require.NoError(t, err)

	counts := s.Counts()
	assert.Equal(t, 1, counts[StatusOK])
	assert.Equal(t, 1, counts[StatusSkipped])
	assert.Equal(t, 1, counts[StatusFailed])
	assert.True(t, s.Failed())
	assert.Equal(t, []string{"charts/pie_chart_airlines.pdf"}, s.Artifacts())
	assert.GreaterOrEqual(t, s.Duration(), time.Duration(0))

	u, ok := s.Unit("histogram_ticket_prices")
	require.True(t, ok)
	assert.Equal(t, StatusSkipped, u.Status)

	_, ok = s.Unit("missing")
	assert.False(t, ok)
}

func TestSummaryNotFailed(t *testing.T) {
	s := NewSummary("")
	s.Record(UnitResult{Name: "a", Status: StatusOK})
	s.Record(UnitResult{Name: "b", Status: StatusSkipped})
	assert.False(t, s.Failed())
	assert.Zero(t, s.Duration())
}

func TestWriteYAML(t *testing.T) {
	s := sampleSummary()

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, s))

	var decoded Summary
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, s.RunID, decoded.RunID)
	require.Len(t, decoded.Units, 3)
	assert.Equal(t, StatusFailed, decoded.Units[2].Status)
	assert.Equal(t, 120*time.Millisecond, decoded.Units[0].Duration)
	require.Len(t, decoded.Overview, 1)
	assert.Equal(t, "tables", decoded.Overview[0].Name)
	assert.Len(t, decoded.Overview[0].Rows, 2)

	assert.Contains(t, buf.String(), "status: skipped")
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleSummary()))
	out := buf.String()

	assert.Contains(t, out, "# SkyTrack Run Summary")
	assert.Contains(t, out, "```mermaid")
	assert.Contains(t, out, "pie_chart_airlines")
	assert.Contains(t, out, "failed")
	assert.Contains(t, out, "Booking_Summary")
	assert.Contains(t, out, "## Database Overview")
	assert.Contains(t, out, "flights")
}

func TestWriteMarkdownEmptyRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, NewSummary("")))
	assert.Contains(t, buf.String(), "No units were run.")
	assert.NotContains(t, buf.String(), "mermaid")
}

func TestSaveFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	paths, err := SaveFiles(sampleSummary(), dir)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, YAMLFile), filepath.Join(dir, MarkdownFile)}, paths)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
