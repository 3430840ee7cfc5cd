package runlog

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fbz-tec/skytrack/core/dataset"
	"github.com/fbz-tec/skytrack/core/output"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"gopkg.in/yaml.v3"
)

const (
	YAMLFile     = "run_summary.yaml"
	MarkdownFile = "run_summary.md"
)

// WriteYAML encodes the summary as a YAML document.
func WriteYAML(w io.Writer, s *Summary) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("error encoding run summary: %w", err)
	}
	return enc.Close()
}

// WriteMarkdown renders the summary as a Markdown document.
func WriteMarkdown(w io.Writer, s *Summary) error {
	md := markdown.NewMarkdown(w)

	md.H1("SkyTrack Run Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run ID", "`" + s.RunID + "`"},
			{"Source", cell(s.Source)},
			{"Started", s.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", s.Duration().Round(time.Millisecond).String()},
			{"Units", strconv.Itoa(len(s.Units))},
		},
	})
	md.PlainText("")

	writeStatus(md, s)
	writeUnits(md, s)
	writeOverview(md, s)

	if err := md.Build(); err != nil {
		return fmt.Errorf("error writing markdown summary: %w", err)
	}
	return nil
}

func writeStatus(md *markdown.Markdown, s *Summary) {
	counts := s.Counts()
	if len(s.Units) > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Unit Status"),
			piechart.WithShowData(true),
		)
		for _, st := range []Status{StatusOK, StatusSkipped, StatusFailed} {
			if counts[st] > 0 {
				chart.LabelAndIntValue(string(st), uint64(counts[st]))
			}
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	switch {
	case counts[StatusFailed] > 0:
		md.Cautionf("%d unit(s) failed. See the messages below.", counts[StatusFailed])
	case counts[StatusSkipped] > 0:
		md.Notef("%d unit(s) were skipped because their query returned no rows.", counts[StatusSkipped])
	default:
		md.Tip("All units completed.")
	}
	md.PlainText("")
}

func writeUnits(md *markdown.Markdown, s *Summary) {
	md.H2("Units")
	md.PlainText("")
	if len(s.Units) == 0 {
		md.PlainText("No units were run.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(s.Units))
	for _, u := range s.Units {
		rows = append(rows, []string{
			cell(u.Name),
			string(u.Kind),
			statusText(u.Status),
			strconv.Itoa(u.Rows),
			cell(filepath.ToSlash(u.Artifact)),
			u.Duration.Round(time.Millisecond).String(),
			cell(u.Message),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Unit", "Kind", "Status", "Rows", "Artifact", "Duration", "Message"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeOverview(md *markdown.Markdown, s *Summary) {
	if len(s.Overview) == 0 {
		return
	}
	md.H2("Database Overview")
	md.PlainText("")
	for _, rs := range s.Overview {
		md.H3(rs.Name)
		md.PlainText("")
		if rs.Empty() {
			md.PlainText("No rows.")
			md.PlainText("")
			continue
		}
		md.Table(resultTable(rs))
		md.PlainText("")
	}
}

func resultTable(rs *dataset.ResultSet) markdown.TableSet {
	rows := make([][]string, 0, rs.Len())
	for _, r := range rs.Rows {
		line := make([]string, len(rs.Columns))
		for i := range line {
			if i < len(r) {
				line[i] = cell(dataset.Text(r[i]))
			}
		}
		rows = append(rows, line)
	}
	return markdown.TableSet{Header: rs.Columns, Rows: rows}
}

func statusText(st Status) string {
	switch st {
	case StatusOK:
		return "✅ ok"
	case StatusSkipped:
		return "⏭️ skipped"
	case StatusFailed:
		return "❌ failed"
	}
	return string(st)
}

// cell keeps free text from breaking the table layout.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// SaveFiles writes run_summary.yaml and run_summary.md into dir and returns their paths.
func SaveFiles(s *Summary, dir string) ([]string, error) {
	var paths []string
	for _, f := range []struct {
		name  string
		write func(io.Writer, *Summary) error
	}{
		{YAMLFile, WriteYAML},
		{MarkdownFile, WriteMarkdown},
	} {
		w, err := output.CreateWriter(output.OutputConfig{Path: filepath.Join(dir, f.name), Compression: output.None})
		if err != nil {
			return paths, err
		}
		if err := f.write(w, s); err != nil {
			w.Close()
			return paths, err
		}
		if err := w.Close(); err != nil {
			return paths, fmt.Errorf("error closing %s: %w", f.name, err)
		}
		paths = append(paths, w.Path())
	}
	return paths, nil
}
