package xlsxreport

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/fbz-tec/skytrack/core/dataset"
	"github.com/fbz-tec/skytrack/core/output"
	"github.com/fbz-tec/skytrack/core/validation"
	"github.com/fbz-tec/skytrack/internal/logger"
	"github.com/xuri/excelize/v2"
)

const (
	DefaultHeaderColor     = "4472C4"
	DefaultHeaderFontColor = "FFFFFF"

	defaultSheet = "Sheet1"
	frozenCell   = "B2"
)

// Options controls the presentation applied to every sheet.
type Options struct {
	SampleSize      int
	HeaderColor     string
	HeaderFontColor string
	Scale           ColorScale
	Compression     string
}

// DefaultOptions returns the report defaults.
func DefaultOptions() Options {
	return Options{
		SampleSize:      DefaultSampleSize,
		HeaderColor:     DefaultHeaderColor,
		HeaderFontColor: DefaultHeaderFontColor,
		Scale:           DefaultColorScale(),
		Compression:     output.None,
	}
}

// SheetResult describes what was written to one sheet.
type SheetResult struct {
	Name           string
	Rows           int
	Columns        int
	AutoFilter     string
	NumericColumns []string
	ColorScales    []string
	Err            error
}

// Result describes a saved workbook.
type Result struct {
	Path   string
	Sheets []SheetResult
}

// Rows returns the number of data rows across sheets that were written.
func (r *Result) Rows() int {
	total := 0
	for _, s := range r.Sheets {
		if s.Err == nil {
			total += s.Rows
		}
	}
	return total
}

// Formatter writes an ExportJob to a styled workbook.
type Formatter struct {
	opts Options
}

// New returns a Formatter. Zero-valued options fall back to the defaults.
func New(opts Options) (*Formatter, error) {
	def := DefaultOptions()
	if opts.SampleSize == 0 {
		opts.SampleSize = def.SampleSize
	}
	if opts.HeaderColor == "" {
		opts.HeaderColor = def.HeaderColor
	}
	if opts.HeaderFontColor == "" {
		opts.HeaderFontColor = def.HeaderFontColor
	}
	if opts.Scale == (ColorScale{}) {
		opts.Scale = def.Scale
	}
	if opts.SampleSize < 1 {
		return nil, fmt.Errorf("sample size must be at least 1, got %d", opts.SampleSize)
	}
	for _, c := range []string{opts.HeaderColor, opts.HeaderFontColor} {
		if _, err := parseHex(c); err != nil {
			return nil, fmt.Errorf("header color: %w", err)
		}
	}
	if err := opts.Scale.Validate(); err != nil {
		return nil, fmt.Errorf("color scale: %w", err)
	}
	if _, err := output.FinalPath("x", opts.Compression); err != nil {
		return nil, err
	}
	opts.HeaderColor = normalizeColor(opts.HeaderColor)
	opts.HeaderFontColor = normalizeColor(opts.HeaderFontColor)
	return &Formatter{opts: opts}, nil
}

// Format writes every sheet of job, in job order, styles them, and saves the
// workbook once at path. Sheets that fail are skipped and reported through a
// *FormattingError; the workbook is still saved. Any other error means
// nothing usable was written.
func (f *Formatter) Format(job *dataset.ExportJob, path string) (*Result, error) {
	start := time.Now()
	result := &Result{}

	// Phase 1: write values.
	raw, written, err := f.writeSheets(job, result)
	if err != nil {
		return nil, err
	}

	// Phase 2: reopen the materialized workbook and style it.
	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("error reopening workbook: %w", err)
	}
	defer func() {
		if err := wb.Close(); err != nil {
			logger.Warn("Error closing Excel file: %v", err)
		}
	}()

	styles := make(map[int]int)
	for i := range result.Sheets {
		sheet := &result.Sheets[i]
		if sheet.Err != nil {
			continue
		}
		rs := written[sheet.Name]
		if err := f.styleSheet(wb, rs, sheet, styles); err != nil {
			sheet.Err = err
			logger.Warn("Formatting failed for sheet %s: %v", sheet.Name, err)
			continue
		}
		logger.Debug("Sheet %s formatted: %d rows, %d color scales", sheet.Name, sheet.Rows, len(sheet.ColorScales))
	}

	saved, err := f.save(wb, path)
	if err != nil {
		return nil, err
	}
	result.Path = saved

	logger.Debug("Workbook %s saved in %v", saved, time.Since(start))

	var failures []SheetError
	for _, s := range result.Sheets {
		if s.Err != nil {
			failures = append(failures, SheetError{Sheet: s.Name, Err: s.Err})
		}
	}
	if len(failures) > 0 {
		return result, &FormattingError{Path: saved, Failures: failures}
	}
	return result, nil
}

// writeSheets streams header and rows of each valid result set into a new
// workbook and returns its bytes.
func (f *Formatter) writeSheets(job *dataset.ExportJob, result *Result) ([]byte, map[string]*dataset.ResultSet, error) {
	wb := excelize.NewFile()
	defer wb.Close()

	written := make(map[string]*dataset.ResultSet, job.Len())
	keepDefault := false

	for name, rs := range job.Sheets() {
		sheet := SheetResult{Name: name, Rows: rs.Len(), Columns: len(rs.Columns)}
		if err := writeSheet(wb, name, rs); err != nil {
			sheet.Err = err
			logger.Warn("Skipping sheet %s: %v", name, err)
		} else {
			written[name] = rs
			if name == defaultSheet {
				keepDefault = true
			}
		}
		result.Sheets = append(result.Sheets, sheet)
	}

	if len(written) > 0 && !keepDefault {
		if err := wb.DeleteSheet(defaultSheet); err != nil {
			return nil, nil, fmt.Errorf("error removing default sheet: %w", err)
		}
		wb.SetActiveSheet(0)
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), written, nil
}

func writeSheet(wb *excelize.File, name string, rs *dataset.ResultSet) error {
	if err := validation.ValidateSheetName(name); err != nil {
		return err
	}
	if err := rs.Validate(); err != nil {
		return err
	}
	if idx, _ := wb.GetSheetIndex(name); idx >= 0 && name != defaultSheet {
		return fmt.Errorf("sheet name %q collides with an existing sheet", name)
	}

	if _, err := wb.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	sw, err := wb.NewStreamWriter(name)
	if err != nil {
		return fmt.Errorf("error creating stream writer: %w", err)
	}

	header := make([]any, len(rs.Columns))
	for i, c := range rs.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("error writing headers: %w", err)
	}

	for i, row := range rs.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, cellValues(row)); err != nil {
			return fmt.Errorf("error writing row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("error flushing sheet: %w", err)
	}
	return nil
}

// cellValues replaces NaN and infinities, which have no cell representation,
// with empty cells. row is copied only when it holds one.
func cellValues(row []any) []any {
	out, copied := row, false
	for i, v := range row {
		var f float64
		switch n := v.(type) {
		case float64:
			f = n
		case float32:
			f = float64(n)
		default:
			continue
		}
		if !math.IsNaN(f) && !math.IsInf(f, 0) {
			continue
		}
		if !copied {
			out, copied = slices.Clone(row), true
		}
		out[i] = nil
	}
	return out
}

func (f *Formatter) styleSheet(wb *excelize.File, rs *dataset.ResultSet, sheet *SheetResult, styles map[int]int) error {
	name := sheet.Name
	lastRow := rs.Len() + 1

	if err := wb.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: frozenCell,
		ActivePane:  "bottomRight",
		Selection: []excelize.Selection{
			{SQRef: frozenCell, ActiveCell: frozenCell, Pane: "bottomRight"},
		},
	}); err != nil {
		return fmt.Errorf("error freezing panes: %w", err)
	}

	if rs.Len() > 0 {
		lastCol, err := excelize.ColumnNumberToName(len(rs.Columns))
		if err != nil {
			return err
		}
		ref := fmt.Sprintf("A1:%s%d", lastCol, lastRow)
		if err := wb.AutoFilter(name, ref, nil); err != nil {
			return fmt.Errorf("error adding auto-filter %s: %w", ref, err)
		}
		sheet.AutoFilter = ref

		for _, c := range NumericColumns(rs, f.opts.SampleSize) {
			col, err := excelize.ColumnNumberToName(c + 1)
			if err != nil {
				return err
			}
			ref := fmt.Sprintf("%s2:%s%d", col, col, lastRow)
			if err := wb.SetConditionalFormat(name, ref, f.colorScaleRule()); err != nil {
				return fmt.Errorf("error adding color scale %s: %w", ref, err)
			}
			sheet.NumericColumns = append(sheet.NumericColumns, rs.Columns[c])
			sheet.ColorScales = append(sheet.ColorScales, ref)
		}
	}

	return f.styleHeader(wb, name, len(rs.Columns), styles)
}

func (f *Formatter) colorScaleRule() []excelize.ConditionalFormatOptions {
	s := f.opts.Scale
	return []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "min",
		MidType:  "percentile",
		MidValue: fmt.Sprintf("%g", s.MidPercentile),
		MaxType:  "max",
		MinColor: "#" + normalizeColor(s.MinColor),
		MidColor: "#" + normalizeColor(s.MidColor),
		MaxColor: "#" + normalizeColor(s.MaxColor),
	}}
}

// styleHeader merges the header fill and font over each header cell's
// existing style. Merged styles are cached by base style id.
func (f *Formatter) styleHeader(wb *excelize.File, sheet string, columns int, styles map[int]int) error {
	for c := 1; c <= columns; c++ {
		cell, err := excelize.CoordinatesToCellName(c, 1)
		if err != nil {
			return err
		}
		base, err := wb.GetCellStyle(sheet, cell)
		if err != nil {
			return fmt.Errorf("error reading style of %s: %w", cell, err)
		}

		merged, ok := styles[base]
		if !ok {
			merged, err = f.mergeHeaderStyle(wb, base)
			if err != nil {
				return err
			}
			styles[base] = merged
		}

		if err := wb.SetCellStyle(sheet, cell, cell, merged); err != nil {
			return fmt.Errorf("error styling %s: %w", cell, err)
		}
	}
	return nil
}

func (f *Formatter) mergeHeaderStyle(wb *excelize.File, base int) (int, error) {
	style, err := wb.GetStyle(base)
	if err != nil {
		return 0, fmt.Errorf("error reading style %d: %w", base, err)
	}
	if style == nil {
		style = &excelize.Style{}
	}

	style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{f.opts.HeaderColor}}

	font := excelize.Font{}
	if style.Font != nil {
		font = *style.Font
	}
	font.Bold = true
	font.Color = f.opts.HeaderFontColor
	style.Font = &font

	id, err := wb.NewStyle(style)
	if err != nil {
		return 0, fmt.Errorf("error creating header style: %w", err)
	}
	return id, nil
}

func (f *Formatter) save(wb *excelize.File, path string) (string, error) {
	w, err := output.CreateWriter(output.OutputConfig{Path: path, Compression: f.opts.Compression})
	if err != nil {
		return "", err
	}
	if err := wb.Write(w); err != nil {
		w.Close()
		return "", fmt.Errorf("error writing Excel file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("error closing Excel file: %w", err)
	}
	return w.Path(), nil
}
