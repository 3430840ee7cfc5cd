package analytics

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fbz-tec/skytrack/core/charts"
	"github.com/fbz-tec/skytrack/core/config"
	"github.com/fbz-tec/skytrack/core/dataset"
	"github.com/fbz-tec/skytrack/core/db"
	"github.com/fbz-tec/skytrack/core/runlog"
	"github.com/fbz-tec/skytrack/core/timeline"
	"github.com/fbz-tec/skytrack/core/validation"
	"github.com/fbz-tec/skytrack/core/xlsxreport"
	"github.com/fbz-tec/skytrack/internal/logger"
	"github.com/fbz-tec/skytrack/internal/ui"
)

// Report parts selectable with Options.Only.
const (
	PartOverview = "overview"
	PartCharts   = "charts"
	PartTimeline = "timeline"
	PartExport   = "export"
)

// Parts lists every report part in run order.
var Parts = []string{PartOverview, PartCharts, PartTimeline, PartExport}

const (
	TimelineUnit = "interactive_timeline"
	TimelineFile = "interactive_timeline.html"
	ExportUnit   = "excel_export"
)

type Options struct {
	// Only restricts the run to these parts; empty runs everything.
	Only []string
	// HeatMap colors bar charts on the red-yellow-green scale.
	HeatMap bool
	// Progress shows a progress bar over the units.
	Progress bool
	// Source describes the data source in the run summary, without credentials.
	Source string
}

// Runner executes every report unit against one store.
// A failed unit is logged and recorded; the run always continues.
type Runner struct {
	store  db.Store
	cfg    config.ReportConfig
	opts   Options
	sheets []config.SheetQuery
}

// NewRunner checks the configuration and the export queries before anything runs.
func NewRunner(store db.Store, cfg config.ReportConfig, opts Options) (*Runner, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid report config: %w", err)
	}
	for _, p := range opts.Only {
		if !slices.Contains(Parts, p) {
			return nil, fmt.Errorf("unknown report part %q (valid: %s)", p, strings.Join(Parts, ", "))
		}
	}

	sheets := cfg.Sheets
	if len(sheets) == 0 {
		sheets = DefaultSheets()
	}
	for _, s := range sheets {
		if err := validation.ValidateSheetName(s.Name); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
		}
		if err := validation.ValidateQuery(s.Query); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
		}
	}

	return &Runner{store: store, cfg: cfg, opts: opts, sheets: sheets}, nil
}

// Sheets returns the export sheets in workbook order.
func (r *Runner) Sheets() []config.SheetQuery { return r.sheets }

func (r *Runner) enabled(part string) bool {
	return len(r.opts.Only) == 0 || slices.Contains(r.opts.Only, part)
}

func (r *Runner) unitCount() int {
	n := 0
	if r.enabled(PartOverview) {
		n += len(overviewQueries)
	}
	if r.enabled(PartCharts) {
		n += len(ChartUnits())
	}
	if r.enabled(PartTimeline) {
		n++
	}
	if r.enabled(PartExport) {
		n++
	}
	return n
}

// Run executes the enabled parts in order and returns the summary of every unit.
func (r *Runner) Run(ctx context.Context) *runlog.Summary {
	summary := runlog.NewSummary(r.opts.Source)

	var progress *ui.UnitProgress
	if r.opts.Progress {
		progress = ui.NewUnitProgress(r.unitCount())
	}

	logger.Section("SKYTRACK SOLUTIONS - COMPREHENSIVE ANALYTICS SUITE")

	if r.enabled(PartOverview) {
		logger.Section("Database overview")
		for _, q := range overviewQueries {
			r.record(ctx, summary, progress, q.name, runlog.KindOverview, r.overviewUnit(q, summary))
		}
	}

	if r.enabled(PartCharts) {
		logger.Section("Static charts (2+ JOINs each)")
		for _, u := range ChartUnits() {
			r.record(ctx, summary, progress, u.Name, runlog.KindChart, r.chartUnit(u))
		}
	}

	if r.enabled(PartTimeline) {
		logger.Section("Interactive timeline")
		r.record(ctx, summary, progress, TimelineUnit, runlog.KindTimeline, r.timelineUnit)
	}

	if r.enabled(PartExport) {
		logger.Section("Excel export")
		r.record(ctx, summary, progress, ExportUnit, runlog.KindExport, r.exportUnit)
	}

	progress.Finish()
	summary.Finish()

	counts := summary.Counts()
	logger.Section("Run complete")
	logger.Info("Units: %d ok, %d skipped, %d failed (%v)",
		counts[runlog.StatusOK], counts[runlog.StatusSkipped], counts[runlog.StatusFailed],
		summary.Duration().Round(time.Millisecond))
	for _, a := range summary.Artifacts() {
		logger.Info("  - %s", a)
	}
	return summary
}

type unitFunc func(ctx context.Context) (runlog.UnitResult, error)

// record runs one unit and files its outcome. charts.ErrNoData marks the unit skipped.
func (r *Runner) record(ctx context.Context, s *runlog.Summary, p *ui.UnitProgress, name string, kind runlog.Kind, fn unitFunc) {
	start := time.Now()
	logger.Debug("Starting unit %s", name)

	res, err := fn(ctx)
	res.Name = name
	res.Kind = kind
	res.Duration = time.Since(start)

	switch {
	case errors.Is(err, charts.ErrNoData):
		res.Status = runlog.StatusSkipped
		res.Message = "no data available"
		logger.Warn("No data available for %s", name)
	case err != nil:
		res.Status = runlog.StatusFailed
		res.Message = err.Error()
		logger.Error("Error creating %s: %v", name, err)
	default:
		res.Status = runlog.StatusOK
		if res.Artifact != "" {
			logger.Success("%s saved to %s (%d rows)", name, res.Artifact, res.Rows)
		} else {
			logger.Success("%s: %d rows", name, res.Rows)
		}
		if res.Message != "" {
			logger.Info("Shows: %s", res.Message)
		}
	}

	s.Record(res)
	p.Step(name)
}

func (r *Runner) fetch(ctx context.Context, name string, q Query) (*dataset.ResultSet, error) {
	rs, err := r.store.Fetch(ctx, name, q.For(r.store.Dialect()))
	if err != nil {
		return nil, fmt.Errorf("error fetching data: %w", err)
	}
	logger.Debug("Rows retrieved for %s: %d", name, rs.Len())
	return rs, nil
}

type overviewQuery struct {
	name  string
	title string
	query Query
}

var overviewQueries = []overviewQuery{
	{"tables", "Tables in database", tableInventoryQuery},
	{"flights_per_airline", "Flights per airline", flightsPerAirlineQuery},
	{"booking_price_stats", "Booking price by status", bookingPriceStatsQuery},
}

func (r *Runner) overviewUnit(q overviewQuery, s *runlog.Summary) unitFunc {
	return func(ctx context.Context) (runlog.UnitResult, error) {
		rs, err := r.fetch(ctx, q.name, q.query)
		if err != nil {
			return runlog.UnitResult{}, err
		}
		s.Overview = append(s.Overview, rs)
		res := runlog.UnitResult{Rows: rs.Len(), Message: q.title}
		if rs.Empty() {
			return res, charts.ErrNoData
		}
		return res, nil
	}
}

func (r *Runner) chartUnit(u ChartUnit) unitFunc {
	return func(ctx context.Context) (runlog.UnitResult, error) {
		rs, err := r.fetch(ctx, u.Name, u.Query)
		if err != nil {
			return runlog.UnitResult{}, err
		}
		res := runlog.UnitResult{Rows: rs.Len()}
		if rs.Empty() {
			return res, charts.ErrNoData
		}

		chart, desc, err := u.Build(rs, r.opts)
		if err != nil {
			return res, err
		}
		path, err := charts.SaveFile(chart, filepath.Join(r.cfg.ChartsDir, u.File()))
		if err != nil {
			return res, err
		}
		res.Artifact = path
		res.Message = desc
		logger.Debug("SQL JOINs used by %s: %s", u.Name, u.Joins)
		return res, nil
	}
}

func (r *Runner) timelineUnit(ctx context.Context) (runlog.UnitResult, error) {
	rs, err := r.fetch(ctx, TimelineUnit, timelineQuery)
	if err != nil {
		return runlog.UnitResult{}, err
	}
	res := runlog.UnitResult{Rows: rs.Len()}

	tl, err := timeline.Build("Flight Count Evolution by Airline (Monthly Timeline)", rs)
	if err != nil {
		return res, err
	}
	path, err := charts.SaveFile(tl, filepath.Join(r.cfg.ChartsDir, TimelineFile))
	if err != nil {
		return res, err
	}
	res.Artifact = path
	res.Message = fmt.Sprintf("Airline performance across %d months, %d airlines tracked", len(tl.Frames), len(tl.Airlines))
	return res, nil
}

func (r *Runner) exportUnit(ctx context.Context) (runlog.UnitResult, error) {
	job, err := dataset.NewExportJob()
	if err != nil {
		return runlog.UnitResult{}, err
	}
	for _, s := range r.sheets {
		rs, err := r.store.Fetch(ctx, s.Name, s.Query)
		if err != nil {
			return runlog.UnitResult{}, fmt.Errorf("error fetching sheet %s: %w", s.Name, err)
		}
		if err := job.Add(rs); err != nil {
			return runlog.UnitResult{}, err
		}
	}

	opts := xlsxreport.DefaultOptions()
	opts.SampleSize = r.cfg.SampleSize
	opts.HeaderColor = r.cfg.HeaderColor
	opts.Compression = r.cfg.Compression
	f, err := xlsxreport.New(opts)
	if err != nil {
		return runlog.UnitResult{}, err
	}

	result, err := f.Format(job, r.cfg.WorkbookPath())
	var fe *xlsxreport.FormattingError
	switch {
	case errors.As(err, &fe):
		return runlog.UnitResult{Artifact: result.Path, Rows: result.Rows()}, err
	case err != nil:
		return runlog.UnitResult{}, err
	}

	written := 0
	for _, s := range result.Sheets {
		if s.Err == nil {
			written++
		}
	}
	return runlog.UnitResult{
		Artifact: result.Path,
		Rows:     result.Rows(),
		Message:  fmt.Sprintf("%d sheets, %d rows", written, result.Rows()),
	}, nil
}
