package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultChartsDir    = "charts"
	DefaultExportsDir   = "exports"
	DefaultWorkbookName = "skytrack_analytics_report.xlsx"
	DefaultSampleSize   = 8
	DefaultHeaderColor  = "4472C4"
	DefaultCompression  = "none"
)

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// SheetQuery names one worksheet of the Excel export and the query that fills it.
type SheetQuery struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
}

// ReportConfig holds everything the report run needs besides the database.
type ReportConfig struct {
	ChartsDir    string       `yaml:"charts_dir"`
	ExportsDir   string       `yaml:"exports_dir"`
	WorkbookName string       `yaml:"workbook"`
	Compression  string       `yaml:"compression"`
	SampleSize   int          `yaml:"sample_size"`
	HeaderColor  string       `yaml:"header_color"`
	Sheets       []SheetQuery `yaml:"sheets"`
}

// DefaultReportConfig returns the settings used when no config file is given.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		ChartsDir:    DefaultChartsDir,
		ExportsDir:   DefaultExportsDir,
		WorkbookName: DefaultWorkbookName,
		Compression:  DefaultCompression,
		SampleSize:   DefaultSampleSize,
		HeaderColor:  DefaultHeaderColor,
	}
}

// LoadReportConfig layers a YAML report file and the environment over the defaults.
// An empty path skips the file.
func LoadReportConfig(path string) (ReportConfig, error) {
	cfg := DefaultReportConfig()

	if strings.TrimSpace(path) != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("unable to read report config: %w", err)
		}
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("invalid report config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// applyEnv lets the environment override file settings for the output paths.
func (c *ReportConfig) applyEnv() {
	c.ChartsDir = envOr("SKYTRACK_CHARTS_DIR", c.ChartsDir)
	c.ExportsDir = envOr("SKYTRACK_EXPORTS_DIR", c.ExportsDir)
}

// WorkbookPath is where the Excel export is written.
func (c ReportConfig) WorkbookPath() string {
	return filepath.Join(c.ExportsDir, c.WorkbookName)
}

// Validate checks the report settings.
func (c ReportConfig) Validate() error {
	var errs []error

	if strings.TrimSpace(c.ChartsDir) == "" {
		errs = append(errs, errors.New("charts_dir cannot be empty"))
	}
	if strings.TrimSpace(c.ExportsDir) == "" {
		errs = append(errs, errors.New("exports_dir cannot be empty"))
	}
	if !strings.HasSuffix(strings.ToLower(c.WorkbookName), ".xlsx") {
		errs = append(errs, fmt.Errorf("workbook %q must have an .xlsx extension", c.WorkbookName))
	}
	if c.SampleSize < 1 {
		errs = append(errs, fmt.Errorf("sample_size must be at least 1, got %d", c.SampleSize))
	}
	if !hexColor.MatchString(strings.TrimPrefix(c.HeaderColor, "#")) {
		errs = append(errs, fmt.Errorf("header_color %q must be a 6-digit hex color", c.HeaderColor))
	}

	seen := make(map[string]bool, len(c.Sheets))
	for i, s := range c.Sheets {
		switch {
		case strings.TrimSpace(s.Name) == "":
			errs = append(errs, fmt.Errorf("sheets[%d]: name cannot be empty", i))
		case seen[s.Name]:
			errs = append(errs, fmt.Errorf("sheets[%d]: duplicate sheet name %q", i, s.Name))
		}
		if strings.TrimSpace(s.Query) == "" {
			errs = append(errs, fmt.Errorf("sheets[%d]: query cannot be empty", i))
		}
		seen[s.Name] = true
	}

	return errors.Join(errs...)
}
