package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fbz-tec/skytrack/core/formatters"
)

// MaxSheetNameLength is the worksheet name limit imposed by Excel.
const MaxSheetNameLength = 31

// ValidateSheetName checks a worksheet name against Excel's rules.
func ValidateSheetName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("sheet name cannot be empty")
	}
	if n := utf8.RuneCountInString(name); n > MaxSheetNameLength {
		return fmt.Errorf("sheet name %q is %d characters, limit is %d", name, n, MaxSheetNameLength)
	}
	if strings.ContainsAny(name, `:\/?*[]`) {
		return fmt.Errorf("sheet name %q contains one of the characters : \\ / ? * [ ]", name)
	}
	if strings.HasPrefix(name, "'") || strings.HasSuffix(name, "'") {
		return fmt.Errorf("sheet name %q cannot begin or end with an apostrophe", name)
	}
	return nil
}

// ValidateTimeFormat checks that a yyyy-MM-dd style pattern formats and parses back.
func ValidateTimeFormat(format string) error {
	if format == "" {
		return fmt.Errorf("time format cannot be empty")
	}

	layout := formatters.ConvertUserTimeFormat(format)
	probe := time.Date(2006, 1, 2, 15, 4, 5, 123456789, time.UTC)

	if _, err := time.Parse(layout, probe.Format(layout)); err != nil {
		return fmt.Errorf("invalid time format %q: %w", format, err)
	}
	return nil
}
