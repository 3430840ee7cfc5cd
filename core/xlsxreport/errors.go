package xlsxreport

import (
	"fmt"
	"strings"
)

// SheetError records why one sheet could not be written or styled.
type SheetError struct {
	Sheet string
	Err   error
}

func (e SheetError) Error() string {
	return fmt.Sprintf("sheet %q: %v", e.Sheet, e.Err)
}

func (e SheetError) Unwrap() error { return e.Err }

// FormattingError is returned when the workbook was saved but one or more
// sheets failed. The remaining sheets are complete.
type FormattingError struct {
	Path     string
	Failures []SheetError
}

func (e *FormattingError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Error()
	}
	return fmt.Sprintf("%d sheet(s) failed in %s: %s", len(e.Failures), e.Path, strings.Join(parts, "; "))
}

func (e *FormattingError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}

// FailedSheets returns the names of the sheets that failed, in job order.
func (e *FormattingError) FailedSheets() []string {
	names := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		names[i] = f.Sheet
	}
	return names
}
