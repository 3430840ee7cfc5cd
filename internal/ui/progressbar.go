package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// UnitProgress tracks how many report units have completed.
// A nil *UnitProgress is valid and does nothing.
type UnitProgress struct {
	bar *progressbar.ProgressBar
}

func NewUnitProgress(total int) *UnitProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Generating report"),
		progressbar.OptionEnableColorCodes(false),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionSetWidth(20),
	)
	return &UnitProgress{bar: bar}
}

// Step marks one unit as done and shows its name.
func (p *UnitProgress) Step(unit string) {
	if p == nil || p.bar == nil {
		return
	}
	p.bar.Describe(fmt.Sprintf("Generating report [%s]", unit))
	_ = p.bar.Add(1)
}

func (p *UnitProgress) Finish() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
