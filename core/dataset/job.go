package dataset

import (
	"fmt"
	"iter"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// ExportJob is an insertion-ordered set of result sets written to one workbook.
type ExportJob struct {
	sheets *orderedmap.OrderedMap[string, *ResultSet]
}

// NewExportJob builds a job from result sets, in the given order.
func NewExportJob(sets ...*ResultSet) (*ExportJob, error) {
	job := &ExportJob{sheets: orderedmap.NewOrderedMap[string, *ResultSet]()}
	for _, rs := range sets {
		if err := job.Add(rs); err != nil {
			return nil, err
		}
	}
	return job, nil
}

// Add appends a result set. Names must be non-empty and unique.
func (j *ExportJob) Add(rs *ResultSet) error {
	if rs == nil {
		return fmt.Errorf("cannot add nil result set")
	}
	if strings.TrimSpace(rs.Name) == "" {
		return fmt.Errorf("result set name cannot be empty")
	}
	if _, exists := j.sheets.Get(rs.Name); exists {
		return fmt.Errorf("duplicate sheet name %q", rs.Name)
	}
	j.sheets.Set(rs.Name, rs)
	return nil
}

// Get returns the result set stored under name.
func (j *ExportJob) Get(name string) (*ResultSet, bool) {
	return j.sheets.Get(name)
}

// Len returns the number of sheets.
func (j *ExportJob) Len() int { return j.sheets.Len() }

// Names returns sheet names in job order.
func (j *ExportJob) Names() []string {
	names := make([]string, 0, j.sheets.Len())
	for name := range j.sheets.AllFromFront() {
		names = append(names, name)
	}
	return names
}

// Sheets iterates the job in insertion order.
func (j *ExportJob) Sheets() iter.Seq2[string, *ResultSet] {
	return j.sheets.AllFromFront()
}
