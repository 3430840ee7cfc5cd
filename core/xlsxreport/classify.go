package xlsxreport

import "github.com/fbz-tec/skytrack/core/dataset"

// DefaultSampleSize is how many leading data rows are inspected to decide
// whether a column is numeric.
const DefaultSampleSize = 8

// IsNumericColumn reports whether any of the first sampleSize values of
// column col holds a number. Classification is by Go type: "5" is text.
// A column whose sampled values are all null is not numeric even if later
// rows hold numbers.
func IsNumericColumn(rs *dataset.ResultSet, col, sampleSize int) bool {
	n := min(sampleSize, len(rs.Rows))
	for _, row := range rs.Rows[:n] {
		if col < len(row) && dataset.IsNumber(row[col]) {
			return true
		}
	}
	return false
}

// NumericColumns returns the indexes of numeric columns, skipping the first
// (label) column.
func NumericColumns(rs *dataset.ResultSet, sampleSize int) []int {
	var cols []int
	for c := 1; c < len(rs.Columns); c++ {
		if IsNumericColumn(rs, c, sampleSize) {
			cols = append(cols, c)
		}
	}
	return cols
}
