package xlsxreport

import (
	"reflect"
	"testing"

	"github.com/fbz-tec/skytrack/core/dataset"
)

func column(values ...any) *dataset.ResultSet {
	rs := dataset.New("c", "label", "value")
	for _, v := range values {
		rs.Append("x", v)
	}
	return rs
}

func TestIsNumericColumn(t *testing.T) {
	tests := []struct {
		name       string
		rs         *dataset.ResultSet
		sampleSize int
		want       bool
	}{
		{"nulls then numbers", column(nil, nil, int64(5), "N/A", int64(3)), 8, true},
		{"numeric strings", column("5", "3", "N/A"), 8, false},
		{"floats", column(1.5, 2.25), 8, true},
		{"booleans", column(true, false), 8, false},
		{"all null", column(nil, nil), 8, false},
		{"no rows", column(), 8, false},
		{"number beyond sample", column(nil, nil, int64(5)), 2, false},
		{"number at sample edge", column(nil, int64(5)), 2, true},
		{"default window is eight rows", column(nil, nil, nil, nil, nil, nil, nil, nil, 9.0), DefaultSampleSize, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNumericColumn(tt.rs, 1, tt.sampleSize); got != tt.want {
				t.Errorf("IsNumericColumn() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNumericColumnsSkipsLabelColumn(t *testing.T) {
	rs := dataset.New("m", "id", "name", "count", "ratio")
	rs.Append(int64(1), "a", int64(3), nil)
	rs.Append(int64(2), "b", int64(4), 0.5)

	if got := NumericColumns(rs, DefaultSampleSize); !reflect.DeepEqual(got, []int{2, 3}) {
		t.Errorf("NumericColumns() = %v, want [2 3]", got)
	}
}
