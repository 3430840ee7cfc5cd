package dataset

import (
	"reflect"
	"strings"
	"testing"
)

func TestResultSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		rs      *ResultSet
		wantErr string
	}{
		{
			name: "rectangular",
			rs:   &ResultSet{Name: "ok", Columns: []string{"a", "b"}, Rows: [][]any{{1, "x"}, {nil, nil}}},
		},
		{
			name: "header only",
			rs:   &ResultSet{Name: "empty", Columns: []string{"a"}},
		},
		{
			name:    "no columns",
			rs:      &ResultSet{Name: "bad"},
			wantErr: "no columns",
		},
		{
			name:    "short row",
			rs:      &ResultSet{Name: "bad", Columns: []string{"a", "b"}, Rows: [][]any{{1, 2}, {1}}},
			wantErr: "row 2 has 1 values, expected 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rs.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsNumber(t *testing.T) {
	tests := []struct {
		value any
		want  bool
	}{
		{int64(5), true},
		{int32(5), true},
		{uint8(5), true},
		{3.5, true},
		{float32(1), true},
		{"5", false},
		{"N/A", false},
		{true, false},
		{nil, false},
		{[]byte("1"), false},
	}

	for _, tt := range tests {
		if got := IsNumber(tt.value); got != tt.want {
			t.Errorf("IsNumber(%#v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestFloatsAndStrings(t *testing.T) {
	rs := New("prices", "status", "price")
	rs.Append("confirmed", int64(120))
	rs.Append("pending", nil)
	rs.Append("cancelled", 99.5)

	floats, err := rs.Floats("price")
	if err != nil {
		t.Fatalf("Floats: %v", err)
	}
	if !reflect.DeepEqual(floats, []float64{120, 99.5}) {
		t.Errorf("Floats = %v", floats)
	}

	labels, err := rs.Strings("status")
	if err != nil {
		t.Fatalf("Strings: %v", err)
	}
	if !reflect.DeepEqual(labels, []string{"confirmed", "pending", "cancelled"}) {
		t.Errorf("Strings = %v", labels)
	}

	if _, err := rs.Floats("status"); err == nil {
		t.Error("expected error converting text column")
	}
	if _, err := rs.Floats("missing"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestText(t *testing.T) {
	tests := map[any]string{
		nil:        "",
		"LAX":      "LAX",
		int64(42):  "42",
		2.5:        "2.5",
		float64(3): "3",
	}
	for in, want := range tests {
		if got := Text(in); got != want {
			t.Errorf("Text(%#v) = %q, want %q", in, got, want)
		}
	}
}

func TestExportJobOrder(t *testing.T) {
	job, err := NewExportJob(
		New("Airlines_Performance", "airline"),
		New("Airport_Traffic", "airport"),
		New("Booking_Summary", "status"),
	)
	if err != nil {
		t.Fatalf("NewExportJob: %v", err)
	}

	want := []string{"Airlines_Performance", "Airport_Traffic", "Booking_Summary"}
	if got := job.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	var iterated []string
	for name, rs := range job.Sheets() {
		if rs.Name != name {
			t.Errorf("sheet %q holds result set %q", name, rs.Name)
		}
		iterated = append(iterated, name)
	}
	if !reflect.DeepEqual(iterated, want) {
		t.Errorf("Sheets() order = %v, want %v", iterated, want)
	}
}

func TestExportJobRejectsDuplicates(t *testing.T) {
	job, _ := NewExportJob(New("A", "x"))

	if err := job.Add(New("A", "y")); err == nil {
		t.Error("expected duplicate name error")
	}
	if err := job.Add(New("  ", "y")); err == nil {
		t.Error("expected empty name error")
	}
	if err := job.Add(nil); err == nil {
		t.Error("expected nil error")
	}
	if job.Len() != 1 {
		t.Errorf("Len() = %d, want 1", job.Len())
	}
}
