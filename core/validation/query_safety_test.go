package validation

import (
	"strings"
	"testing"
)

func TestValidateQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
		errMsg  string
	}{
		// allowed
		{name: "select", query: "SELECT * FROM airline"},
		{name: "select with joins", query: `
			SELECT a.airline_name, COUNT(f.flight_id) AS total_flights
			FROM airline a
			JOIN flights f ON a.airline_id = f.airline_id
			JOIN airport ap ON f.departure_airport_id = ap.airport_id
			GROUP BY a.airline_name`},
		{name: "cte", query: "WITH busy AS (SELECT * FROM flights) SELECT * FROM busy"},
		{name: "parenthesized select", query: "(SELECT 1) UNION (SELECT 2)"},
		{name: "trailing semicolon", query: "SELECT * FROM airport;"},
		{name: "values", query: "VALUES (1), (2)"},
		{name: "lowercase", query: "select status from flights"},
		{name: "keyword inside string", query: "SELECT 'DELETE FROM users; DROP' AS cmd"},
		{name: "escaped quote", query: "SELECT 'O''Brien' AS name"},
		{name: "keyword inside quoted identifier", query: `SELECT "update" FROM booking`},
		{name: "keyword as column prefix", query: "SELECT last_update, created_at, delete_flag FROM booking"},
		{name: "keyword in line comment", query: "SELECT 1 -- DROP TABLE flights"},
		{name: "keyword in block comment", query: "SELECT 1 /* DELETE FROM users; */"},
		{name: "nested block comment", query: "SELECT 1 /* outer /* DROP */ still comment */"},
		{name: "comment after semicolon", query: "SELECT 1; -- DELETE FROM users;"},

		// rejected
		{name: "empty", query: "", wantErr: true, errMsg: "empty"},
		{name: "whitespace", query: "  \n\t ", wantErr: true, errMsg: "empty"},
		{name: "only comment", query: "-- nothing", wantErr: true, errMsg: "only comments"},
		{name: "delete", query: "DELETE FROM flights", wantErr: true, errMsg: "DELETE"},
		{name: "mixed case drop", query: "DrOp TABLE flights", wantErr: true, errMsg: "DROP"},
		{name: "insert", query: "INSERT INTO flights VALUES (1)", wantErr: true, errMsg: "INSERT"},
		{name: "unknown command", query: "EXPLAIN SELECT 1", wantErr: true, errMsg: "unsupported SQL command"},
		{name: "stacked statements", query: "SELECT 1; DELETE FROM flights", wantErr: true, errMsg: "single SQL statement"},
		{name: "two selects", query: "SELECT 1; SELECT 2", wantErr: true, errMsg: "single SQL statement"},
		{name: "data modifying cte", query: "WITH gone AS (DELETE FROM flights RETURNING *) SELECT * FROM gone", wantErr: true, errMsg: "DELETE"},
		{name: "delete hidden after comment", query: "/* report */ DELETE FROM flights", wantErr: true, errMsg: "DELETE"},
		{name: "semicolon inside string does not split", query: "SELECT ';' ; UPDATE flights SET status = 'x'", wantErr: true, errMsg: "single SQL statement"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuery(tt.query)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("ValidateQuery() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("ValidateQuery() expected error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidateQuery() error = %q, want it to contain %q", err, tt.errMsg)
			}
		})
	}
}

func TestMaskQuery(t *testing.T) {
	got := maskQuery("SELECT 'a;b' -- gone\nFROM t /* x */")
	if strings.Contains(got, ";") || strings.Contains(got, "gone") || strings.Contains(got, "x") {
		t.Errorf("maskQuery left literal or comment content: %q", got)
	}
	if !strings.Contains(got, "FROM t") {
		t.Errorf("maskQuery dropped code: %q", got)
	}
}

func TestValidateSheetName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"Airlines_Performance", false},
		{"Booking Summary", false},
		{"", true},
		{"   ", true},
		{"Q1/Q2", true},
		{"Bad[1]", true},
		{"'quoted'", true},
		{strings.Repeat("x", 31), false},
		{strings.Repeat("x", 32), true},
	}

	for _, tt := range tests {
		err := ValidateSheetName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSheetName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateTimeFormat(t *testing.T) {
	for _, f := range []string{"yyyy-MM-dd", "yyyy-MM-dd HH:mm:ss", "dd/MM/yyyy HH:mm:ss.SSS"} {
		if err := ValidateTimeFormat(f); err != nil {
			t.Errorf("ValidateTimeFormat(%q) unexpected error: %v", f, err)
		}
	}
	if err := ValidateTimeFormat(""); err == nil {
		t.Error("ValidateTimeFormat(\"\") expected error")
	}
}
