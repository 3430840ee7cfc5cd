package formatters

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DefaultTimeFormat is the user-facing layout for timestamps placed in a ResultSet.
const DefaultTimeFormat = "yyyy-MM-dd HH:mm:ss"

var timeFormatReplacer = strings.NewReplacer(
	"yyyy", "2006",
	"yy", "06",
	"MM", "01",
	"dd", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
	"SSS", "000",
	"S", "0",
)

// NormalizeValue turns a value decoded by pgx into a ResultSet scalar:
// nil, string, int64 or float64. The OID decides how dates, UUIDs and
// numerics are rendered.
func NormalizeValue(val any, oid uint32, userTimefmt string) any {
	if val == nil {
		return nil
	}

	switch oid {
	case pgtype.DateOID:
		if t, ok := val.(time.Time); ok {
			return t.Format(ConvertUserTimeFormat(extractUserDateFormat(userTimefmt)))
		}

	case pgtype.TimestampOID, pgtype.TimestamptzOID:
		if t, ok := val.(time.Time); ok {
			return t.Format(ConvertUserTimeFormat(userTimefmt))
		}

	case pgtype.UUIDOID:
		if uuid, ok := val.([16]byte); ok {
			return fmt.Sprintf("%x-%x-%x-%x-%x", uuid[0:4], uuid[4:6], uuid[6:8], uuid[8:10], uuid[10:16])
		}

	case pgtype.NumericOID:
		if num, ok := val.(pgtype.Numeric); ok {
			return numericToFloat(num)
		}

	case pgtype.IntervalOID:
		if interval, ok := val.(pgtype.Interval); ok {
			if !interval.Valid {
				return nil
			}
			v, err := interval.Value()
			if err != nil {
				return nil
			}
			return fmt.Sprint(v)
		}

	case pgtype.JSONBOID, pgtype.JSONOID:
		b, err := json.Marshal(val)
		if err != nil {
			return "{}"
		}
		return string(b)
	}

	return normalizeGo(val, userTimefmt)
}

// NormalizeSQLValue is NormalizeValue for database/sql drivers, which carry no OID.
func NormalizeSQLValue(val any, userTimefmt string) any {
	if val == nil {
		return nil
	}
	return normalizeGo(val, userTimefmt)
}

func normalizeGo(val any, userTimefmt string) any {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	case *big.Int:
		f, _ := new(big.Float).SetInt(v).Float64()
		return f
	case time.Time:
		return v.Format(ConvertUserTimeFormat(userTimefmt))
	case pgtype.Numeric:
		return numericToFloat(v)
	case []any:
		b, err := json.Marshal(v)
		if err != nil {
			return "[]"
		}
		return string(b)
	case map[string]any:
		b, err := json.Marshal(v)
		if err != nil {
			return "{}"
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func numericToFloat(num pgtype.Numeric) any {
	if !num.Valid {
		return nil
	}
	f, err := num.Float64Value()
	if err != nil || !f.Valid {
		return nil
	}
	return f.Float64
}

// ConvertUserTimeFormat maps yyyy-MM-dd style patterns to a Go layout.
func ConvertUserTimeFormat(userTimefmt string) string {
	return timeFormatReplacer.Replace(userTimefmt)
}

// extractUserDateFormat keeps only the date portion of a datetime pattern,
// so "yyyy-MM-dd HH:mm:ss" becomes "yyyy-MM-dd".
func extractUserDateFormat(userFmt string) string {
	last := -1
	for _, tok := range []string{"yyyy", "yy", "MM", "dd"} {
		if idx := strings.LastIndex(userFmt, tok); idx != -1 {
			if end := idx + len(tok); end > last {
				last = end
			}
		}
	}
	if last == -1 {
		return userFmt
	}
	return strings.TrimSpace(userFmt[:last])
}

// QuoteIdent quotes a possibly schema-qualified identifier.
func QuoteIdent(s string) string {
	parts := strings.Split(s, ".")
	for i, part := range parts {
		parts[i] = `"` + strings.ReplaceAll(part, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}
