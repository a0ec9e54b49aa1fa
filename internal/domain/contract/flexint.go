// internal/domain/contract/flexint.go
package contract

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexInt is a nullable integer that accepts JSON numbers and numeric
// strings. Empty strings, null and non-numeric input decode to NULL.
type FlexInt struct {
	Value int64
	Valid bool
}

func NewFlexInt(v int64) FlexInt {
	return FlexInt{Value: v, Valid: true}
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = FlexInt{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			return nil
		}
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	f.Value = int64(math.Round(n))
	f.Valid = true
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// Or returns the value, or def when NULL.
func (f FlexInt) Or(def int64) int64 {
	if !f.Valid {
		return def
	}
	return f.Value
}

func (f FlexInt) Ptr() *int64 {
	if !f.Valid {
		return nil
	}
	v := f.Value
	return &v
}

func (f FlexInt) NullInt64() sql.NullInt64 {
	return sql.NullInt64{Int64: f.Value, Valid: f.Valid}
}
