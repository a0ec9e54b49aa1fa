// internal/domain/contract/truthy.go
package contract

import (
	"encoding/json"
)

// Truthy is a lenient presence flag. Clients send either true or the
// signature image itself, so true, non-zero numbers, non-empty strings and
// any object or array count as set. Malformed input decodes to false.
type Truthy bool

func (t *Truthy) UnmarshalJSON(data []byte) error {
	*t = false
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case nil:
	case bool:
		*t = Truthy(x)
	case float64:
		*t = x != 0
	case string:
		*t = x != ""
	default:
		*t = true
	}
	return nil
}

func (t Truthy) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(t))
}
