package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Truthy
	}{
		{"true", `true`, true},
		{"false", `false`, false},
		{"data url", `"data:image/png;base64,AA=="`, true},
		{"empty string", `""`, false},
		{"null", `null`, false},
		{"zero", `0`, false},
		{"one", `1`, true},
		{"object", `{"strokes":[]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Truthy
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruthy_MissingField(t *testing.T) {
	var req SignContractRequest
	require.NoError(t, json.Unmarshal([]byte(`{"contract_id":"abc"}`), &req))
	assert.False(t, bool(req.CustomerSignature))

	require.NoError(t, json.Unmarshal([]byte(`{"contract_id":"abc","customer_signature":true}`), &req))
	assert.True(t, bool(req.CustomerSignature))
}
