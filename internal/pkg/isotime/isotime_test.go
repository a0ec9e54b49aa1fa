package isotime

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_ConvertsToUTCWithMillis(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	ts := time.Date(2025, 3, 1, 9, 30, 15, 123456789, seoul)

	assert.Equal(t, "2025-03-01T00:30:15.123Z", Format(ts))
}

func TestFormat_PadsZeroMillis(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.Equal(t, "2025-01-02T03:04:05.000Z", Format(ts))
}

func TestFormatNull(t *testing.T) {
	assert.Nil(t, FormatNull(sql.NullTime{}))

	got := FormatNull(sql.NullTime{Time: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), Valid: true})
	require.NotNil(t, got)
	assert.Equal(t, "2025-01-02T03:04:05.000Z", *got)
}
