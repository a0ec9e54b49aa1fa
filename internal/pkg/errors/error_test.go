package xerrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidation_ListsFields(t *testing.T) {
	err := Validation([]string{"phone", "address"})

	assert.Equal(t, "missing required fields: phone, address", err.Error())
	assert.Equal(t, []string{"phone", "address"}, err.Fields)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, http.StatusBadRequest, StatusOf(err))
}

func TestPersistence_KeepsCause(t *testing.T) {
	cause := fmt.Errorf("insert failed")
	err := Persistence("failed to save contract", cause)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save contract", err.Error())
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))

	bare := Persistence("no id returned", nil)
	assert.ErrorIs(t, bare, ErrPersistence)
}

func TestAs_FindsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NotFound("contract not found"))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, appErr.Kind)

	_, ok = As(fmt.Errorf("plain"))
	assert.False(t, ok)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{PhoneFormat("bad"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{Conflict("x"), http.StatusConflict},
		{Wrap(ErrForbidden, "override"), http.StatusForbidden},
		{Wrap(ErrUnauthorized, "token"), http.StatusUnauthorized},
		{ErrRateLimited, http.StatusTooManyRequests},
		{ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusOf(tt.err), tt.err.Error())
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))
	err := Wrap(ErrNotFound, "customer")
	assert.Equal(t, "customer: resource not found", err.Error())
	assert.True(t, Is(err, ErrNotFound))
}
