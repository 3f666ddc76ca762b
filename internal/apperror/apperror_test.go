package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *Error
		status int
		label  string
	}{
		{"bad request", BadRequest("bad %s", "input"), http.StatusBadRequest, "Bad Request"},
		{"unauthorized", Unauthorized("no"), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", Forbidden("no"), http.StatusForbidden, "Forbidden"},
		{"not found", NotFound("missing"), http.StatusNotFound, "Not Found"},
		{"conflict", Conflict("limit greater than %d.", 50), http.StatusConflict, "Conflict"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.label, tt.err.Label())
		})
	}

	assert.Equal(t, "limit greater than 50.", Conflict("limit greater than %d.", 50).Error())
}

func TestInternalHidesCause(t *testing.T) {
	cause := errors.New("connection reset by peer")
	err := Internal(cause)

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.NotContains(t, err.Error(), "connection reset")
	assert.ErrorIs(t, err, cause)
}

func TestAsAndStatusOf(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NotFound("gone"))

	e, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "gone", e.Message)
	assert.Equal(t, http.StatusNotFound, StatusOf(wrapped))
	assert.True(t, Is(wrapped, http.StatusNotFound))
	assert.False(t, Is(wrapped, http.StatusConflict))

	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}
