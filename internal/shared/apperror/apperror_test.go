package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"contractor-erp/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its code and status", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", apperror.ErrConflict)

		httpErr := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Equal(t, apperror.CodeConflict, httpErr.Code)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		httpErr := apperror.ToHTTP(errors.New("pq: connection reset"))

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, apperror.CodeInternalError, httpErr.Code)
		assert.NotContains(t, httpErr.Message, "pq")
	})
}

func TestAppError_IsMatchesWrappedSentinel(t *testing.T) {
	wrapped := apperror.ErrNotFound.WithCause(errors.New("record not found"))

	assert.True(t, errors.Is(wrapped, apperror.ErrNotFound))
	assert.False(t, errors.Is(wrapped, apperror.ErrConflict))
	assert.True(t, apperror.Is(wrapped, apperror.CodeNotFound))
}

func TestInternal(t *testing.T) {
	assert.Nil(t, apperror.Internal(nil))

	err := apperror.Internal(errors.New("boom"))
	assert.True(t, apperror.Is(err, apperror.CodeInternalError))

	// already typed errors pass through untouched
	assert.Same(t, apperror.ErrConflict, apperror.Internal(apperror.ErrConflict))
}
