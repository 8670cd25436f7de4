package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassesThrough(t *testing.T) {
	err := NewValidationError("title required", map[string]any{"field": "title"})

	mapped := ToDomainError(err)
	require.NotNil(t, mapped)
	assert.Equal(t, "VALIDATION_FAILED", mapped.Code)
	assert.Equal(t, http.StatusBadRequest, mapped.HTTPStatus)
}

func TestToDomainErrorMapsMissingRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, mapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	mapped := ToDomainError(errors.New("boom"))
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}

func TestStoreUnavailableWraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreUnavailable(cause)

	mapped := ToDomainError(err)
	require.NotNil(t, mapped)
	assert.Equal(t, "STORE_UNAVAILABLE", mapped.Code)
	assert.Equal(t, http.StatusServiceUnavailable, mapped.HTTPStatus)
	assert.ErrorIs(t, err, cause)
}

func TestReferentialErrorDetails(t *testing.T) {
	err := NewReferentialError("category", map[string]any{"category_id": "c-1"})

	mapped := ToDomainError(err)
	require.NotNil(t, mapped)
	assert.Equal(t, "REFERENCE_NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusUnprocessableEntity, mapped.HTTPStatus)
	assert.Equal(t, "c-1", mapped.Details["category_id"])
}
