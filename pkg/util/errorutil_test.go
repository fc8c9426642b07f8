package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestToDomainError_PassesThroughDomainErrors(t *testing.T) {
	t.Parallel()

	original := NewConflict("username already taken", map[string]any{"field": "username"})
	de := ToDomainError(original)
	if de.Code != "CONFLICT" || de.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("unexpected mapping: %+v", de)
	}
}

func TestToDomainError_NoRowsBecomesNotFound(t *testing.T) {
	t.Parallel()

	de := ToDomainError(pgx.ErrNoRows)
	if de.Code != "NOT_FOUND" || de.HTTPStatus != http.StatusNotFound {
		t.Fatalf("unexpected mapping: %+v", de)
	}
}

func TestToDomainError_UnknownBecomesStoreError(t *testing.T) {
	t.Parallel()

	de := ToDomainError(errors.New("connection reset"))
	if de.Code != "STORE_ERROR" || de.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping: %+v", de)
	}
	// The opaque message never carries the wrapped detail.
	if de.Message != "storage operation failed" {
		t.Fatalf("unexpected message: %q", de.Message)
	}
}

func TestFailureClassesAreDistinct(t *testing.T) {
	t.Parallel()

	missing := ToDomainError(NewUnauthenticated("missing authorization header"))
	bad := ToDomainError(NewForbidden("invalid or expired token"))

	if missing.HTTPStatus != http.StatusUnauthorized {
		t.Fatalf("absent credentials must be 401, got %d", missing.HTTPStatus)
	}
	if bad.HTTPStatus != http.StatusForbidden {
		t.Fatalf("invalid credentials must be 403, got %d", bad.HTTPStatus)
	}
	if missing.Code == bad.Code {
		t.Fatalf("error codes must differ: %q", missing.Code)
	}
}
