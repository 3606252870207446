package httpx

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/platewise/mealbudget-backend/internal/apperr"
)

func TestWriteServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperr.Validation("email required"), 400, "validation_error"},
		{"credentials", apperr.ErrInvalidCredentials, 401, "invalid_credentials"},
		{"not found", apperr.NotFound("dish 7"), 404, "not_found"},
		{"conflict", apperr.Conflict("email taken"), 409, "conflict"},
		{"internal", errors.New("pg down"), 500, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteServiceError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status: got %d, want %d", rec.Code, tt.wantStatus)
			}
			var body APIError
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Errorf("code: got %s, want %s", body.Code, tt.wantCode)
			}
		})
	}
}

// Internal errors must not leak their message to the client.
func TestInternalErrorMessageWithheld(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServiceError(rec, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	var body APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "internal error" {
		t.Errorf("leaked message: %q", body.Error)
	}
}
