package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/platewise/mealbudget-backend/internal/apperr"
)

type APIError struct {
	Error   string      `json:"error"`
	Code    string      `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string, details interface{}) {
	WriteJSON(w, status, APIError{
		Error:   msg,
		Code:    code,
		Details: details,
	})
}

// WriteServiceError maps apperr kinds onto HTTP statuses; anything
// unrecognized is a 500 with the message withheld.
func WriteServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := "internal error"
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, apperr.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		msg = apperr.ErrInvalidCredentials.Error()
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
		msg = err.Error()
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
		msg = err.Error()
	}
	WriteError(w, status, apperr.Code(err), msg, nil)
}
