package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"notifyd/internal/engine"
	"notifyd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// statusFor maps engine errors to HTTP status codes.
func statusFor(err error) int {
	var he HTTPError
	switch {
	case engine.IsUnknownTopic(err):
		return http.StatusNotFound
	case engine.IsDuplicateTopic(err):
		return http.StatusConflict
	case engine.IsInvalidValue(err), engine.IsInvalidTopicName(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrEngineClosed):
		return http.StatusServiceUnavailable
	case errors.As(err, &he):
		return he.StatusCode()
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSONError(w, statusFor(err), err.Error())
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	errorResponsesTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
