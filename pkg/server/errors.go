package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/treeview/pkg/errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errNotFound(format string, args ...any) error {
	return errors.New(errors.ErrCodeNotFound, format, args...)
}

func errInvalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidInput, format, args...)
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as JSON. Errors without a code are logged and
// reported as INTERNAL_ERROR without their text.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	body := errorBody{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	}
	if body.Code == "" || body.Code == string(errors.ErrCodeInternal) {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", RequestID(r.Context()),
			"err", err)
		body = errorBody{
			Code:    string(errors.ErrCodeInternal),
			Message: "internal error",
		}
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
