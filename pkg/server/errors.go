package server

import (
	"encoding/json"
	"errors"
	"net/http"

	errs "github.com/matzehuels/seqalign/pkg/errors"
	"github.com/matzehuels/seqalign/pkg/store"
)

type errorResponse struct {
	Error string    `json:"error"`
	Code  errs.Code `json:"code,omitempty"`
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	switch code := errs.GetCode(err); code.Class() {
	case errs.ClassInput:
		return http.StatusBadRequest
	case errs.ClassMissing:
		return http.StatusNotFound
	case errs.ClassUnavailable:
		switch code {
		case errs.ErrCodeUnsupported:
			return http.StatusUnprocessableEntity
		case errs.ErrCodeTimeout:
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: errs.UserMessage(err), Code: errs.GetCode(err)}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		resp.Error = "internal error"
	}
	if errors.Is(err, store.ErrNotFound) {
		resp.Code = errs.ErrCodeNotFound
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
