package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matst80/slask-storefront/pkg/types"
	"go.uber.org/zap"
)

// StatusError carries the response status for a handler failure.
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	return e.Err.Error()
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

func BadRequest(err error) error {
	return &StatusError{Code: http.StatusBadRequest, Err: err}
}

// JsonHandler resolves the session and runs fn. A returned error is written as
// the response status, so fn must not write a body before failing.
func JsonHandler(trk types.Tracking, logger *zap.Logger, fn func(w http.ResponseWriter, r *http.Request, sessionId string, enc *json.Encoder) error) http.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			RespondToOptions(w, r)
			return
		}
		sessionId := HandleSessionCookie(trk, w, r)
		w.Header().Set("Content-Type", "application/json")

		err := fn(w, r, sessionId, json.NewEncoder(w))
		if err == nil {
			return
		}
		code := http.StatusInternalServerError
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			code = statusErr.Code
		}
		if code >= http.StatusInternalServerError {
			logger.Error("error handling request", zap.String("path", r.URL.Path), zap.Error(err))
		} else {
			logger.Debug("rejected request", zap.String("path", r.URL.Path), zap.Error(err))
		}
		http.Error(w, err.Error(), code)
	}
}

func RespondToOptions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	origin := r.Header.Get("Origin")
	if origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Max-Age", "86400")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	w.Header().Set("Age", "0")
	w.WriteHeader(http.StatusAccepted)
}
