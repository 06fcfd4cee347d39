package cli

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mchmarny/churnpulse/pkg/customer"
	"github.com/mchmarny/churnpulse/pkg/engine"
	"github.com/mchmarny/churnpulse/pkg/view"
)

const maxRequestBytes = 1 << 16

type errorResponse struct {
	Error string        `json:"error"`
	Kind  customer.Kind `json:"kind,omitempty"`
	Field string        `json:"field,omitempty"`
}

type checkResponse struct {
	Field   string `json:"field"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// discardSink is used by sessions that never render, e.g. field checks.
var discardSink = engine.SinkFunc(func(view.Model) error { return nil })

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func predictAPIHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc map[string]any
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&doc); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		m, err := eng.Evaluate(toInput(doc))
		if err != nil {
			if ve, ok := customer.AsValidationError(err); ok {
				writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
					Error: ve.Message,
					Kind:  ve.Kind,
					Field: ve.Field,
				})
				return
			}
			slog.Error("prediction failed", "error", err)
			writeError(w, http.StatusInternalServerError, "prediction failed")
			return
		}

		writeJSON(w, http.StatusOK, m)
	}
}

func checkAPIHandler(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		field := r.URL.Query().Get("field")
		if field == "" {
			writeError(w, http.StatusBadRequest, "field required")
			return
		}

		res := checkResponse{Field: field}
		s, err := eng.NewSession(discardSink, engine.NotifierFunc(func(msg string, _ engine.Severity) {
			res.Message = msg
		}))
		if err != nil {
			slog.Error("failed to create session", "error", err)
			writeError(w, http.StatusInternalServerError, "check failed")
			return
		}

		res.Valid = s.Check(field, r.URL.Query().Get("value"))
		writeJSON(w, http.StatusOK, res)
	}
}
