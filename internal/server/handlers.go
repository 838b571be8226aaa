package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-playground/validator/v10"

	"facultyscout/internal/pipeline"
	"facultyscout/internal/types"
)

// handleMatch runs one matching pipeline and streams progress via SSE. The
// stream carries step events for each stage transition, then either a result
// event followed by a done marker, or a single terminal error event.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := pipeline.Options{
		Client:          s.client,
		ProfileText:     req.ProfileText,
		TargetCountries: req.TargetCountries,
		SearchBreadth:   s.cfg.SearchBreadth,
		BatchSize:       s.cfg.BatchSize,
		EnrichPages:     s.cfg.EnrichPages,
		UseBrowser:      s.cfg.UseBrowser,
		OnEvent: func(ev pipeline.Event) {
			if err := sse.WriteEvent("step", ev); err != nil {
				log.Printf("Error writing SSE event: %v", err)
			}
		},
	}

	// The pipeline runs on the request context: a client disconnect cancels
	// in-flight upstream calls.
	matches, err := pipeline.Run(r.Context(), opts)
	if err != nil {
		log.Printf("Pipeline run failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	if err := sse.WriteEvent("result", map[string]any{"matches": matches}); err != nil {
		log.Printf("Error writing SSE result: %v", err)
		return
	}
	sse.WriteDone()
}

// handleHealth reports server liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// errorResponse writes a JSON error with the given status code.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// validationMessage maps validator failures to caller-facing messages.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Invalid request"
	}

	fe := fieldErrs[0]
	switch fe.StructField() {
	case "ProfileText":
		return "Profile text is required"
	case "TargetCountries":
		return "Target countries must be ISO 3166-1 alpha-2 codes"
	default:
		return "Invalid request"
	}
}
