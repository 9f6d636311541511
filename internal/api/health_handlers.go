package api

import (
	"net/http"

	"github.com/vytor/wortflash/internal/logger"
)

// handleHealth is the liveness probe. It always returns 200 OK.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// handleReady runs every readiness check and returns 503 on the first failure.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	for _, check := range s.ReadyChecks {
		if err := check.Fn(r.Context()); err != nil {
			log.Warn("readiness check failed - %s: %v", check.Name, err)
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(check.Name + " unavailable"))
			return
		}
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Ready"))
}
