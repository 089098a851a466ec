package api

import (
	"fmt"
	"net/http"
)

const serviceVersion = "1.0.0"

// handleHome responds with a plain-text liveness banner
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "%s Token Bot is running!", s.config.Token.Symbol)
}

// handleHealth reports overall status and per-service health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"service": "token-chart-bot",
		"version": serviceVersion,
		"services": map[string]string{
			"resolver": "unknown",
		},
	}

	if s.resolver.Healthy() {
		status["services"].(map[string]string)["resolver"] = "up"
	}

	s.sendJSONResponse(w, status)
}
