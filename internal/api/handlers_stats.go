package api

import (
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"books":       s.indexer.Books().Len(),
		"queue_depth": s.orchestrator.QueueDepth(),
		"build":       s.indexer.Stats().Snapshot(),
	})
}
