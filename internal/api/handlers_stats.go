package api

import (
	"net/http"
)

func (s *Server) handleConvertStats(w http.ResponseWriter, r *http.Request) {
	conv := s.orchestrator.Converter()
	if conv == nil || conv.Stats == nil {
		jsonError(w, "conversion stats unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"language":    conv.Language,
		"queue_depth": s.orchestrator.QueueDepth(),
		"stats":       conv.Stats.Snapshot(),
	})
}
