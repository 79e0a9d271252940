package http

import (
	"log/slog"
	"net/http"
)

// handleDashboard serves the aggregated overview. Payloads are cached per
// user for a short window and dropped on any write for that user, so a
// dashboard reload right after a write always reflects it.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	key := s.overviewCacheKey(uid)
	if overview, found := s.overviewCache.Get(key); found {
		slog.DebugContext(r.Context(), "Overview cache hit", "user_id", uid)
		writeJSON(w, http.StatusOK, overview)
		return
	}

	overview, err := s.ledger.Aggregate(r.Context(), uid)
	if err != nil {
		writeError(w, r, err)
		return
	}

	s.overviewCache.Set(key, overview)
	writeJSON(w, http.StatusOK, overview)
}
