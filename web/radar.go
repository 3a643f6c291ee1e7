// ABOUTME: Radar API handler
// ABOUTME: Sponsor hiring news search backed by the cached feed service
package web

import (
	"net/http"

	"github.com/harperreed/outreach/radar"
)

func (s *Server) handleRadar(w http.ResponseWriter, r *http.Request) {
	if s.radar == nil {
		writeError(w, http.StatusServiceUnavailable, "radar service not configured")
		return
	}

	query := r.URL.Query().Get("query")
	items, err := s.radar.Search(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to fetch news: %v", err)
		return
	}
	if items == nil {
		items = []radar.NewsItem{}
	}
	writeJSON(w, http.StatusOK, items)
}
