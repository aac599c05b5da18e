package web

import "net/http"

func (s *Server) registerStatsRoutes(mux *http.ServeMux) {
	if s.ports.Stats == nil {
		return
	}
	mux.HandleFunc("GET /api/stats/{$}", s.handleStats)
	mux.HandleFunc("GET /api/stats/{suite}/{$}", s.handleSuiteStats)
}

// Path: /api/stats/
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ports.Stats.Archive(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	all := make([]string, 0, len(stats.Suites))
	for _, suite := range stats.Suites {
		all = append(all, "debian_"+suite)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"all_suites": all,
		"results":    stats.Results(),
	})
}

// Path: /api/stats/{suite}/
func (s *Server) handleSuiteStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.ports.Stats.Suite(r.Context(), r.PathValue("suite"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"suite":   stats.Suite,
		"results": stats.Results(),
	})
}
