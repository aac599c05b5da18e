package web

import (
	"net/http"
	"path"
)

func (s *Server) registerPatchRoutes(mux *http.ServeMux) {
	if s.ports.Patches == nil {
		return
	}
	mux.HandleFunc("GET /patches/api/ping/{$}", s.handlePing)
	mux.HandleFunc("GET /patches/api/list/{$}", s.handleList)
	mux.HandleFunc("GET /patches/api/prefix/{prefix}/{$}", s.handlePrefix)
	mux.HandleFunc("GET /patches/api/{package}/{$}", s.handlePatchVersions)
	mux.HandleFunc("GET /patches/api/{package}/{version}/{$}", s.handlePatchSummary)
	mux.HandleFunc("GET /patches/api/{package}/{version}/{patch...}", s.handlePatch)
}

// Path: /patches/api/{package}/?suite=
func (s *Server) handlePatchVersions(w http.ResponseWriter, r *http.Request) {
	pkg := r.PathValue("package")
	suite := r.URL.Query().Get("suite")

	result, err := s.ports.Patches.ListVersions(r.Context(), pkg, suite)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"type":     "package",
		"package":  result.Package,
		"path":     pkg,
		"suite":    suite,
		"versions": nonNil(result.Versions),
		"is_empty": result.IsEmpty,
	})
}

// handlePatchSummary lists the patch names of a version's series.
//
// Path: /patches/api/{package}/{version}/
func (s *Server) handlePatchSummary(w http.ResponseWriter, r *http.Request) {
	pkg, version := r.PathValue("package"), r.PathValue("version")
	if s.redirectVersion(w, r, "/patches/api/", pkg, version, "") {
		return
	}

	summary, err := s.ports.Patches.Summary(r.Context(), pkg, version)
	if err != nil {
		writeError(w, r, err)
		return
	}
	body := map[string]any{
		"package":   summary.Package,
		"version":   summary.Version,
		"path":      path.Join(pkg, version),
		"format":    summary.Format,
		"supported": summary.Supported,
		"patches":   summary.Names(),
	}
	if summary.SeriesPath != "" {
		body["series_path_to"] = summary.SeriesPath
	}
	writeJSON(w, http.StatusOK, body)
}

// Path: /patches/api/{package}/{version}/{patch...}
func (s *Server) handlePatch(w http.ResponseWriter, r *http.Request) {
	pkg, version, name := r.PathValue("package"), r.PathValue("version"), r.PathValue("patch")
	if s.redirectVersion(w, r, "/patches/api/", pkg, version, name) {
		return
	}

	detail, err := s.ports.Patches.Patch(r.Context(), pkg, version, name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}
