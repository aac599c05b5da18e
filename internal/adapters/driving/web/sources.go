package web

import (
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

func (s *Server) registerSourceRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/ping/{$}", s.handlePing)
	mux.HandleFunc("GET /api/list/{$}", s.handleList)
	mux.HandleFunc("GET /api/prefix/{prefix}/{$}", s.handlePrefix)
	mux.HandleFunc("GET /api/search/{query}/{$}", s.handleSearch)
	mux.HandleFunc("GET /api/src/{package}/{$}", s.handlePackage)
	mux.HandleFunc("GET /api/src/{package}/{version}/{path...}", s.handleSource)
	mux.HandleFunc("GET /api/code/{package}/{version}/{path...}", s.handleCode)
	mux.HandleFunc("GET /api/info/package/{package}/{version}/{$}", s.handleInfo)
	mux.HandleFunc("GET /api/sha256/{$}", s.handleChecksum)
}

// handlePing is the health check.
//
// Path: /api/ping/
func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":           "ok",
		"http_status_code": http.StatusOK,
	})
}

// Path: /api/list/
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.ports.Source.ListPackages(r.Context(), r.URL.Query().Get("suite"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"packages": nonNil(names)})
}

// Path: /api/prefix/{prefix}/?suite=
func (s *Server) handlePrefix(w http.ResponseWriter, r *http.Request) {
	prefix := r.PathValue("prefix")
	suite := r.URL.Query().Get("suite")

	names, err := s.ports.Source.PackagesByPrefix(r.Context(), prefix, suite)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"packages": nonNil(names),
		"prefix":   prefix,
		"suite":    suite,
	})
}

// handleSearch echoes the query as typed; matching is case-insensitive.
//
// Path: /api/search/{query}/?suite=
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("query")

	result, err := s.ports.Source.Search(r.Context(), query, r.URL.Query().Get("suite"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query": query,
		"results": map[string]any{
			"exact": result.Exact,
			"other": nonNil(result.Other),
		},
	})
}

// Path: /api/src/{package}/?suite=
func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	pkg := r.PathValue("package")
	suite := r.URL.Query().Get("suite")

	versions, err := s.ports.Source.ListVersions(r.Context(), pkg, suite)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"type":     "package",
		"package":  pkg,
		"path":     pkg,
		"suite":    suite,
		"versions": nonNil(versions),
	})
}

// handleSource lists a directory or describes a file. "latest" and suite
// names redirect (302) to the concrete version; symlinks pointing inside
// the version redirect (301) to their target.
//
// Path: /api/src/{package}/{version}/{path...}
func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	pkg, version, rel := r.PathValue("package"), r.PathValue("version"), r.PathValue("path")
	if s.redirectVersion(w, r, "/api/src/", pkg, version, rel) {
		return
	}

	res, err := s.ports.Source.Browse(r.Context(), pkg, version, rel)
	if err != nil {
		s.writeBrowseError(w, r, err, pkg, version, rel)
		return
	}

	switch res.Kind {
	case domain.BrowseRedirect:
		http.Redirect(w, r, withQuery("/api/src/"+escapePath(res.RedirectTo)+"/", r), http.StatusMovedPermanently)
	case domain.BrowseDirectory:
		writeJSON(w, http.StatusOK, map[string]any{
			"type":      res.Kind,
			"directory": res.Directory.Name,
			"package":   res.Package,
			"version":   res.Version,
			"content":   nonNil(res.Directory.Content),
			"path":      res.Path,
			"pkg_infos": res.Info,
		})
	default:
		writeJSON(w, http.StatusOK, map[string]any{
			"type":                 res.Kind,
			"file":                 res.File.Name,
			"package":              res.Package,
			"version":              res.Version,
			"mime":                 res.File.MIME,
			"raw_url":              res.File.RawURL,
			"path":                 res.Path,
			"text_file":            res.File.TextFile,
			"stat":                 res.File.Stat,
			"checksum":             nullable(res.File.Checksum),
			"number_of_duplicates": res.File.NumberOfDuplicates,
			"pkg_infos":            res.Info,
		})
	}
}

// handleCode renders a text file with highlighted lines and messages.
//
// Path: /api/code/{package}/{version}/{path...}?hl=&msg=&lang=
func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	pkg, version, rel := r.PathValue("package"), r.PathValue("version"), r.PathValue("path")
	if s.redirectVersion(w, r, "/api/code/", pkg, version, rel) {
		return
	}

	q := r.URL.Query()
	opts := domain.CodeOptions{
		Highlight: q.Get("hl"),
		Messages:  q["msg"],
		Lang:      q.Get("lang"),
	}
	view, err := s.ports.Source.Code(r.Context(), pkg, version, rel, opts)
	if err != nil {
		s.writeBrowseError(w, r, err, pkg, version, rel)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Path: /api/info/package/{package}/{version}/
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	pkg, version := r.PathValue("package"), r.PathValue("version")

	info, err := s.ports.Source.Info(r.Context(), pkg, version)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"package":   pkg,
		"version":   version,
		"pkg_infos": info,
	})
}

// Path: /api/sha256/?checksum=&package=
func (s *Server) handleChecksum(w http.ResponseWriter, r *http.Request) {
	if s.ports.Checksums == nil {
		writeStatus(w, http.StatusNotImplemented)
		return
	}
	q := r.URL.Query()
	checksum, pkg := q.Get("checksum"), q.Get("package")

	matches, err := s.ports.Checksums.Search(r.Context(), checksum, pkg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"checksum": checksum,
		"package":  nullable(pkg),
		"count":    len(matches),
		"results":  matches,
	})
}

// redirectVersion answers 302 when version is "latest" or a suite. It
// reports whether a response was written.
func (s *Server) redirectVersion(w http.ResponseWriter, r *http.Request, base, pkg, version, rel string) bool {
	resolved, err := s.ports.Source.ResolveVersion(r.Context(), pkg, version)
	if err != nil {
		writeError(w, r, err)
		return true
	}
	if resolved == version {
		return false
	}
	target := base + escapePath(path.Join(pkg, resolved, rel)) + "/"
	http.Redirect(w, r, withQuery(target, r), http.StatusFound)
	return true
}

// writeBrowseError turns a not-found browse into a 404 carrying the other
// versions the path exists in.
func (s *Server) writeBrowseError(w http.ResponseWriter, r *http.Request, err error, pkg, version, rel string) {
	if statusFor(err) != http.StatusNotFound {
		writeError(w, r, err)
		return
	}
	suggestions, serr := s.ports.Source.Suggest(r.Context(), pkg, version, rel)
	if serr != nil {
		log.Debug("suggestions for %s/%s/%s: %v", pkg, version, rel, serr)
	}
	writeNotFound(w, suggestions)
}

// escapePath escapes each element of a slash separated path.
func escapePath(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

func withQuery(target string, r *http.Request) string {
	if r.URL.RawQuery == "" {
		return target
	}
	return target + "?" + r.URL.RawQuery
}

// nullable maps "" to JSON null.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
