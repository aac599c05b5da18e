package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/custodia-labs/debsources/internal/core/domain"
)

// maxBatchChecksums bounds the checksums of one batch lookup.
const maxBatchChecksums = 256

func (s *Server) registerCopyrightRoutes(mux *http.ServeMux) {
	if s.ports.Copyright == nil {
		return
	}
	mux.HandleFunc("GET /copyright/api/ping/{$}", s.handlePing)
	mux.HandleFunc("GET /copyright/api/list/{$}", s.handleList)
	mux.HandleFunc("GET /copyright/api/prefix/{prefix}/{$}", s.handlePrefix)
	mux.HandleFunc("GET /copyright/api/license/{package}/{version}/{$}", s.handleLicense)
	mux.HandleFunc("GET /copyright/api/file/{package}/{version}/{path...}", s.handleFileLicense)
	mux.HandleFunc("GET /copyright/api/sha256/{$}", s.handleChecksumLicense)
	mux.HandleFunc("POST /copyright/api/sha256/{$}", s.handleChecksumLicenseBatch)
}

// Path: /copyright/api/license/{package}/{version}/
func (s *Server) handleLicense(w http.ResponseWriter, r *http.Request) {
	pkg, version := r.PathValue("package"), r.PathValue("version")
	if s.redirectVersion(w, r, "/copyright/api/license/", pkg, version, "") {
		return
	}

	view, err := s.ports.Copyright.License(r.Context(), pkg, version)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleFileLicense reports the license of one file. The version "all"
// covers every version holding the file.
//
// Path: /copyright/api/file/{package}/{version}/{path...}
func (s *Server) handleFileLicense(w http.ResponseWriter, r *http.Request) {
	pkg, version, rel := r.PathValue("package"), r.PathValue("version"), r.PathValue("path")
	if !strings.EqualFold(version, domain.SuiteAll) &&
		s.redirectVersion(w, r, "/copyright/api/file/", pkg, version, rel) {
		return
	}

	licenses, err := s.ports.Copyright.FileLicenses(r.Context(), pkg, version, rel)
	if err != nil {
		writeError(w, r, err)
		return
	}
	result := make([]map[string]any, 0, len(licenses))
	for _, l := range licenses {
		result = append(result, map[string]any{"copyright": l})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"package": pkg,
		"version": version,
		"path":    strings.Trim(rel, "/"),
		"result":  result,
	})
}

// Path: /copyright/api/sha256/?checksum=&package=&suite=
func (s *Server) handleChecksumLicense(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	checksum, pkg, suite := q.Get("checksum"), q.Get("package"), q.Get("suite")

	licenses, err := s.ports.Copyright.ChecksumLicenses(r.Context(), checksum, pkg, suite)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(licenses) == 0 {
		writeStatus(w, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"checksum": checksum,
		"package":  nullable(pkg),
		"suite":    nullable(suite),
		"count":    len(licenses),
		"result":   map[string]any{"copyright": licenses},
	})
}

// handleChecksumLicenseBatch looks up several checksums at once. Unknown
// or malformed checksums are reported with a count of 0.
//
// Path: POST /copyright/api/sha256/ (form: checksums, package, suite)
func (s *Server) handleChecksumLicenseBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeStatus(w, http.StatusBadRequest)
		return
	}
	checksums := r.PostForm["checksums"]
	if len(checksums) == 0 || len(checksums) > maxBatchChecksums {
		writeStatus(w, http.StatusBadRequest)
		return
	}
	pkg, suite := r.PostForm.Get("package"), r.PostForm.Get("suite")

	result := make([]map[string]any, 0, len(checksums))
	for _, checksum := range checksums {
		licenses, err := s.ports.Copyright.ChecksumLicenses(r.Context(), checksum, pkg, suite)
		if err != nil && !errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, r, err)
			return
		}
		result = append(result, map[string]any{
			"checksum":  checksum,
			"count":     len(licenses),
			"copyright": nonNil(licenses),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}
