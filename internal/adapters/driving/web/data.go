package web

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
)

// handleData serves raw files from the mirror. Lookups go through an
// os.Root, so neither ".." nor symlinks can reach outside SourcesDir.
//
// Path: <SourcesStatic>/{area}/{prefix}/{package}/{version}/{path...}
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	mirror := s.mirror
	s.mu.Unlock()
	if mirror == nil {
		writeStatus(w, http.StatusServiceUnavailable)
		return
	}

	name := r.PathValue("path")
	f, err := mirror.Open(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Debug("data %s: %v", name, err)
		}
		writeStatus(w, http.StatusNotFound)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		writeStatus(w, http.StatusNotFound)
		return
	}
	http.ServeContent(w, r, path.Base(name), fi.ModTime(), f)
}
