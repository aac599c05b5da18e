package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCopyright = `Format: https://www.debian.org/doc/packaging-manuals/copyright-format/1.0/
Upstream-Name: GNU Backgammon

Files: *
Copyright: 1997-2003 Gary Wong
License: GPL-2+

Files: src/*
Copyright: 2002 Joern Thyssen
License: GPL-3+ or Bitstream-Vera

License: Bitstream-Vera
 Permission is hereby granted.
`

// readmeSum is the sha256 of the README of gnubg 1.02.000-2.
const readmeSum = "99bb4326dfed91112f9d04c12ba6311146c8c2c03150790a40c3d0d4b3edf47f"

func TestServer_CopyrightPing(t *testing.T) {
	s := setupServer(t)

	body := getJSON(t, s, "/copyright/api/ping/", http.StatusOK)
	assert.Equal(t, "ok", body["status"])
}

func TestServer_License(t *testing.T) {
	s := setupServer(t)

	body := getJSON(t, s, "/copyright/api/license/gnubg/1.02.000-2/", http.StatusOK)
	assert.Equal(t, true, body["machine_readable"])
	assert.Equal(t, "GNU Backgammon", body["upstream_name"])
	files := body["files"].([]any)
	require.Len(t, files, 2)
	src := files[1].(map[string]any)
	assert.Equal(t, "GPL-3+ or Bitstream-Vera", src["license"])
	licenses := body["licenses"].([]any)
	require.Len(t, licenses, 1)
	assert.Equal(t, "Bitstream-Vera", licenses[0].(map[string]any)["synopsis"])

	rec := get(t, s, "/copyright/api/license/gnubg/latest/")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/copyright/api/license/gnubg/1.06.002-1/", rec.Header().Get("Location"))

	getJSON(t, s, "/copyright/api/license/gnubg/1.06.002-1/", http.StatusNotFound)
	getJSON(t, s, "/copyright/api/license/gnubg/9.9/", http.StatusNotFound)
}

func TestServer_FileLicense(t *testing.T) {
	s := setupServer(t)

	body := getJSON(t, s, "/copyright/api/file/gnubg/1.02.000-2/src/main.c/", http.StatusOK)
	result := body["result"].([]any)
	require.Len(t, result, 1)
	c := result[0].(map[string]any)["copyright"].(map[string]any)
	assert.Equal(t, "GPL-3+ or Bitstream-Vera", c["license"])
	assert.Equal(t, "src/main.c", c["path"])

	body = getJSON(t, s, "/copyright/api/file/gnubg/all/README/", http.StatusOK)
	result = body["result"].([]any)
	require.Len(t, result, 2)
	byVersion := map[string]any{}
	for _, r := range result {
		c := r.(map[string]any)["copyright"].(map[string]any)
		byVersion[c["version"].(string)] = c["license"]
	}
	assert.Equal(t, "GPL-2+", byVersion["1.02.000-2"])
	assert.Nil(t, byVersion["1.06.002-1"])

	rec := get(t, s, "/copyright/api/file/gnubg/jessie/README")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/copyright/api/file/gnubg/1.02.000-2/README/", rec.Header().Get("Location"))
}

func TestServer_ChecksumLicense(t *testing.T) {
	s := setupServer(t)

	body := getJSON(t, s, "/copyright/api/sha256/?checksum="+readmeSum+"&package=gnubg", http.StatusOK)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, "gnubg", body["package"])
	matches := body["result"].(map[string]any)["copyright"].([]any)
	require.Len(t, matches, 1)
	assert.Equal(t, "GPL-2+", matches[0].(map[string]any)["license"])

	getJSON(t, s, "/copyright/api/sha256/?checksum="+readmeSum+"&suite=sid", http.StatusNotFound)
	getJSON(t, s, "/copyright/api/sha256/?checksum=nope", http.StatusBadRequest)
}

func TestServer_ChecksumLicenseBatch(t *testing.T) {
	s := setupServer(t)

	post := func(form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/copyright/api/sha256/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		return rec
	}

	rec := post(url.Values{"checksums": {readmeSum, "nope"}, "suite": {"jessie"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"result":[
		{"checksum":"`+readmeSum+`","count":1,"copyright":[
			{"package":"gnubg","version":"1.02.000-2","path":"README","license":"GPL-2+"}]},
		{"checksum":"nope","count":0,"copyright":[]}]}`, rec.Body.String())

	rec = post(url.Values{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
