// Package web serves the debsources JSON API over HTTP.
//
// Sources routes live under /api/, patch routes under /patches/api/ and
// raw mirror files under the configured static prefix (default /data).
// Every response carries an X-Request-ID header; requests over the
// per-client rate limit get 429.
package web
