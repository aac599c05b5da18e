// Package navigation maps package/version/path triples onto the unpacked
// source mirror.
//
// The mirror is laid out as <sources>/<area>/<prefix>/<package>/<version>,
// e.g. /srv/sources/main/libc/libcaca/0.99.beta18-1. The area normally
// comes from the metadata database; versions that were dropped from the
// archive but are still on disk are found by probing each area in turn.
//
// Paths are handled as Go strings, which carry arbitrary bytes, so
// file names that are not valid UTF-8 pass through unchanged.
package navigation
