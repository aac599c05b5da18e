// Package file provides the TOML-backed configuration store.
//
// Values are read and written with dotted keys such as "sources.dir" and
// stored on disk as nested TOML tables.
package file
