// Package mcp provides an MCP (Model Context Protocol) server adapter for
// debsources. It lets AI assistants list package versions, browse unpacked
// sources, read patch series and look licenses up.
package mcp

import "errors"

// ErrMissingSourceService is returned when the source service is not provided.
var ErrMissingSourceService = errors.New("mcp: source service is required")
