// Package mcp provides an MCP (Model Context Protocol) server adapter for
// parallax. It lets assistants search articles, read them in any locale and
// compare translations.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

// ErrMissingCatalogueService is returned when the catalogue service is not provided.
var ErrMissingCatalogueService = errors.New("mcp: catalogue service is required")
