// Package mcp provides an MCP (Model Context Protocol) server adapter for sizhu.
// It lets AI assistants compute Four-Pillars charts and read saved chart history.
package mcp

import "errors"

// ErrMissingChartService is returned when the chart service is not provided.
var ErrMissingChartService = errors.New("mcp: chart service is required")
