package mcp

import (
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
type Ports struct {
	// Chart computes charts and serves history.
	Chart driving.ChartService

	// Interpret reads charts through an LLM. Optional; the
	// interpret_chart tool is only registered when it is available.
	Interpret driving.InterpretService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Chart == nil {
		return ErrMissingChartService
	}
	return nil
}

func (p *Ports) canInterpret() bool {
	return p.Interpret != nil && p.Interpret.Available()
}
