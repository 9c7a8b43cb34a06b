// Package tui provides the interactive chart form built on Bubbletea.
package tui

import (
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI uses.
type Ports struct {
	// Chart computes and saves charts. Required.
	Chart driving.ChartService

	// Subject is recorded on charts computed from the form.
	// Empty uses the configured default.
	Subject string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Chart == nil {
		return ErrMissingChartService
	}
	return nil
}
