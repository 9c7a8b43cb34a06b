package driving

import (
	"context"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

// InterpretService produces natural-language readings of a chart.
type InterpretService interface {
	// Interpret asks the configured LLM to read the chart.
	// question may be empty for a general reading.
	// Returns domain.ErrLLMUnavailable when no LLM is configured.
	Interpret(ctx context.Context, chart domain.FourPillars, question string) (string, error)

	// Available reports whether an LLM is configured.
	Available() bool
}
