package driven

import (
	"context"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

// ChartStore persists saved charts.
// Backed by SQLite for local storage.
type ChartStore interface {
	// Save stores or updates a chart record.
	Save(ctx context.Context, record domain.ChartRecord) error

	// Get retrieves a chart record by ID.
	// Returns domain.ErrNotFound if no record has that ID.
	Get(ctx context.Context, id string) (*domain.ChartRecord, error)

	// List returns records for a subject, newest first.
	// An empty subject lists every record. limit <= 0 means no limit.
	List(ctx context.Context, subject string, limit int) ([]domain.ChartRecord, error)

	// Delete removes a chart record.
	// Returns domain.ErrNotFound if no record has that ID.
	Delete(ctx context.Context, id string) error
}

// ChartCache memoises computed charts keyed by domain.BirthInput.Key.
// Implementations must be safe for concurrent use.
type ChartCache interface {
	// Get returns the cached chart for key, if present.
	Get(key string) (domain.FourPillars, bool)

	// Put stores a chart under key, evicting older entries as needed.
	Put(key string, chart domain.FourPillars)

	// Len returns the number of cached charts.
	Len() int
}
