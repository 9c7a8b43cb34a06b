package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

// ChartRequest carries unvalidated scalar birth inputs from an adapter.
type ChartRequest struct {
	// Gender is a male or female designator, e.g. "male", "f", "女".
	Gender string

	// Year, Month, Day form a Gregorian date.
	Year  int
	Month int
	Day   int

	// Hour is the hour of birth, 0..23.
	Hour int

	// Subject identifies the requester for rate limiting and history.
	// Empty uses the configured default subject.
	Subject string

	// Label names the chart when saved.
	Label string

	// Save persists the chart as a ChartRecord.
	Save bool
}

// ChartService computes and manages Four-Pillars charts.
type ChartService interface {
	// Calculate validates the request and computes the chart.
	// The returned record has an ID and CreatedAt only when req.Save is set.
	Calculate(ctx context.Context, req ChartRequest) (*domain.ChartRecord, error)

	// Now returns the pillars of the given instant.
	Now(ctx context.Context, t time.Time) domain.Moment

	// History lists saved charts for a subject, newest first.
	// An empty subject lists all charts.
	History(ctx context.Context, subject string, limit int) ([]domain.ChartRecord, error)

	// Get retrieves a saved chart by ID.
	Get(ctx context.Context, id string) (*domain.ChartRecord, error)

	// Delete removes a saved chart.
	Delete(ctx context.Context, id string) error
}
