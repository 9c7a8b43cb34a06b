package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sizhu-cli/internal/core/bazi"
	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driving"
	"github.com/custodia-labs/sizhu-cli/internal/logger"
)

// Ensure ChartService implements the interface.
var _ driving.ChartService = (*ChartService)(nil)

// ChartService validates requests, computes charts and keeps history.
type ChartService struct {
	store          driven.ChartStore
	cache          driven.ChartCache
	limiter        *SubjectLimiter
	defaultSubject string

	now   func() time.Time
	newID func() string
}

// NewChartService creates a new chart service.
// store may be nil when history is not needed; cache may be nil to disable caching.
func NewChartService(
	store driven.ChartStore,
	cache driven.ChartCache,
	settings domain.AppSettings,
) *ChartService {
	subject := settings.Subject
	if subject == "" {
		subject = domain.DefaultSubject
	}
	return &ChartService{
		store:          store,
		cache:          cache,
		limiter:        NewSubjectLimiter(settings.RateLimit),
		defaultSubject: subject,
		now:            time.Now,
		newID:          func() string { return uuid.New().String() },
	}
}

// Calculate validates the request and computes the chart.
func (s *ChartService) Calculate(ctx context.Context, req driving.ChartRequest) (*domain.ChartRecord, error) {
	logger.Section("Chart Calculation")
	logger.Debug("Input: gender=%q date=%04d-%02d-%02d hour=%d",
		req.Gender, req.Year, req.Month, req.Day, req.Hour)

	in, err := domain.NewBirthInput(req.Gender, req.Year, req.Month, req.Day, req.Hour)
	if err != nil {
		logger.Debug("Rejected input: %v", err)
		return nil, err
	}

	subject := req.Subject
	if subject == "" {
		subject = s.defaultSubject
	}
	if !s.limiter.Allow(subject) {
		logger.Warn("Rate limit exceeded for subject %q", subject)
		return nil, fmt.Errorf("%w: subject %q", domain.ErrRateLimited, subject)
	}

	chart := s.compute(in)
	logger.Info("Chart: %s", chart.FullBaZi())

	record := &domain.ChartRecord{
		Subject: subject,
		Label:   req.Label,
		Chart:   chart,
	}

	if !req.Save {
		return record, nil
	}
	if s.store == nil {
		return nil, errors.New("chart store not configured")
	}

	record.ID = s.newID()
	record.CreatedAt = s.now().UTC()
	if err := s.store.Save(ctx, *record); err != nil {
		return nil, fmt.Errorf("save chart: %w", err)
	}
	logger.Debug("Saved chart %s", record.ID)

	return record, nil
}

// compute returns the chart for in, consulting the cache first.
func (s *ChartService) compute(in domain.BirthInput) domain.FourPillars {
	if s.cache == nil {
		return bazi.Calculate(in)
	}

	key := in.Key()
	if chart, ok := s.cache.Get(key); ok {
		logger.Debug("Cache hit: %s", key)
		return chart
	}

	chart := bazi.Calculate(in)
	s.cache.Put(key, chart)
	logger.Debug("Cache miss: %s (%d cached)", key, s.cache.Len())
	return chart
}

// Now returns the pillars of the given instant.
func (s *ChartService) Now(_ context.Context, t time.Time) domain.Moment {
	return bazi.MomentAt(t)
}

// History lists saved charts for a subject, newest first.
func (s *ChartService) History(ctx context.Context, subject string, limit int) ([]domain.ChartRecord, error) {
	if s.store == nil {
		return nil, errors.New("chart store not configured")
	}
	records, err := s.store.List(ctx, subject, limit)
	if err != nil {
		return nil, fmt.Errorf("list charts: %w", err)
	}
	return records, nil
}

// Get retrieves a saved chart by ID.
func (s *ChartService) Get(ctx context.Context, id string) (*domain.ChartRecord, error) {
	if s.store == nil {
		return nil, errors.New("chart store not configured")
	}
	if id == "" {
		return nil, fmt.Errorf("%w: empty chart id", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// Delete removes a saved chart.
func (s *ChartService) Delete(ctx context.Context, id string) error {
	if s.store == nil {
		return errors.New("chart store not configured")
	}
	if id == "" {
		return fmt.Errorf("%w: empty chart id", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}
