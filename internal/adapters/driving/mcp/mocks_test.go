package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/sizhu-cli/internal/core/bazi"
	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driving"
)

// mockChartService is a mock implementation of driving.ChartService.
// Calculate runs the real engine so outputs are genuine charts.
type mockChartService struct {
	records []domain.ChartRecord
	record  *domain.ChartRecord
	err     error

	lastRequest driving.ChartRequest
	lastSubject string
	lastLimit   int
}

func (m *mockChartService) Calculate(_ context.Context, req driving.ChartRequest) (*domain.ChartRecord, error) {
	m.lastRequest = req
	if m.err != nil {
		return nil, m.err
	}
	chart, err := bazi.CalculateRaw(req.Gender, req.Year, req.Month, req.Day, req.Hour)
	if err != nil {
		return nil, err
	}
	record := &domain.ChartRecord{Subject: req.Subject, Label: req.Label, Chart: chart}
	if req.Save {
		record.ID = "chart-1"
	}
	return record, nil
}

func (m *mockChartService) Now(_ context.Context, t time.Time) domain.Moment {
	return bazi.MomentAt(t)
}

func (m *mockChartService) History(_ context.Context, subject string, limit int) ([]domain.ChartRecord, error) {
	m.lastSubject = subject
	m.lastLimit = limit
	return m.records, m.err
}

func (m *mockChartService) Get(_ context.Context, _ string) (*domain.ChartRecord, error) {
	return m.record, m.err
}

func (m *mockChartService) Delete(_ context.Context, _ string) error {
	return m.err
}

// mockInterpretService is a mock implementation of driving.InterpretService.
type mockInterpretService struct {
	available bool
	reading   string
	err       error

	lastQuestion string
}

func (m *mockInterpretService) Interpret(_ context.Context, _ domain.FourPillars, question string) (string, error) {
	m.lastQuestion = question
	return m.reading, m.err
}

func (m *mockInterpretService) Available() bool {
	return m.available
}
