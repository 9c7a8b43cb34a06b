package mcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sizhu-cli/internal/core/bazi"
	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
)

func newTestServer(t *testing.T, ports *Ports) *Server {
	t.Helper()
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server
}

func TestServer_handleCalculate(t *testing.T) {
	ctx := context.Background()

	t.Run("returns four pillars for a late-night birth", func(t *testing.T) {
		server := newTestServer(t, &Ports{Chart: &mockChartService{}})

		input := CalculateInput{Gender: "male", Date: "1984-11-23", Hour: 23}
		_, output, err := server.handleCalculate(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "甲子 乙亥 壬戌 庚子", output.FullBaZi)
		assert.Equal(t, "甲子", output.Year.Name)
		assert.Equal(t, "乙", output.Month.Stem)
		assert.Equal(t, "戌", output.Day.Branch)
		assert.Equal(t, "Geng-Zi", output.Hour.Pinyin)
		assert.Equal(t, "子时", output.ShiChen)
		assert.True(t, output.DayRolledOver)
		assert.Equal(t, "1984-11-24", output.DayPillarDate)
		assert.Empty(t, output.ID)
	})

	t.Run("passes save and label through", func(t *testing.T) {
		chart := &mockChartService{}
		server := newTestServer(t, &Ports{Chart: chart})

		input := CalculateInput{
			Gender: "女", Date: "1989-11-23", Hour: 20,
			Subject: "alice", Save: true, Label: "me",
		}
		_, output, err := server.handleCalculate(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "chart-1", output.ID)
		assert.Equal(t, "female", output.Gender)
		assert.Equal(t, "己巳 乙亥 丁亥 庚戌", output.FullBaZi)
		assert.True(t, chart.lastRequest.Save)
		assert.Equal(t, "me", chart.lastRequest.Label)
		assert.Equal(t, "alice", chart.lastRequest.Subject)
		assert.Equal(t, 1989, chart.lastRequest.Year)
	})

	t.Run("invalid gender is reported before invalid date", func(t *testing.T) {
		server := newTestServer(t, &Ports{Chart: &mockChartService{}})

		input := CalculateInput{Gender: "x", Date: "not-a-date", Hour: 10}
		_, _, err := server.handleCalculate(ctx, nil, input)

		assert.ErrorIs(t, err, domain.ErrInvalidGender)
	})

	t.Run("invalid date", func(t *testing.T) {
		server := newTestServer(t, &Ports{Chart: &mockChartService{}})

		input := CalculateInput{Gender: "male", Date: "2023-02-30", Hour: 10}
		_, _, err := server.handleCalculate(ctx, nil, input)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
		assert.Contains(t, err.Error(), "invalid birth input")
	})

	t.Run("date with a time part is rejected", func(t *testing.T) {
		chart := &mockChartService{}
		server := newTestServer(t, &Ports{Chart: chart})

		input := CalculateInput{Gender: "male", Date: "1984-11-23T23:00", Hour: 10}
		_, _, err := server.handleCalculate(ctx, nil, input)

		assert.ErrorIs(t, err, domain.ErrInvalidDate)
		assert.Zero(t, chart.lastRequest)
	})

	t.Run("invalid hour", func(t *testing.T) {
		server := newTestServer(t, &Ports{Chart: &mockChartService{}})

		input := CalculateInput{Gender: "male", Date: "2023-02-28", Hour: 24}
		_, _, err := server.handleCalculate(ctx, nil, input)

		assert.ErrorIs(t, err, domain.ErrInvalidHour)
	})

	t.Run("returns error on service failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Chart: &mockChartService{err: domain.ErrRateLimited}})

		input := CalculateInput{Gender: "male", Date: "1984-11-23", Hour: 23}
		_, _, err := server.handleCalculate(ctx, nil, input)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrRateLimited)
		assert.NotContains(t, err.Error(), "invalid birth input")
	})
}

func TestServer_handleCurrent(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 11, 18, 17, 30, 0, 0, time.UTC)

	t.Run("uses the clock when no time is given", func(t *testing.T) {
		server := newTestServer(t, &Ports{Chart: &mockChartService{}})
		server.now = func() time.Time { return fixed }

		_, output, err := server.handleCurrent(ctx, nil, CurrentInput{})

		require.NoError(t, err)
		assert.Equal(t, "2025年 乙巳年 丁亥月 辛卯日 丁酉时", output.Summary)
		assert.Equal(t, "辛卯", output.Day.Name)
		assert.Equal(t, "2025-11-18T17:30:00Z", output.Time)
	})

	t.Run("parses an explicit instant", func(t *testing.T) {
		server := newTestServer(t, &Ports{Chart: &mockChartService{}})

		_, output, err := server.handleCurrent(ctx, nil, CurrentInput{Time: "2025-11-18T17:30:00Z"})

		require.NoError(t, err)
		assert.Equal(t, "丁酉", output.Hour.Name)
	})

	t.Run("rejects a malformed instant", func(t *testing.T) {
		server := newTestServer(t, &Ports{Chart: &mockChartService{}})

		_, _, err := server.handleCurrent(ctx, nil, CurrentInput{Time: "yesterday"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleHistory(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("returns saved charts", func(t *testing.T) {
		chart := &mockChartService{
			records: []domain.ChartRecord{{
				ID:        "c1",
				Subject:   "alice",
				Label:     "me",
				Chart:     mustChart(t, "male", 1984, 11, 23, 23),
				CreatedAt: created,
			}},
		}
		server := newTestServer(t, &Ports{Chart: chart})

		_, output, err := server.handleHistory(ctx, nil, HistoryInput{Subject: "alice", Limit: 5})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "c1", output.Charts[0].ID)
		assert.Equal(t, "1984-11-23", output.Charts[0].BirthDate)
		assert.Equal(t, 23, output.Charts[0].BirthHour)
		assert.Equal(t, "甲子 乙亥 壬戌 庚子", output.Charts[0].FullBaZi)
		assert.Equal(t, "2025-01-02T03:04:05Z", output.Charts[0].CreatedAt)
		assert.Equal(t, "alice", chart.lastSubject)
		assert.Equal(t, 5, chart.lastLimit)
	})

	t.Run("default limit is 20", func(t *testing.T) {
		chart := &mockChartService{}
		server := newTestServer(t, &Ports{Chart: chart})

		_, output, err := server.handleHistory(ctx, nil, HistoryInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
		assert.Equal(t, defaultHistoryLimit, chart.lastLimit)
	})

	t.Run("returns error on store failure", func(t *testing.T) {
		server := newTestServer(t, &Ports{Chart: &mockChartService{err: errors.New("disk full")}})

		_, _, err := server.handleHistory(ctx, nil, HistoryInput{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestServer_handleInterpret(t *testing.T) {
	ctx := context.Background()

	t.Run("returns reading", func(t *testing.T) {
		interp := &mockInterpretService{available: true, reading: "A water day master."}
		server := newTestServer(t, &Ports{Chart: &mockChartService{}, Interpret: interp})

		input := InterpretInput{Gender: "male", Date: "1984-11-23", Hour: 23, Question: "career?"}
		_, output, err := server.handleInterpret(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "A water day master.", output.Reading)
		assert.Equal(t, "甲子 乙亥 壬戌 庚子", output.FullBaZi)
		assert.Equal(t, "career?", interp.lastQuestion)
	})

	t.Run("unavailable without an llm", func(t *testing.T) {
		server := newTestServer(t, &Ports{Chart: &mockChartService{}})

		input := InterpretInput{Gender: "male", Date: "1984-11-23", Hour: 23}
		_, _, err := server.handleInterpret(ctx, nil, input)

		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})

	t.Run("propagates llm errors", func(t *testing.T) {
		interp := &mockInterpretService{available: true, err: errors.New("timeout")}
		server := newTestServer(t, &Ports{Chart: &mockChartService{}, Interpret: interp})

		input := InterpretInput{Gender: "male", Date: "1984-11-23", Hour: 23}
		_, _, err := server.handleInterpret(ctx, nil, input)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "timeout")
	})
}

func mustChart(t *testing.T, gender string, year, month, day, hour int) domain.FourPillars {
	t.Helper()
	in, err := domain.NewBirthInput(gender, year, month, day, hour)
	require.NoError(t, err)
	return bazi.Calculate(in)
}
