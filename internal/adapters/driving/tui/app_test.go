package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sizhu-cli/internal/core/bazi"
	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driving"
)

// mockChartService runs the real engine and records requests.
type mockChartService struct {
	err      error
	requests []driving.ChartRequest
}

func (m *mockChartService) Calculate(_ context.Context, req driving.ChartRequest) (*domain.ChartRecord, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	chart, err := bazi.CalculateRaw(req.Gender, req.Year, req.Month, req.Day, req.Hour)
	if err != nil {
		return nil, err
	}
	record := &domain.ChartRecord{Subject: req.Subject, Chart: chart}
	if req.Save {
		record.ID = "saved-1"
	}
	return record, nil
}

func (m *mockChartService) Now(_ context.Context, t time.Time) domain.Moment {
	return bazi.MomentAt(t)
}

func (m *mockChartService) History(context.Context, string, int) ([]domain.ChartRecord, error) {
	return nil, nil
}

func (m *mockChartService) Get(context.Context, string) (*domain.ChartRecord, error) {
	return nil, domain.ErrNotFound
}

func (m *mockChartService) Delete(context.Context, string) error {
	return nil
}

func newTestApp(t *testing.T, svc *mockChartService) *App {
	t.Helper()
	app, err := NewApp(&Ports{Chart: svc, Subject: "tester"})
	require.NoError(t, err)
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

func typeText(app *App, text string) {
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func press(app *App, k tea.KeyType) tea.Cmd {
	_, cmd := app.Update(tea.KeyMsg{Type: k})
	return cmd
}

// fillForm types a full birth into the form and leaves focus on the hour.
func fillForm(app *App, gender, date, hour string) {
	typeText(app, gender)
	press(app, tea.KeyTab)
	typeText(app, date)
	press(app, tea.KeyTab)
	typeText(app, hour)
}

// run executes a command and feeds its message back into the app.
func run(t *testing.T, app *App, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	app.Update(cmd())
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(&Ports{Chart: &mockChartService{}})

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.FieldGender, app.Focus())
	assert.Nil(t, app.Record())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingChartService)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, err := NewApp(&Ports{Chart: &mockChartService{}})
	require.NoError(t, err)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Same(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_Init(t *testing.T) {
	app, err := NewApp(&Ports{Chart: &mockChartService{}})
	require.NoError(t, err)

	assert.NotNil(t, app.Init())
}

func TestApp_FocusNavigation(t *testing.T) {
	app := newTestApp(t, &mockChartService{})

	press(app, tea.KeyTab)
	assert.Equal(t, messages.FieldDate, app.Focus())

	press(app, tea.KeyDown)
	assert.Equal(t, messages.FieldHour, app.Focus())

	press(app, tea.KeyTab)
	assert.Equal(t, messages.FieldGender, app.Focus())

	press(app, tea.KeyShiftTab)
	assert.Equal(t, messages.FieldHour, app.Focus())
}

func TestApp_ComputeChart(t *testing.T) {
	svc := &mockChartService{}
	app := newTestApp(t, svc)

	fillForm(app, "male", "1984-11-23", "23")
	cmd := press(app, tea.KeyEnter)
	assert.True(t, app.Computing())

	run(t, app, cmd)

	assert.False(t, app.Computing())
	require.NoError(t, app.Err())
	require.NotNil(t, app.Record())
	assert.Equal(t, "甲子 乙亥 壬戌 庚子", app.Record().Chart.FullBaZi())

	require.Len(t, svc.requests, 1)
	assert.Equal(t, driving.ChartRequest{
		Gender: "male", Year: 1984, Month: 11, Day: 23, Hour: 23, Subject: "tester",
	}, svc.requests[0])

	view := app.View()
	assert.Contains(t, view, "壬")
	assert.Contains(t, view, "Ren-Xu")
	assert.Contains(t, view, "day pillar from 1984-11-24")
	assert.Equal(t, status.StateDone, app.bar.State())
}

func TestApp_SaveChart(t *testing.T) {
	svc := &mockChartService{}
	app := newTestApp(t, svc)

	fillForm(app, "女", "1989-11-23", "20")
	run(t, app, press(app, tea.KeyCtrlS))

	require.NotNil(t, app.Record())
	assert.Equal(t, "saved-1", app.Record().ID)
	assert.True(t, svc.requests[0].Save)
	assert.Equal(t, status.StateSaved, app.bar.State())
	assert.Contains(t, app.View(), "Saved saved-1")
}

func TestApp_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		gender string
		date   string
		hour   string
		want   error
	}{
		{name: "gender first", gender: "x", date: "bad", hour: "99", want: domain.ErrInvalidGender},
		{name: "bad date", gender: "m", date: "2023-02-30", hour: "1", want: domain.ErrInvalidDate},
		{name: "non-numeric hour", gender: "f", date: "2000-01-01", hour: "ab", want: domain.ErrInvalidHour},
		{name: "empty hour", gender: "f", date: "2000-01-01", hour: "", want: domain.ErrInvalidHour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockChartService{}
			app := newTestApp(t, svc)

			fillForm(app, tt.gender, tt.date, tt.hour)
			cmd := press(app, tea.KeyEnter)

			assert.Nil(t, cmd)
			assert.ErrorIs(t, app.Err(), tt.want)
			assert.Empty(t, svc.requests)
			assert.Equal(t, status.StateError, app.bar.State())
		})
	}
}

func TestApp_HourOutOfRangeRejectedByService(t *testing.T) {
	app := newTestApp(t, &mockChartService{})

	fillForm(app, "m", "2000-01-01", "24")
	run(t, app, press(app, tea.KeyEnter))

	assert.ErrorIs(t, app.Err(), domain.ErrInvalidHour)
	assert.Nil(t, app.Record())
}

func TestApp_ServiceError(t *testing.T) {
	app := newTestApp(t, &mockChartService{err: domain.ErrRateLimited})

	fillForm(app, "m", "2000-01-01", "5")
	run(t, app, press(app, tea.KeyEnter))

	assert.ErrorIs(t, app.Err(), domain.ErrRateLimited)
	assert.Contains(t, app.View(), "rate limited")
}

func TestApp_Reset(t *testing.T) {
	app := newTestApp(t, &mockChartService{})

	fillForm(app, "male", "1984-11-23", "23")
	run(t, app, press(app, tea.KeyEnter))
	require.NotNil(t, app.Record())

	press(app, tea.KeyCtrlR)

	assert.Nil(t, app.Record())
	assert.NoError(t, app.Err())
	assert.Equal(t, messages.FieldGender, app.Focus())
	for _, f := range app.fields {
		assert.Empty(t, f.Value())
	}
}

func TestApp_Quit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		app := newTestApp(t, &mockChartService{})

		cmd := press(app, k)

		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestApp_IgnoresSubmitWhileComputing(t *testing.T) {
	svc := &mockChartService{}
	app := newTestApp(t, svc)

	fillForm(app, "male", "1984-11-23", "23")
	first := press(app, tea.KeyEnter)
	second := press(app, tea.KeyEnter)

	assert.NotNil(t, first)
	assert.Nil(t, second)
}

func TestApp_ErrorMessageClearsOnSuccess(t *testing.T) {
	app := newTestApp(t, &mockChartService{})
	app.Update(messages.ChartCompleted{Err: errors.New("boom")})
	require.Error(t, app.Err())

	fillForm(app, "male", "1984-11-23", "23")
	run(t, app, press(app, tea.KeyEnter))

	assert.NoError(t, app.Err())
}
