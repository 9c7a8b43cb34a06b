package cli

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/tui"
)

// fakeProgram records the model instead of taking over the terminal.
type fakeProgram struct {
	model tea.Model
	err   error
}

func (p *fakeProgram) Run() (tea.Model, error) {
	return p.model, p.err
}

func stubProgram(t *testing.T, runErr error) *fakeProgram {
	t.Helper()

	fake := &fakeProgram{err: runErr}
	original := newProgram
	newProgram = func(model tea.Model, _ ...tea.ProgramOption) interface{ Run() (tea.Model, error) } {
		fake.model = model
		return fake
	}
	t.Cleanup(func() { newProgram = original })
	return fake
}

func TestTUICmd_LaunchesApp(t *testing.T) {
	setupTestServices(t)
	fake := stubProgram(t, nil)

	_, err := executeCommand(t, "tui")

	require.NoError(t, err)
	app, ok := fake.model.(*tui.App)
	require.True(t, ok)
	assert.False(t, app.Computing())
	assert.Nil(t, app.Record())
}

func TestTUICmd_ProgramError(t *testing.T) {
	setupTestServices(t)
	stubProgram(t, errors.New("no tty"))

	_, err := executeCommand(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "TUI error: no tty")
}

func TestTUICmd_NoChartService(t *testing.T) {
	SetServices(&Services{})
	t.Cleanup(resetCommand)
	stubProgram(t, nil)

	_, err := executeCommand(t, "tui")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "chart service not configured")
}
