package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/sizhu-cli/internal/core/domain"
	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driving"
)

// App is the chart form following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	bar    *status.Bar

	// fields are indexed by messages.Field.
	fields [messages.FieldCount]*input.FieldInput
	focus  messages.Field

	// record is the last computed chart.
	record *domain.ChartRecord

	// err holds the last error that occurred.
	err error

	computing bool
	width     int
	height    int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:  ports,
		ctx:    context.Background(),
		styles: s,
		keymap: km,
		bar:    status.NewBar(s, km),
	}
	a.fields[messages.FieldGender] = input.NewFieldInput(s, "Gender", "male / female / 男 / 女", 6)
	a.fields[messages.FieldDate] = input.NewFieldInput(s, "Date", "YYYY-MM-DD", 10)
	a.fields[messages.FieldHour] = input.NewFieldInput(s, "Hour", "0-23", 2)
	a.fields[messages.FieldGender].Focus()

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("sizhu - Four Pillars"),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.bar.SetWidth(msg.Width)
		return a, nil

	case messages.ChartCompleted:
		a.computing = false
		a.err = msg.Err
		switch {
		case msg.Err != nil:
			a.bar.Set(status.StateError, msg.Err.Error())
		case msg.Saved():
			a.record = msg.Record
			a.bar.Set(status.StateSaved, msg.Record.ID)
		default:
			a.record = msg.Record
			a.bar.Set(status.StateDone, msg.Record.Chart.FullBaZi())
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keymap.Next):
		return a, a.setFocus(a.focus.Next())
	case key.Matches(msg, a.keymap.Prev):
		return a, a.setFocus(a.focus.Prev())
	case key.Matches(msg, a.keymap.Compute):
		return a, a.submit(false)
	case key.Matches(msg, a.keymap.Save):
		return a, a.submit(true)
	case key.Matches(msg, a.keymap.Reset):
		a.reset()
		return a, a.setFocus(messages.FieldGender)
	}

	var cmd tea.Cmd
	a.fields[a.focus], cmd = a.fields[a.focus].Update(msg)
	return a, cmd
}

func (a *App) setFocus(f messages.Field) tea.Cmd {
	a.fields[a.focus].Blur()
	a.focus = f
	return a.fields[f].Focus()
}

func (a *App) reset() {
	for _, f := range a.fields {
		f.Reset()
	}
	a.record = nil
	a.err = nil
	a.bar.Clear()
}

// submit validates the form and returns a command computing the chart.
func (a *App) submit(save bool) tea.Cmd {
	if a.computing {
		return nil
	}

	req, err := a.request()
	if err != nil {
		a.err = err
		a.bar.Set(status.StateError, err.Error())
		return nil
	}
	req.Save = save

	a.err = nil
	a.computing = true
	a.bar.Set(status.StateComputing, "")

	svc, ctx := a.ports.Chart, a.ctx
	return func() tea.Msg {
		record, err := svc.Calculate(ctx, req)
		return messages.ChartCompleted{Record: record, Err: err}
	}
}

// request parses the form. Fields are checked in gender, date, hour order.
func (a *App) request() (driving.ChartRequest, error) {
	gender := strings.TrimSpace(a.fields[messages.FieldGender].Value())
	if _, err := domain.ParseGender(gender); err != nil {
		return driving.ChartRequest{}, err
	}

	date, err := domain.ParseCivilDate(a.fields[messages.FieldDate].Value())
	if err != nil {
		return driving.ChartRequest{}, err
	}

	hourText := strings.TrimSpace(a.fields[messages.FieldHour].Value())
	hour, err := strconv.Atoi(hourText)
	if err != nil {
		return driving.ChartRequest{}, fmt.Errorf("%w: %q", domain.ErrInvalidHour, hourText)
	}

	return driving.ChartRequest{
		Gender:  gender,
		Year:    date.Year,
		Month:   date.Month,
		Day:     date.Day,
		Hour:    hour,
		Subject: a.ports.Subject,
	}, nil
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("四柱八字 Four Pillars"))
	b.WriteString("\n\n")

	for _, f := range a.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if a.record != nil {
		b.WriteString(a.renderChart(a.record.Chart))
		b.WriteString("\n\n")
	}

	b.WriteString(a.bar.View())
	return b.String()
}

// renderChart draws the pillars as bordered columns with birth details below.
func (a *App) renderChart(c domain.FourPillars) string {
	labels := [4]string{"Year 年", "Month 月", "Day 日", "Hour 时"}
	pillars := c.Pillars()

	columns := make([]string, len(pillars))
	for i, p := range pillars {
		box := a.styles.Pillar
		if i == 2 {
			box = a.styles.DayPillar
		}
		columns[i] = box.Render(lipgloss.JoinVertical(lipgloss.Center,
			a.styles.Label.Render(labels[i]),
			a.styles.Glyph.Render(p.Stem.Name()),
			a.styles.Glyph.Render(p.Branch.Name()),
			a.styles.Muted.Render(p.Pinyin()),
		))
	}

	details := fmt.Sprintf("%s  day master %s  %s",
		c.Gender.Chinese(), c.Day.Stem.Name(), c.Birth.ShiChen)
	if c.Birth.DayRolledOver {
		details += fmt.Sprintf("  day pillar from %s", c.Birth.DayPillarDate)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		a.styles.Muted.Render(details),
	)
}

// Focus returns the focused field.
func (a *App) Focus() messages.Field {
	return a.focus
}

// Record returns the last computed chart, or nil.
func (a *App) Record() *domain.ChartRecord {
	return a.record
}

// Err returns the last error.
func (a *App) Err() error {
	return a.err
}

// Computing reports whether a calculation is in flight.
func (a *App) Computing() bool {
	return a.computing
}
