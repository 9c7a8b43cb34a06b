// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/sizhu-cli/internal/adapters/driving/tui/styles"
)

// labelWidth aligns the inputs of a form.
const labelWidth = 8

// FieldInput wraps a bubbles textinput with a label and focus styling.
type FieldInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
}

// NewFieldInput creates a labelled input. charLimit bounds the value length.
func NewFieldInput(s *styles.Styles, label, placeholder string, charLimit int) *FieldInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = charLimit
	ti.Width = max(charLimit, lipgloss.Width(placeholder)) + 1
	ti.Prompt = ""

	return &FieldInput{
		textinput: ti,
		styles:    s,
		label:     label,
	}
}

// Update handles input messages.
func (f *FieldInput) Update(msg tea.Msg) (*FieldInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and input.
func (f *FieldInput) View() string {
	label := f.styles.Label.Width(labelWidth).Render(f.label)
	box := f.styles.InputField
	if f.textinput.Focused() {
		box = f.styles.FocusedField
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box.Render(f.textinput.View()))
}

// Label returns the field label.
func (f *FieldInput) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *FieldInput) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *FieldInput) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *FieldInput) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *FieldInput) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *FieldInput) Focused() bool {
	return f.textinput.Focused()
}

// Reset clears the input.
func (f *FieldInput) Reset() {
	f.textinput.Reset()
}
