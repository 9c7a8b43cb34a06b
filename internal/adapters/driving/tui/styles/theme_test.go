package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.Equal(t, lipgloss.Color("#C0392B"), theme.Primary)
	assert.NotEmpty(t, theme.Secondary)
	assert.NotEmpty(t, theme.Border)
	assert.NotEmpty(t, theme.DayMaster)
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestNewStyles_UsesGivenTheme(t *testing.T) {
	theme := DefaultTheme()
	theme.Primary = lipgloss.Color("#000000")

	s := NewStyles(theme)

	assert.Same(t, theme, s.Theme())
	assert.Equal(t, lipgloss.Color("#000000"), s.Title.GetForeground())
	assert.Equal(t, lipgloss.Color("#000000"), s.FocusedField.GetBorderTopForeground())
}

func TestStyles_DayPillarHasOwnBorder(t *testing.T) {
	s := DefaultStyles()

	assert.Equal(t, s.Theme().Border, s.Pillar.GetBorderTopForeground())
	assert.Equal(t, s.Theme().DayMaster, s.DayPillar.GetBorderTopForeground())
}

func TestStyles_PillarRendersBorder(t *testing.T) {
	s := DefaultStyles()

	out := s.Pillar.Render("甲子")

	assert.Contains(t, out, "甲子")
	assert.Contains(t, out, "╭")
}
