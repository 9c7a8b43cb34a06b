package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBar_Defaults(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
	assert.Contains(t, bar.View(), "Ready")
}

func TestBar_ViewByState(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		message  string
		contains string
	}{
		{name: "computing", state: StateComputing, contains: "Computing..."},
		{name: "error with message", state: StateError, message: "invalid hour: 24", contains: "Error: invalid hour: 24"},
		{name: "error without message", state: StateError, contains: "Error"},
		{name: "saved", state: StateSaved, message: "abc123", contains: "Saved abc123"},
		{name: "done", state: StateDone, message: "甲子 乙亥 壬戌 庚子", contains: "甲子 乙亥 壬戌 庚子"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			bar.Set(tt.state, tt.message)

			assert.Contains(t, bar.View(), tt.contains)
		})
	}
}

func TestBar_ShowsKeyHints(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(120)

	view := bar.View()

	assert.Contains(t, view, "enter: compute")
	assert.Contains(t, view, "esc: quit")
}

func TestBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.Set(StateError, "boom")

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Empty(t, bar.Message())
}
