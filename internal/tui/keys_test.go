package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestActionForRespectsScope(t *testing.T) {
	r := NewKeyRegistry(DefaultKeyBindings())
	up := tea.KeyMsg{Type: tea.KeyUp}

	require.Equal(t, actionUp, r.ActionFor(up, scopeFile))
	require.Empty(t, r.ActionFor(up, scopeForm))
	require.Equal(t, actionSubmit, r.ActionFor(tea.KeyMsg{Type: tea.KeyCtrlR}, scopeForm))
	require.Empty(t, r.ActionFor(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, scopeForm))
}

func TestApplyKeyOverrides(t *testing.T) {
	defaults := DefaultKeyBindings()
	got, err := ApplyKeyOverrides(defaults, map[string][]string{actionSubmit: {" Ctrl+G "}})
	require.NoError(t, err)

	r := NewKeyRegistry(got)
	require.Equal(t, actionSubmit, r.ActionFor(tea.KeyMsg{Type: tea.KeyCtrlG}, scopeForm))
	require.Empty(t, r.ActionFor(tea.KeyMsg{Type: tea.KeyCtrlR}, scopeForm))
	require.Equal(t, []string{"ctrl+r"}, defaults[len(defaults)-3].Keys, "defaults are not mutated")

	_, err = ApplyKeyOverrides(defaults, map[string][]string{"launch": {"x"}})
	require.ErrorContains(t, err, `unknown action "launch"`)

	_, err = ApplyKeyOverrides(defaults, map[string][]string{actionQuit: {}})
	require.ErrorContains(t, err, "keys are required")

	_, err = ApplyKeyOverrides(defaults, map[string][]string{actionQuit: {" "}})
	require.ErrorContains(t, err, "key cannot be empty")
}

func TestRemappedSubmitKey(t *testing.T) {
	bindings, err := ApplyKeyOverrides(DefaultKeyBindings(), map[string][]string{actionSubmit: {"ctrl+g"}})
	require.NoError(t, err)
	fake := &fakeAnalyzer{}
	app := New(context.Background(), fake, Options{Bindings: bindings})

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	require.Nil(t, cmd)
	require.Contains(t, app.View(), "[ctrl+g]")
	require.Contains(t, app.View(), "Please choose a CSV file first")
}
