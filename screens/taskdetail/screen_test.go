package taskdetail

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/jask/tasklist/core"
)

func TestDetailShowsID(t *testing.T) {
	s := New(core.Params{core.ParamID: "42"}, core.NewKeyRegistry(core.DefaultKeyBindings()))
	require.Equal(t, "42", s.TaskID())
	require.Equal(t, core.RouteDetail, s.Route())
	require.Contains(t, s.Title(), "42")
	require.Contains(t, ansi.Strip(s.View(40, 5)), "42")
	require.Empty(t, s.View(40, 0))
}

func TestDetailBackPops(t *testing.T) {
	s := New(core.Params{core.ParamID: "1"}, core.NewKeyRegistry(core.DefaultKeyBindings()))
	_, _, pop := s.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	require.False(t, pop)
	_, _, pop = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.True(t, pop)
}
