// Package taskdetail is the destination of row activation. It only honours
// the navigation contract: it receives the task identifier and shows it.
package taskdetail

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tasklist/core"
)

var (
	labelStyle = lipgloss.NewStyle().Foreground(core.ColorMuted)
	valueStyle = lipgloss.NewStyle().Foreground(core.ColorText).Bold(true)
)

type Screen struct {
	taskID string
	keys   *core.KeyRegistry
}

// New builds the screen from validated route params.
func New(params core.Params, keys *core.KeyRegistry) *Screen {
	return &Screen{taskID: params[core.ParamID], keys: keys}
}

func (s *Screen) Route() core.Route { return core.RouteDetail }
func (s *Screen) Scope() string     { return core.ScopeDetail }
func (s *Screen) Title() string     { return "Görev " + s.taskID }
func (s *Screen) TaskID() string    { return s.taskID }

func (s *Screen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok && s.keys.IsAction(km, "back", s.Scope()) {
		return s, nil, true
	}
	return s, nil, false
}

func (s *Screen) View(width, height int) string {
	lines := []string{
		"",
		"  " + labelStyle.Render("id") + "  " + valueStyle.Render(s.taskID),
	}
	return core.ClipHeight(strings.Join(lines, "\n"), height)
}
