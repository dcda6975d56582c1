// Package addtask is the destination of the create action. Creating tasks
// belongs to another service, so the input here is never submitted.
package addtask

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tasklist/core"
)

type Screen struct {
	input textinput.Model
	keys  *core.KeyRegistry
}

func New(keys *core.KeyRegistry) *Screen {
	inp := textinput.New()
	inp.Prompt = "Başlık: "
	inp.CharLimit = 200
	inp.Cursor.SetMode(cursor.CursorStatic)
	return &Screen{input: inp, keys: keys}
}

func (s *Screen) Route() core.Route { return core.RouteAdd }
func (s *Screen) Scope() string     { return core.ScopeAdd }
func (s *Screen) Title() string     { return "Yeni görev" }
func (s *Screen) Value() string     { return s.input.Value() }

func (s *Screen) Focused() bool { return s.input.Focused() }

func (s *Screen) Mount() tea.Cmd { return s.input.Focus() }

func (s *Screen) Unmount() { s.input.Blur() }

func (s *Screen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok && s.keys.IsAction(km, "back", s.Scope()) {
		return s, nil, true
	}
	if _, ok := msg.(core.BodySizeMsg); ok {
		return s, nil, false
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

func (s *Screen) View(width, height int) string {
	lines := []string{"", "  " + s.input.View()}
	return core.ClipHeight(strings.Join(lines, "\n"), height)
}
