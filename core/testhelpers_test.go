package core

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// stubScreen records what the shell does to it. A list stub subscribes to
// focus events on mount the way the real list screen does.
type stubScreen struct {
	route    Route
	params   Params
	focus    *FocusBus
	unsub    func()
	mounts   int
	unmounts int
	focused  int
	keys     []tea.KeyMsg
	other    []tea.Msg
}

func (s *stubScreen) Route() Route  { return s.route }
func (s *stubScreen) Title() string { return string(s.route) }
func (s *stubScreen) View(int, int) string {
	return string(s.route)
}

func (s *stubScreen) Scope() string {
	switch s.route {
	case RouteList:
		return ScopeList
	case RouteAdd:
		return ScopeAdd
	default:
		return ScopeDetail
	}
}

func (s *stubScreen) Mount() tea.Cmd {
	s.mounts++
	if s.route == RouteList && s.focus != nil {
		s.unsub = s.focus.Subscribe(RouteList, func() tea.Cmd {
			s.focused++
			return nil
		})
	}
	return nil
}

func (s *stubScreen) Unmount() {
	s.unmounts++
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *stubScreen) Update(msg tea.Msg) (Screen, tea.Cmd, bool) {
	if km, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, km)
		return s, nil, km.Type == tea.KeyEsc && s.route != RouteList
	}
	s.other = append(s.other, msg)
	return s, nil, false
}

type harness struct {
	nav   *Navigator
	focus *FocusBus
	built map[Route][]*stubScreen
}

func newHarness() *harness {
	h := &harness{focus: NewFocusBus(), built: map[Route][]*stubScreen{}}
	factory := func(route Route) ScreenFactory {
		return func(p Params) Screen {
			s := &stubScreen{route: route, params: p, focus: h.focus}
			h.built[route] = append(h.built[route], s)
			return s
		}
	}
	h.nav = NewNavigator(map[Route]ScreenFactory{
		RouteList:   factory(RouteList),
		RouteAdd:    factory(RouteAdd),
		RouteDetail: factory(RouteDetail),
	}, h.focus)
	return h
}

func (h *harness) list() *stubScreen { return h.built[RouteList][0] }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
