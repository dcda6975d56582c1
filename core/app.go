package core

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Screen is one entry of the navigation stack. Update returns the next value
// of the screen, a command, and whether the screen asks to be popped.
type Screen interface {
	Route() Route
	Update(msg tea.Msg) (Screen, tea.Cmd, bool)
	View(width, height int) string
	Scope() string
	Title() string
}

// Mounter is implemented by screens that need setup when pushed.
type Mounter interface {
	Mount() tea.Cmd
}

// Unmounter is implemented by screens that need teardown when popped.
type Unmounter interface {
	Unmount()
}

type Model struct {
	width     int
	height    int
	appTitle  string
	nav       *Navigator
	keys      *KeyRegistry
	log       logrus.FieldLogger
	status    string
	statusErr bool
	quitting  bool
}

func NewModel(appTitle string, nav *Navigator, keys *KeyRegistry, log logrus.FieldLogger) Model {
	return Model{
		appTitle: appTitle,
		nav:      nav,
		keys:     keys,
		log:      log,
		status:   "Ready",
		width:    100,
		height:   32,
	}
}

func (m Model) Init() tea.Cmd {
	return m.nav.Start()
}

func (m Model) ActiveScope() string {
	if top := m.nav.Top(); top != nil {
		return top.Scope()
	}
	return "app"
}

func (m Model) Navigator() *Navigator { return m.nav }

func (m Model) Keys() *KeyRegistry { return m.keys }
