// Package tasklist is the entry screen: it keeps the task collection in sync
// with the remote source on every focus and turns key presses into
// navigation intents.
package tasklist

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/jask/tasklist/core"
	"github.com/jask/tasklist/internal/task"
)

type Options struct {
	Ctx      context.Context
	Source   task.Source
	Timeout  time.Duration
	Focus    *core.FocusBus
	Keys     *core.KeyRegistry
	Log      logrus.FieldLogger
	Text     Text
	Renderer *lipgloss.Renderer
}

type Screen struct {
	vm          *ViewModel
	focus       *core.FocusBus
	keys        *core.KeyRegistry
	unsubscribe func()
	list        list.Model
	spinner     spinner.Model
	styles      Styles
	text        Text
	width       int
	height      int
}

func New(opts Options) *Screen {
	styles := NewStyles(opts.Renderer)
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = styles.Loading.UnsetPadding()
	return &Screen{
		vm:      NewViewModel(opts.Ctx, opts.Source, opts.Timeout, opts.Log),
		focus:   opts.Focus,
		keys:    opts.Keys,
		list:    newListModel(rowDelegate{styles: styles, dueLabel: opts.Text.DueLabel}),
		spinner: sp,
		styles:  styles,
		text:    opts.Text,
	}
}

func (s *Screen) Route() core.Route { return core.RouteList }
func (s *Screen) Scope() string     { return core.ScopeList }
func (s *Screen) Title() string     { return s.text.Title }

func (s *Screen) ViewModel() *ViewModel { return s.vm }

// Mount creates the empty collection and subscribes to focus events of the
// list route for as long as the screen stays mounted.
func (s *Screen) Mount() tea.Cmd {
	s.vm.Mount()
	s.list.SetItems(nil)
	s.unsubscribe = s.focus.Subscribe(core.RouteList, s.onFocus)
	return nil
}

func (s *Screen) Unmount() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.vm.Unmount()
	s.list.SetItems(nil)
}

func (s *Screen) onFocus() tea.Cmd {
	return tea.Batch(s.vm.Refresh(), s.spinner.Tick)
}

func (s *Screen) State() ViewState {
	return SelectState(s.vm.Tasks(), s.vm.Loading())
}

// ActivateRow emits the intent to open the detail route for the row at index.
func (s *Screen) ActivateRow(index int) tea.Cmd {
	tasks := s.vm.Tasks()
	if s.State() != StateRows || index < 0 || index >= len(tasks) {
		return nil
	}
	return core.NavigateCmd(core.RouteDetail, core.Params{core.ParamID: tasks[index].ID})
}

// ActivateCreate emits the intent to open the add route.
func (s *Screen) ActivateCreate() tea.Cmd {
	return core.NavigateCmd(core.RouteAdd, nil)
}

func (s *Screen) Update(msg tea.Msg) (core.Screen, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case core.BodySizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.list.SetSize(msg.Width, max(0, msg.Height-1))
		return s, nil, false
	case tasksFetchedMsg:
		if !s.vm.Apply(msg) || !msg.result.OK() {
			return s, nil, false
		}
		tasks := s.vm.Tasks()
		cmd := s.list.SetItems(toItems(tasks))
		s.list.Select(min(s.list.Index(), max(0, len(tasks)-1)))
		return s, tea.Batch(cmd, core.StatusCmd(s.countText(len(tasks)))), false
	case spinner.TickMsg:
		if !s.vm.Loading() {
			return s, nil, false
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd, false
	case tea.KeyMsg:
		action := s.keys.Action(msg, s.Scope())
		switch action {
		case "open-detail":
			return s, s.ActivateRow(s.list.Index()), false
		case "add-task":
			return s, s.ActivateCreate(), false
		}
		if s.State() != StateRows {
			return s, nil, false
		}
		switch action {
		case "row-up":
			s.list.CursorUp()
			return s, nil, false
		case "row-down":
			s.list.CursorDown()
			return s, nil, false
		}
		var cmd tea.Cmd
		s.list, cmd = s.list.Update(msg)
		return s, cmd, false
	}
	return s, nil, false
}

func (s *Screen) countText(n int) string {
	if s.text.Count == "" {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf(s.text.Count, n)
}

func (s *Screen) View(width, height int) string {
	if height <= 0 {
		return ""
	}
	var body string
	switch s.State() {
	case StateLoading:
		body = s.styles.Loading.Render(s.spinner.View() + " " + s.text.Loading)
	case StateEmpty:
		body = s.styles.Empty.Render(s.text.Empty)
	case StateRows:
		l := s.list
		l.SetSize(width, max(0, height-1))
		body = l.View()
	}
	create := s.styles.Create.Render("+ " + s.text.Create)
	create = lipgloss.PlaceHorizontal(width, lipgloss.Right, create)
	if height == 1 {
		return create
	}
	return core.FitHeight(body, height-1) + "\n" + create
}
