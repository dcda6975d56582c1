package core

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, m.broadcast(m.bodySize())
	case StatusMsg:
		m.status = msg.Text
		m.statusErr = msg.IsErr
		return m, nil
	case NavigateMsg:
		m.log.WithFields(logrus.Fields{"route": msg.Route, "params": msg.Params}).Debug("navigate")
		cmd := m.nav.Navigate(msg.Route, msg.Params)
		return m, tea.Batch(cmd, m.resizeTop())
	case BackMsg:
		return m, tea.Batch(m.back(), m.resizeTop())
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		top := m.nav.Top()
		if top == nil {
			return m, nil
		}
		if m.keys.IsAction(msg, "quit", top.Scope()) {
			return m.quit()
		}
		next, cmd, pop := top.Update(msg)
		if pop {
			return m, tea.Batch(cmd, m.back(), m.resizeTop())
		}
		m.nav.Replace(next)
		return m, cmd
	}
	return m, m.broadcast(msg)
}

// broadcast hands msg to every mounted screen, bottom first. Fetch results and
// spinner ticks must reach the list screen even while another screen is on top.
func (m Model) broadcast(msg tea.Msg) tea.Cmd {
	screens := m.nav.Screens()
	if len(screens) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(screens))
	var pop bool
	for i, s := range screens {
		next, cmd, wantsPop := s.Update(msg)
		cmds = append(cmds, cmd)
		if next != nil {
			m.nav.stack.items[i] = next
		}
		if i == len(screens)-1 {
			pop = wantsPop
		}
	}
	if pop {
		cmds = append(cmds, m.back(), m.resizeTop())
	}
	return tea.Batch(cmds...)
}

func (m Model) back() tea.Cmd {
	from := m.nav.Current()
	cmd := m.nav.Back()
	m.log.WithFields(logrus.Fields{"from": from, "to": m.nav.Current()}).Debug("back")
	return cmd
}

func (m Model) resizeTop() tea.Cmd {
	top := m.nav.Top()
	if top == nil {
		return nil
	}
	next, cmd, _ := top.Update(m.bodySize())
	m.nav.Replace(next)
	return cmd
}

func (m Model) bodySize() BodySizeMsg {
	chrome := lipgloss.Height(renderHeader(m)) + lipgloss.Height(RenderStatusBar(m)) + lipgloss.Height(RenderFooter(m))
	return BodySizeMsg{Width: max(1, m.width-2), Height: max(0, m.height-chrome)}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.nav.Close()
	return m, tea.Quit
}
