package core

import tea "github.com/charmbracelet/bubbletea"

type StatusMsg struct {
	Text  string
	IsErr bool
}

// NavigateMsg is the intent a screen emits to open another route. The model
// resolves it through the Navigator.
type NavigateMsg struct {
	Route  Route
	Params Params
}

// BackMsg pops the top screen.
type BackMsg struct{}

// BodySizeMsg tells screens how much room they get below the header.
type BodySizeMsg struct {
	Width  int
	Height int
}

func StatusCmd(text string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func NavigateCmd(route Route, params Params) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: route, Params: params} }
}
