package core

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

type fetched struct{}

func startedModel(t *testing.T) (*harness, Model) {
	t.Helper()
	h := newHarness()
	m := NewModel("Yapılacaklar", h.nav, NewKeyRegistry(DefaultKeyBindings()), quietLogger())
	m.Init()
	return h, m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestNonKeyMessagesReachEveryScreen(t *testing.T) {
	h, m := startedModel(t)
	m, _ = update(m, NavigateMsg{Route: RouteDetail, Params: Params{ParamID: "1"}})
	m, _ = update(m, fetched{})

	require.Contains(t, h.list().other, tea.Msg(fetched{}))
	require.Contains(t, h.built[RouteDetail][0].other, tea.Msg(fetched{}))
	require.Equal(t, 2, m.Navigator().Depth())
}

func TestResizeDoesNotRefocus(t *testing.T) {
	h, m := startedModel(t)
	m, _ = update(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m, _ = update(m, fetched{})
	require.Equal(t, 1, h.list().focused)

	var size BodySizeMsg
	for _, msg := range h.list().other {
		if s, ok := msg.(BodySizeMsg); ok {
			size = s
		}
	}
	require.Equal(t, 78, size.Width)
	require.Positive(t, size.Height)
	require.Less(t, size.Height, 24)
}

func TestQuitKeyInListScope(t *testing.T) {
	h, m := startedModel(t)
	m, cmd := update(m, runes("q"))
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
	require.Equal(t, 1, h.list().unmounts)
	require.Empty(t, m.View())
}

func TestCtrlCQuitsFromAnyScreen(t *testing.T) {
	h, m := startedModel(t)
	m, _ = update(m, NavigateMsg{Route: RouteAdd})
	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Equal(t, tea.QuitMsg{}, cmd())
	require.Equal(t, 1, h.built[RouteAdd][0].unmounts)
}

func TestBackMsgPops(t *testing.T) {
	h, m := startedModel(t)
	m, _ = update(m, NavigateMsg{Route: RouteAdd})
	m, _ = update(m, BackMsg{})
	require.Equal(t, RouteList, m.Navigator().Current())
	require.Equal(t, 2, h.list().focused)
}

func TestStatusMsgShowsInStatusBar(t *testing.T) {
	_, m := startedModel(t)
	m, _ = update(m, StatusMsg{Text: "bağlantı hatası", IsErr: true})
	require.True(t, strings.Contains(m.View(), "bağlantı hatası"))
}

func TestViewShowsRouteTitleAboveRoot(t *testing.T) {
	_, m := startedModel(t)
	require.NotContains(t, m.View(), string(RouteDetail))
	m, _ = update(m, NavigateMsg{Route: RouteDetail, Params: Params{ParamID: "9"}})
	require.Contains(t, m.View(), string(RouteDetail))
}
