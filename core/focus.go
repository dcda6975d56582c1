package core

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

// FocusBus delivers "route became focused" events to whoever subscribed for
// that route. Subscriptions are explicit: Subscribe hands back the matching
// unsubscribe func, which a screen calls when it unmounts.
type FocusBus struct {
	next int
	subs map[Route]map[int]func() tea.Cmd
}

func NewFocusBus() *FocusBus {
	return &FocusBus{subs: map[Route]map[int]func() tea.Cmd{}}
}

func (b *FocusBus) Subscribe(route Route, fn func() tea.Cmd) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	b.next++
	id := b.next
	if b.subs[route] == nil {
		b.subs[route] = map[int]func() tea.Cmd{}
	}
	b.subs[route][id] = fn
	return func() {
		delete(b.subs[route], id)
	}
}

// Publish runs every subscriber of route once, in subscription order, and
// batches the commands they return.
func (b *FocusBus) Publish(route Route) tea.Cmd {
	subs := b.subs[route]
	if len(subs) == 0 {
		return nil
	}
	ids := make([]int, 0, len(subs))
	for id := range subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	cmds := make([]tea.Cmd, 0, len(ids))
	for _, id := range ids {
		fn, ok := subs[id]
		if !ok {
			continue
		}
		if cmd := fn(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (b *FocusBus) Subscribers(route Route) int {
	return len(b.subs[route])
}

