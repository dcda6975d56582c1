package core

import (
	"fmt"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
)

type Route string

const (
	RouteList   Route = "list_tasks"
	RouteAdd    Route = "add_task"
	RouteDetail Route = "task_detail"
)

// ParamID is the only parameter of the detail route.
const ParamID = "id"

// Params carries route parameters. Only the detail route takes any.
type Params map[string]string

// ContractError describes a navigation request the route table does not allow.
// The navigator panics with it: a bad request is a programming error.
type ContractError struct {
	Route  Route
	Reason string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("navigation contract violation for route %q: %s", e.Route, e.Reason)
}

// ScreenFactory builds the screen for a route from already validated params.
type ScreenFactory func(params Params) Screen

// Navigator owns the screen stack. The list route is the root and the only
// entry route; add and detail are pushed on top of it.
type Navigator struct {
	factories map[Route]ScreenFactory
	stack     ScreenStack
	focus     *FocusBus
}

func NewNavigator(factories map[Route]ScreenFactory, focus *FocusBus) *Navigator {
	if focus == nil {
		focus = NewFocusBus()
	}
	return &Navigator{factories: factories, focus: focus}
}

func (n *Navigator) Focus() *FocusBus { return n.focus }

// Start mounts the entry route and focuses it. Calling it twice is a no-op.
func (n *Navigator) Start() tea.Cmd {
	if n.stack.Len() > 0 {
		return nil
	}
	return n.push(RouteList, nil)
}

// Navigate pushes route. Unknown routes, missing or extra parameters and
// re-entering the list route panic with *ContractError.
func (n *Navigator) Navigate(route Route, params Params) tea.Cmd {
	if err := validate(route, params); err != nil {
		panic(err)
	}
	if route == RouteList {
		panic(&ContractError{Route: route, Reason: "list is the entry route and is already mounted"})
	}
	if n.stack.Len() == 0 {
		panic(&ContractError{Route: route, Reason: "navigator not started"})
	}
	return n.push(route, params)
}

// Back pops the top screen unless it is the root, then focuses the new top.
func (n *Navigator) Back() tea.Cmd {
	if n.stack.Len() <= 1 {
		return nil
	}
	popped := n.stack.Pop()
	unmount(popped)
	return n.focusTop()
}

// Close unmounts every screen, top first.
func (n *Navigator) Close() {
	for n.stack.Len() > 0 {
		unmount(n.stack.Pop())
	}
}

func (n *Navigator) Top() Screen { return n.stack.Top() }

func (n *Navigator) Screens() []Screen { return n.stack.All() }

func (n *Navigator) Depth() int { return n.stack.Len() }

func (n *Navigator) Current() Route {
	if top := n.stack.Top(); top != nil {
		return top.Route()
	}
	return ""
}

// Replace swaps the top screen for the next value returned by its Update.
func (n *Navigator) Replace(screen Screen) { n.stack.ReplaceTop(screen) }

func (n *Navigator) push(route Route, params Params) tea.Cmd {
	factory, ok := n.factories[route]
	if !ok {
		panic(&ContractError{Route: route, Reason: "no screen registered"})
	}
	screen := factory(cloneParams(params))
	if screen == nil {
		panic(&ContractError{Route: route, Reason: "screen factory returned nil"})
	}
	var cmds []tea.Cmd
	if m, ok := screen.(Mounter); ok {
		cmds = append(cmds, m.Mount())
	}
	n.stack.Push(screen)
	cmds = append(cmds, n.focusTop())
	return tea.Batch(cmds...)
}

func (n *Navigator) focusTop() tea.Cmd {
	top := n.stack.Top()
	if top == nil {
		return nil
	}
	return n.focus.Publish(top.Route())
}

func unmount(s Screen) {
	if u, ok := s.(Unmounter); ok {
		u.Unmount()
	}
}

var routeParams = map[Route][]string{
	RouteList:   nil,
	RouteAdd:    nil,
	RouteDetail: {ParamID},
}

func validate(route Route, params Params) error {
	want, ok := routeParams[route]
	if !ok {
		return &ContractError{Route: route, Reason: "unknown route"}
	}
	if len(params) != len(want) {
		return &ContractError{Route: route, Reason: fmt.Sprintf("expected %d parameter(s), got %d", len(want), len(params))}
	}
	for k, v := range params {
		if !slices.Contains(want, k) {
			return &ContractError{Route: route, Reason: fmt.Sprintf("unexpected parameter %q", k)}
		}
		if v == "" {
			return &ContractError{Route: route, Reason: fmt.Sprintf("parameter %q is empty", k)}
		}
	}
	return nil
}

func cloneParams(p Params) Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
