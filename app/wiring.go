// Package app wires the route table, key bindings and screens into the
// core model.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/jask/tasklist/core"
	"github.com/jask/tasklist/internal/config"
	"github.com/jask/tasklist/internal/task"
	"github.com/jask/tasklist/screens/addtask"
	"github.com/jask/tasklist/screens/taskdetail"
	"github.com/jask/tasklist/screens/tasklist"
)

type Deps struct {
	Ctx      context.Context
	Config   config.Config
	Source   task.Source
	Log      logrus.FieldLogger
	Renderer *lipgloss.Renderer
}

// KeyRegistry returns the default bindings with any overrides from config.
func KeyRegistry(cfg config.Config) *core.KeyRegistry {
	return core.NewKeyRegistry(core.ApplyActionKeybindings(core.DefaultKeyBindings(), cfg.Keys))
}

// Routes maps every route to the screen it builds.
func Routes(d Deps, keys *core.KeyRegistry, focus *core.FocusBus) map[core.Route]core.ScreenFactory {
	ui := d.Config.UI
	return map[core.Route]core.ScreenFactory{
		core.RouteList: func(core.Params) core.Screen {
			return tasklist.New(tasklist.Options{
				Ctx:     d.Ctx,
				Source:  d.Source,
				Timeout: timeoutOf(d.Config),
				Focus:   focus,
				Keys:    keys,
				Log:     d.Log.WithField("screen", core.RouteList),
				Text: tasklist.Text{
					Title:    ui.Title,
					Empty:    ui.EmptyText,
					Loading:  ui.LoadingText,
					Create:   ui.CreateText,
					DueLabel: ui.DueLabel,
					Count:    ui.CountText,
				},
				Renderer: d.Renderer,
			})
		},
		core.RouteAdd: func(core.Params) core.Screen {
			return addtask.New(keys)
		},
		core.RouteDetail: func(p core.Params) core.Screen {
			return taskdetail.New(p, keys)
		},
	}
}

// New builds the root model. The list route is mounted by Init.
func New(d Deps) core.Model {
	keys := KeyRegistry(d.Config)
	focus := core.NewFocusBus()
	nav := core.NewNavigator(Routes(d, keys, focus), focus)
	return core.NewModel(d.Config.UI.Title, nav, keys, d.Log)
}

func timeoutOf(cfg config.Config) time.Duration {
	if cfg.API.Timeout > 0 {
		return cfg.API.Timeout
	}
	return 10 * time.Second
}
