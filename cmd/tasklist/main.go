package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/jask/tasklist/app"
	"github.com/jask/tasklist/internal/config"
	"github.com/jask/tasklist/internal/logging"
	"github.com/jask/tasklist/internal/remote/googletasks"
	"github.com/jask/tasklist/internal/remote/rest"
	"github.com/jask/tasklist/internal/task"
)

type flags struct {
	configPath string
	baseURL    string
	backend    string
	logFile    string
	debug      bool
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := pflag.NewFlagSet("tasklist", pflag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "config file (default $HOME/.config/tasklist/config.toml)")
	fs.StringVar(&f.baseURL, "base-url", "", "task API base URL")
	fs.StringVar(&f.backend, "backend", "", "task source: rest or googletasks")
	fs.StringVar(&f.logFile, "log-file", "", "diagnostic log path")
	fs.BoolVar(&f.debug, "debug", false, "log at debug level")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}

func (f flags) apply(cfg *config.Config) {
	if f.baseURL != "" {
		cfg.API.BaseURL = f.baseURL
	}
	if f.backend != "" {
		cfg.API.Backend = f.backend
	}
	if f.logFile != "" {
		cfg.Log.Path = f.logFile
	}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "tasklist: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	f.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log, closer, err := logging.Open(cfg.Log, f.debug)
	if err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	defer closer.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	src, err := newSource(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("task source: %w", err)
	}
	log.WithFields(logrus.Fields{"backend": cfg.API.Backend, "url": cfg.API.TasksURL()}).Info("starting")

	p := tea.NewProgram(app.New(app.Deps{Ctx: ctx, Config: cfg, Source: src, Log: log}), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("program exited with error")
		return err
	}
	log.Info("bye")
	return nil
}

func newSource(ctx context.Context, cfg config.Config, log *logrus.Logger) (task.Source, error) {
	switch cfg.API.Backend {
	case config.BackendGoogleTasks:
		c, err := googletasks.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		return c, nil
	case config.BackendREST:
		return rest.New(cfg.API, nil, log), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.API.Backend)
	}
}
