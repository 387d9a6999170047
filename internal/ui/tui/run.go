package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/dingolabs/dingo/internal/config"
	"github.com/dingolabs/dingo/internal/ui/clock"
)

// TimingsFrom extracts the console timings from the UI configuration.
func TimingsFrom(cfg config.UIConfig) Timings {
	return Timings{
		ShowDelay:            cfg.ShowDelay,
		TransitionDelay:      cfg.TransitionDelay,
		NotificationDuration: cfg.NotificationDuration,
		NotificationExit:     cfg.NotificationExit,
		StatusInterval:       cfg.StatusInterval,
	}
}

// Run starts the console on the terminal and blocks until it exits. Timer
// callbacks are posted onto the program's update loop. When watch is set and
// has a config file, edits to that file reload the console timings.
func Run(ctx context.Context, opts Options, watch *viper.Viper) error {
	realtime := &clock.Realtime{}
	opts.Clock = realtime

	model := New(ctx, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	realtime.Dispatch = func(fn func()) {
		program.Send(dispatchMsg{fn: fn})
	}

	if watch != nil && watch.ConfigFileUsed() != "" {
		watch.OnConfigChange(func(fsnotify.Event) {
			cfg, err := config.Load(watch)
			if err != nil {
				program.Send(ReloadMsg{Err: fmt.Errorf("config reload failed: %w", err)})
				return
			}
			program.Send(ReloadMsg{Timings: TimingsFrom(cfg.UI)})
		})
		watch.WatchConfig()
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("console failed: %w", err)
	}
	return nil
}
