// Package ui starts the interactive catalog.
package ui

import (
	"context"
	"errors"

	"github.com/hashicorp/go-hclog"

	"tableflip.dev/filmdeck/pkg/logging"
	"tableflip.dev/filmdeck/pkg/model"
	"tableflip.dev/filmdeck/pkg/store"
	teaui "tableflip.dev/filmdeck/pkg/tui/app"
)

type UI struct {
	Config      *store.FileConfig
	Persistence store.Persistence

	// run is swapped in tests.
	run func(teaui.Config) error
}

func (u *UI) Do(ctx context.Context) error {
	if u.Persistence == nil || u.Config == nil {
		return errors.New("can not start ui, no persistence")
	}
	log, closeLog, err := logging.OpenFile("filmdeck", u.Config.LogLevel, u.Config.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	cfg := u.config(log)
	log.Info("starting ui", "path", u.Config.BasePath(), "page_size", cfg.PageSize)

	run := u.run
	if run == nil {
		run = teaui.Run
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return run(cfg)
}

func (u *UI) config(log hclog.Logger) teaui.Config {
	return teaui.Config{
		Backend: &model.StoreBackend{
			Persistence: u.Persistence,
			Author:      u.Config.Author,
		},
		Watcher:  u.Persistence,
		PageSize: u.Config.PageSize,
		Gate:     u.Config.Gate,
		Shake:    u.Config.Shake,
		Log:      log,
	}
}
