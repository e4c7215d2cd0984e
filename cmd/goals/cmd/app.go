package cmd

import (
	"context"
	"os"

	"github.com/templui/goalboard/internal/app"
	"github.com/templui/goalboard/internal/config"
	"github.com/templui/goalboard/internal/logger"
)

// openApp loads config and storage the same way the server does. Logs go
// to stderr so stdout stays clean for command output.
func openApp(ctx context.Context) (*app.App, func(), error) {
	cfg := config.Load()
	flush := logger.Init(os.Stderr, cfg.Debug(), cfg.SentryDSN)

	a, err := app.New(ctx, cfg)
	if err != nil {
		flush()
		return nil, nil, err
	}

	return a, func() {
		_ = a.Close()
		flush()
	}, nil
}
