package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	mserrors "git.home.luguber.info/inful/mdstream/internal/errors"
	"git.home.luguber.info/inful/mdstream/internal/logfields"
	"git.home.luguber.info/inful/mdstream/internal/observability"
	"git.home.luguber.info/inful/mdstream/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Path     string        `arg:"" help:"Markdown file to watch"`
	Output   string        `short:"o" help:"HTML file rewritten on every change; overrides output.path"`
	Debounce time.Duration `help:"Quiet period before re-rendering; overrides watch.debounce"`

	RenderFlags `embed:""`
}

// Run renders once, then again after every change until interrupted.
func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg := w.RenderFlags.apply(root.Settings())
	if w.Output != "" {
		cfg.Output.Path = w.Output
	}
	if cfg.Output.Path == "" {
		return mserrors.ValidationError("watch needs an output file (--output or output.path)")
	}
	if w.Debounce > 0 {
		cfg.Watch.Debounce = w.Debounce
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rerender := func(ctx context.Context) {
		runCtx := observability.WithRunID(observability.WithFile(ctx, w.Path), observability.NewRunID())
		if err := renderOnce(runCtx, cfg, w.Path, os.Stdout); err != nil {
			observability.ErrorContext(runCtx, "Render failed", logfields.Error(err))
		}
	}

	if err := renderOnce(runContext(w.Path), cfg, w.Path, os.Stdout); err != nil {
		return err
	}

	fw, err := watch.NewFileWatcher(w.Path, cfg.Watch.Debounce, rerender)
	if err != nil {
		return mserrors.InternalError("failed to start watcher", err)
	}
	if err := fw.Run(ctx); err != nil {
		return mserrors.Wrap(err, mserrors.CategoryRuntime, mserrors.SeverityFatal, "watcher stopped")
	}
	observability.InfoContext(ctx, "Watch stopped")
	return nil
}
