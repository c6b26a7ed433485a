package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"git.home.luguber.info/inful/mdstream/internal/config"
	"git.home.luguber.info/inful/mdstream/internal/logfields"
	"git.home.luguber.info/inful/mdstream/internal/observability"
	"git.home.luguber.info/inful/mdstream/internal/render"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Path   string `arg:"" help:"Markdown file to convert"`
	Output string `short:"o" help:"Write HTML to this file instead of stdout; overrides output.path"`

	RenderFlags `embed:""`

	stdout io.Writer
}

// Run executes the render command.
func (r *RenderCmd) Run(_ *Global, root *CLI) error {
	cfg := r.RenderFlags.apply(root.Settings())
	if r.Output != "" {
		cfg.Output.Path = r.Output
	}
	stdout := r.stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	return renderOnce(runContext(r.Path), cfg, r.Path, stdout)
}

// renderOnce converts path into the configured output and writes metrics.
func renderOnce(ctx context.Context, cfg *config.Config, path string, stdout io.Writer) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}
	if err := checkInput(path); err != nil {
		return err
	}

	recorder, reg := newRecorder(cfg)
	out, err := openOutput(cfg.Output.Path, stdout)
	if err != nil {
		return err
	}

	observability.DebugContext(ctx, "Rendering document", slog.String("settings", describe(cfg)))
	stats, renderErr := render.FromConfig(cfg, recorder).RenderFile(ctx, path, out)
	closeErr := out.Close()
	if renderErr != nil {
		return renderErr
	}
	if closeErr != nil {
		return closeErr
	}

	observability.InfoContext(ctx, "Render complete",
		slog.Int("lines", stats.Lines),
		logfields.Bytes(stats.BytesWritten),
		slog.String("output", out.name),
		logfields.DurationMS(float64(stats.Duration.Microseconds())/1000))

	return writeMetrics(ctx, cfg, reg)
}
