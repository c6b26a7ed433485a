package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/mdstream/internal/config"
	mserrors "git.home.luguber.info/inful/mdstream/internal/errors"
	"git.home.luguber.info/inful/mdstream/internal/metrics"
	"git.home.luguber.info/inful/mdstream/internal/observability"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"mdstream.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Render RenderCmd `cmd:"" default:"withargs" help:"Convert a markdown file to HTML on stdout (default command)"`
	Watch  WatchCmd  `cmd:"" help:"Re-render a markdown file whenever it changes"`
	Init   InitCmd   `cmd:"" help:"Write a default configuration file"`
	Table  TableCmd  `cmd:"" help:"Print the block state transition table"`

	cfg *config.Config
}

// AfterApply runs after flag parsing; loads configuration and sets up logging once.
func (c *CLI) AfterApply() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		if mserrors.IsCategory(err, mserrors.CategoryValidation) {
			return err
		}
		return mserrors.ConfigInvalid(c.Config, err)
	}
	if c.Verbose {
		cfg.Logging.Level = config.LogLevelDebug
	}
	c.cfg = cfg

	logger := observability.NewLogger(os.Stderr, cfg.Logging.Level.Slog(), string(cfg.Logging.Format))
	slog.SetDefault(logger)
	config.LogEnvFiles(logger, cfg.EnvFiles)
	return nil
}

// Settings returns the loaded configuration, or defaults before AfterApply ran.
func (c *CLI) Settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// RenderFlags are the conversion overrides shared by render and watch.
type RenderFlags struct {
	Engine     string `short:"e" help:"Rendering engine (fsm or commonmark); overrides render.engine"`
	Encoding   string `help:"Input decoding (auto or raw); overrides render.encoding"`
	MetricsOut string `name:"metrics-out" help:"Write Prometheus text metrics to this file after rendering"`
}

// apply merges flag overrides into a copy of cfg.
func (f RenderFlags) apply(cfg *config.Config) *config.Config {
	merged := *cfg
	if f.Engine != "" {
		merged.Render.Engine = config.NormalizeEngine(f.Engine)
	}
	if f.Encoding != "" {
		merged.Render.Encoding = config.NormalizeEncoding(f.Encoding)
	}
	if f.MetricsOut != "" {
		merged.Metrics.Path = f.MetricsOut
	}
	return &merged
}

// newRecorder returns a Prometheus recorder and its registry when a metrics
// file is configured, and a no-op recorder otherwise.
func newRecorder(cfg *config.Config) (metrics.Recorder, *prom.Registry) {
	if cfg.Metrics.Path == "" {
		return metrics.NoopRecorder{}, nil
	}
	reg := prom.NewRegistry()
	return metrics.NewPrometheusRecorder(reg), reg
}

func writeMetrics(ctx context.Context, cfg *config.Config, reg *prom.Registry) error {
	if reg == nil {
		return nil
	}
	if err := metrics.WriteTextFile(cfg.Metrics.Path, reg); err != nil {
		return mserrors.OutputFailed(cfg.Metrics.Path, err)
	}
	observability.DebugContext(ctx, "Metrics written", slog.String("path", cfg.Metrics.Path))
	return nil
}

// output is a buffered sink over stdout or a file.
type output struct {
	*bufio.Writer
	name   string
	closer io.Closer
}

// openOutput returns a buffered writer for path, or stdout when path is empty.
func openOutput(path string, stdout io.Writer) (*output, error) {
	if path == "" {
		return &output{Writer: bufio.NewWriter(stdout), name: "stdout"}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, mserrors.OutputFailed(path, err)
	}
	return &output{Writer: bufio.NewWriter(f), name: path, closer: f}, nil
}

// Close flushes pending output and closes the underlying file.
func (o *output) Close() error {
	if err := o.Flush(); err != nil {
		return mserrors.OutputFailed(o.name, err)
	}
	if o.closer != nil {
		if err := o.closer.Close(); err != nil {
			return mserrors.OutputFailed(o.name, err)
		}
	}
	return nil
}

// checkInput fails with a filesystem error when path cannot be opened, so no
// output file is created for a missing input.
func checkInput(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return mserrors.InputNotFound(path, err)
		}
		return mserrors.InputUnreadable(path, err)
	}
	return f.Close()
}

func runContext(path string) context.Context {
	ctx := observability.WithRunID(context.Background(), observability.NewRunID())
	return observability.WithFile(ctx, path)
}

func describe(cfg *config.Config) string {
	return fmt.Sprintf("engine=%s encoding=%s", cfg.Render.Engine, cfg.Render.Encoding)
}
