// Package render drives document conversion: it pulls lines from a source,
// feeds them to the markdown state machine and streams each line's HTML to
// a writer as soon as it is produced.
package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/mdstream/internal/config"
	mserrors "git.home.luguber.info/inful/mdstream/internal/errors"
	"git.home.luguber.info/inful/mdstream/internal/logfields"
	"git.home.luguber.info/inful/mdstream/internal/markdown"
	"git.home.luguber.info/inful/mdstream/internal/metrics"
	"git.home.luguber.info/inful/mdstream/internal/observability"
)

// Stats summarises one conversion run.
type Stats struct {
	Lines         int
	BytesWritten  int64
	Signals       map[markdown.LineSignal]int
	Continuations int
	FinalState    markdown.BlockState
	Duration      time.Duration
}

// Renderer converts documents. It holds no per-document state, so one
// Renderer may convert many documents; each call gets its own parser.
type Renderer struct {
	engine   config.Engine
	encoding config.Encoding
	recorder metrics.Recorder
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine selects the conversion engine.
func WithEngine(e config.Engine) Option {
	return func(r *Renderer) { r.engine = e }
}

// WithEncoding selects how input bytes are decoded.
func WithEncoding(e config.Encoding) Option {
	return func(r *Renderer) { r.encoding = e }
}

// WithRecorder installs a metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Renderer) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// New returns a Renderer using the line state machine on auto-decoded input.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		engine:   config.EngineFSM,
		encoding: config.EncodingAuto,
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromConfig builds a Renderer from the render section of cfg.
func FromConfig(cfg *config.Config, rec metrics.Recorder) *Renderer {
	return New(
		WithEngine(cfg.Render.Engine),
		WithEncoding(cfg.Render.Encoding),
		WithRecorder(rec),
	)
}

// RenderFile converts the document at path into w. A missing or unreadable
// path fails before anything is written.
func (r *Renderer) RenderFile(ctx context.Context, path string, w io.Writer) (Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Stats{}, mserrors.InputNotFound(path, err)
		}
		return Stats{}, mserrors.InputUnreadable(path, err)
	}
	defer func() { _ = f.Close() }()

	return r.Render(observability.WithFile(ctx, path), f, w)
}

// Render converts the document read from in, writing output to w line by line.
func (r *Renderer) Render(ctx context.Context, in io.Reader, w io.Writer) (Stats, error) {
	ctx = observability.WithEngine(ctx, string(r.engine))
	start := time.Now()

	var (
		stats Stats
		err   error
	)
	switch r.engine {
	case config.EngineCommonMark:
		stats, err = r.renderCommonMark(ctx, in, w)
	case config.EngineFSM, "":
		stats, err = r.renderLines(ctx, in, w)
	default:
		return Stats{}, mserrors.ValidationFailed("engine", "unknown engine "+string(r.engine))
	}

	stats.Duration = time.Since(start)
	r.recorder.ObserveDocumentDuration(string(r.engine), stats.Duration)
	if err != nil {
		return stats, err
	}

	observability.DebugContext(ctx, "Document rendered",
		slog.Int("lines", stats.Lines),
		logfields.Bytes(stats.BytesWritten),
		logfields.State(stats.FinalState.String()),
		logfields.DurationMS(float64(stats.Duration.Microseconds())/1000))
	return stats, nil
}

func (r *Renderer) renderLines(ctx context.Context, in io.Reader, w io.Writer) (Stats, error) {
	src := NewLineSource(in, r.encoding)
	out := newSink(w)
	parser := markdown.NewParser()
	stats := Stats{Signals: make(map[markdown.LineSignal]int)}

	for {
		line, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.BytesWritten = out.written
			stats.FinalState = parser.State()
			return stats, mserrors.InputUnreadable(observability.GetContext(ctx).File, err).
				WithContext("line", stats.Lines+1)
		}

		step := parser.Step(line)
		stats.Lines++
		stats.Signals[step.Signal]++
		r.record(ctx, stats.Lines, step)
		if !step.Matched {
			stats.Continuations++
		}

		if err := out.emit(step.Output); err != nil {
			stats.BytesWritten = out.written
			stats.FinalState = parser.State()
			return stats, mserrors.OutputFailed("output", err).WithContext("line", stats.Lines)
		}
	}

	stats.BytesWritten = out.written
	stats.FinalState = parser.State()
	return stats, nil
}

func (r *Renderer) record(ctx context.Context, lineNo int, step markdown.Step) {
	r.recorder.IncLine(step.Signal.String())
	if step.Matched {
		r.recorder.IncTransition(step.From.String(), step.To.String())
	} else {
		r.recorder.IncContinuation(step.From.String())
	}
	observability.DebugContext(ctx, "Line processed",
		logfields.Line(lineNo),
		logfields.Signal(step.Signal.String()),
		logfields.State(step.From.String()),
		logfields.NextState(step.To.String()))
}

func (r *Renderer) renderCommonMark(ctx context.Context, in io.Reader, w io.Writer) (Stats, error) {
	src, err := io.ReadAll(decode(in, r.encoding))
	if err != nil {
		return Stats{}, mserrors.InputUnreadable(observability.GetContext(ctx).File, err)
	}
	html, err := markdown.RenderCommonMark(src)
	if err != nil {
		return Stats{}, mserrors.InternalError("commonmark render failed", err)
	}
	out := newSink(w)
	if err := out.emit(string(html)); err != nil {
		return Stats{BytesWritten: out.written}, mserrors.OutputFailed("output", err)
	}
	return Stats{Lines: countLines(src), BytesWritten: out.written}, nil
}

func countLines(src []byte) int {
	n := bytes.Count(src, []byte("\n"))
	if len(src) > 0 && src[len(src)-1] != '\n' {
		n++
	}
	return n
}
