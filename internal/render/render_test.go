package render

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"

	"git.home.luguber.info/inful/mdstream/internal/config"
	mserrors "git.home.luguber.info/inful/mdstream/internal/errors"
	"git.home.luguber.info/inful/mdstream/internal/markdown"
	"git.home.luguber.info/inful/mdstream/internal/metrics"
)

var updateGolden = flag.Bool("update-golden", false, "Update golden files")

func TestRenderFile_Golden(t *testing.T) {
	for _, name := range []string{"basic", "quirks", "ordered", "bom", "cr_only"} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := New().RenderFile(context.Background(), filepath.Join("testdata", name+".md"), &out)
			require.NoError(t, err)

			goldenPath := filepath.Join("testdata", name+".html")
			if *updateGolden {
				require.NoError(t, os.WriteFile(goldenPath, out.Bytes(), 0o644))
				return
			}
			want, err := os.ReadFile(goldenPath)
			require.NoError(t, err)
			require.Equal(t, string(want), out.String())
		})
	}
}

func TestRender_ScenarioParagraphFromInitial(t *testing.T) {
	var out bytes.Buffer
	stats, err := New().Render(context.Background(), strings.NewReader("Hello world\nmore text\n\n"), &out)
	require.NoError(t, err)
	require.Equal(t, "Hello world\nmore text\n</p>\n", out.String())
	require.Equal(t, 3, stats.Lines)
	require.Equal(t, 1, stats.Continuations)
	require.Equal(t, markdown.StateDefault, stats.FinalState)
	require.Equal(t, int64(out.Len()), stats.BytesWritten)
	require.Equal(t, 2, stats.Signals[markdown.SignalOtherText])
	require.Equal(t, 1, stats.Signals[markdown.SignalEmptyLine])
}

func TestRender_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	stats, err := New().Render(context.Background(), strings.NewReader(""), &out)
	require.NoError(t, err)
	require.Empty(t, out.String())
	require.Zero(t, stats.Lines)
	require.Equal(t, markdown.StateInitial, stats.FinalState)
}

func TestRender_CRLFInput(t *testing.T) {
	var out bytes.Buffer
	_, err := New().Render(context.Background(), strings.NewReader("# Title\r\n\r\ntext\r\n"), &out)
	require.NoError(t, err)
	require.Equal(t, "<h1>\n Title\n</h1>\n\n<p>\ntext\n", out.String())
}

func TestRender_RawEncodingKeepsBOM(t *testing.T) {
	var out bytes.Buffer
	_, err := New(WithEncoding(config.EncodingRaw)).Render(context.Background(), strings.NewReader("\ufeff# BOM heading\n"), &out)
	require.NoError(t, err)
	require.Equal(t, "\ufeff# BOM heading\n", out.String())
}

func TestRender_UTF16WithBOM(t *testing.T) {
	// "# Hi\n" in UTF-16LE with byte-order mark.
	in := []byte{0xff, 0xfe, '#', 0, ' ', 0, 'H', 0, 'i', 0, '\n', 0}
	var out bytes.Buffer
	_, err := New().Render(context.Background(), bytes.NewReader(in), &out)
	require.NoError(t, err)
	require.Equal(t, "<h1>\n Hi\n</h1>\n", out.String())
}

// flushRecorder records what was visible downstream after each flush.
type flushRecorder struct {
	*bufio.Writer
	dst     *bytes.Buffer
	flushes []string
}

func (f *flushRecorder) Flush() error {
	if err := f.Writer.Flush(); err != nil {
		return err
	}
	f.flushes = append(f.flushes, f.dst.String())
	return nil
}

func TestRender_StreamsEachLine(t *testing.T) {
	var dst bytes.Buffer
	w := &flushRecorder{Writer: bufio.NewWriter(&dst), dst: &dst}

	_, err := New().Render(context.Background(), strings.NewReader("1. a\n2. b\n\n"), w)
	require.NoError(t, err)
	require.Equal(t, []string{
		"<ol>\n<li>\na\n",
		"<ol>\n<li>\na\n</li>\n<li>\nb\n",
		"<ol>\n<li>\na\n</li>\n<li>\nb\n</li>\n</ol>\n",
	}, w.flushes)
}

type failingWriter struct{ after int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, io.ErrClosedPipe
	}
	f.after--
	return len(p), nil
}

func TestRender_OutputFailure(t *testing.T) {
	stats, err := New().Render(context.Background(), strings.NewReader("# a\n# b\n# c\n"), &failingWriter{after: 1})
	require.Error(t, err)
	require.True(t, mserrors.IsCategory(err, mserrors.CategoryOutput))
	require.True(t, errors.Is(err, io.ErrClosedPipe))
	require.Equal(t, 2, stats.Lines)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestRender_CarriageReturnOnlyInput(t *testing.T) {
	var out bytes.Buffer
	stats, err := New().Render(context.Background(), strings.NewReader("Hello\r\rworld\r"), &out)
	require.NoError(t, err)
	require.Equal(t, 3, stats.Lines)
	require.Equal(t, "Hello\n</p>\n<p>\nworld\n", out.String())
}

func TestRender_InvalidUTF8IsUnreadable(t *testing.T) {
	var out bytes.Buffer
	stats, err := New().Render(context.Background(), strings.NewReader("fine\ncaf\xe9 ok\n"), &out)
	require.Error(t, err)
	require.True(t, mserrors.IsCategory(err, mserrors.CategoryFileSystem))
	require.ErrorIs(t, err, encoding.ErrInvalidUTF8)

	var mse *mserrors.MDStreamError
	require.True(t, errors.As(err, &mse))
	require.Equal(t, 2, mse.Context["line"])
	require.Equal(t, 1, stats.Lines)
	require.NotContains(t, out.String(), "\ufffd")
}

func TestRender_InvalidUTF8AfterBOM(t *testing.T) {
	_, err := New().Render(context.Background(), strings.NewReader("\ufeffcaf\xe9\n"), io.Discard)
	require.ErrorIs(t, err, encoding.ErrInvalidUTF8)
}

func TestRender_RawEncodingPassesInvalidUTF8(t *testing.T) {
	var out bytes.Buffer
	_, err := New(WithEncoding(config.EncodingRaw)).Render(context.Background(), strings.NewReader("caf\xe9 ok\n"), &out)
	require.NoError(t, err)
	require.Equal(t, "caf\xe9 ok\n", out.String())
}

func TestRender_InputFailure(t *testing.T) {
	_, err := New(WithEncoding(config.EncodingRaw)).Render(context.Background(), failingReader{}, io.Discard)
	require.Error(t, err)
	require.True(t, mserrors.IsCategory(err, mserrors.CategoryFileSystem))
}

func TestRenderFile_MissingPath(t *testing.T) {
	var out bytes.Buffer
	_, err := New().RenderFile(context.Background(), filepath.Join(t.TempDir(), "missing.md"), &out)
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
	require.True(t, mserrors.IsCategory(err, mserrors.CategoryFileSystem))
	require.Zero(t, out.Len(), "nothing is written before the input opens")
}

func TestRenderFile_Directory(t *testing.T) {
	_, err := New().RenderFile(context.Background(), t.TempDir(), io.Discard)
	require.Error(t, err)
	require.True(t, mserrors.IsCategory(err, mserrors.CategoryFileSystem))
}

func TestRender_CommonMarkEngine(t *testing.T) {
	var out bytes.Buffer
	stats, err := New(WithEngine(config.EngineCommonMark)).Render(context.Background(), strings.NewReader("# Title\n\ntext"), &out)
	require.NoError(t, err)
	require.Equal(t, "<h1>Title</h1>\n<p>text</p>\n", out.String())
	require.Equal(t, 3, stats.Lines)
}

func TestRender_UnknownEngine(t *testing.T) {
	_, err := New(WithEngine("pandoc")).Render(context.Background(), strings.NewReader("x"), io.Discard)
	require.True(t, mserrors.IsCategory(err, mserrors.CategoryValidation))
}

func TestRender_RecordsMetrics(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	r := FromConfig(config.Default(), rec)
	_, err := r.Render(context.Background(), strings.NewReader("Hello\nmore\n\n# H\n"), io.Discard)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, metrics.WriteText(&buf, reg))
	text := buf.String()
	require.Contains(t, text, `mdstream_lines_total{signal="other_text"} 2`)
	require.Contains(t, text, `mdstream_transitions_total{from="initial",to="paragraph"} 1`)
	require.Contains(t, text, `mdstream_transitions_total{from="paragraph",to="default"} 1`)
	require.Contains(t, text, `mdstream_transitions_total{from="default",to="default"} 1`)
	require.Contains(t, text, `mdstream_continuations_total{state="paragraph"} 1`)
	n, err := testutil.GatherAndCount(reg, "mdstream_document_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestLineSource_KeepsTerminators(t *testing.T) {
	src := NewLineSource(strings.NewReader("a\r\nb\n\nlast"), config.EncodingRaw)
	var lines []string
	for {
		line, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
	require.Equal(t, []string{"a\r\n", "b\n", "\n", "last"}, lines)
}

func TestLineSource_SplitsOnBareCarriageReturn(t *testing.T) {
	src := NewLineSource(strings.NewReader("a\r\rb\r\nc\r"), config.EncodingAuto)
	var lines []string
	for {
		line, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}
	require.Equal(t, []string{"a\r", "\r", "b\r\n", "c\r"}, lines)
}
