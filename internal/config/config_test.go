package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	mserrors "git.home.luguber.info/inful/mdstream/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.Equal(t, EngineFSM, cfg.Render.Engine)
	require.Equal(t, EncodingAuto, cfg.Render.Encoding)
	require.Equal(t, DefaultDebounce, cfg.Watch.Debounce)
	require.Empty(t, cfg.Output.Path)
	require.Empty(t, cfg.Metrics.Path)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParse_FullDocument(t *testing.T) {
	cfg, err := Parse([]byte(`
logging:
  level: DEBUG
  format: json
render:
  engine: CommonMark
  encoding: raw
output:
  path: out.html
metrics:
  path: metrics.prom
watch:
  debounce: 1s
`))
	require.NoError(t, err)
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
	require.Equal(t, LogFormatJSON, cfg.Logging.Format)
	require.Equal(t, EngineCommonMark, cfg.Render.Engine)
	require.Equal(t, EncodingRaw, cfg.Render.Encoding)
	require.Equal(t, "out.html", cfg.Output.Path)
	require.Equal(t, "metrics.prom", cfg.Metrics.Path)
	require.Equal(t, time.Second, cfg.Watch.Debounce)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("MDSTREAM_TEST_OUT", "/tmp/rendered.html")

	cfg, err := Parse([]byte("output:\n  path: ${MDSTREAM_TEST_OUT}\n"))
	require.NoError(t, err)
	require.Equal(t, "/tmp/rendered.html", cfg.Output.Path)
}

func TestParse_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown engine", "render:\n  engine: pandoc\n"},
		{"unknown encoding", "render:\n  encoding: latin1\n"},
		{"negative debounce", "watch:\n  debounce: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			require.True(t, mserrors.IsCategory(err, mserrors.CategoryValidation))
		})
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("logging: [unterminated"))
	require.Error(t, err)
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MDSTREAM_TEST_KEEP", "process")

	require.NoError(t, os.WriteFile(".env", []byte("MDSTREAM_TEST_KEEP=file\nMDSTREAM_TEST_NEW=from-env-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("MDSTREAM_TEST_NEW") })
	require.NoError(t, os.WriteFile("cfg.yaml", []byte("output:\n  path: ${MDSTREAM_TEST_NEW}-${MDSTREAM_TEST_KEEP}\n"), 0o600))

	cfg, err := Load("cfg.yaml")
	require.NoError(t, err)
	require.Equal(t, "from-env-file-process", cfg.Output.Path)
	require.Equal(t, []EnvFile{{Path: ".env"}}, cfg.EnvFiles)
}

func TestLogEnvFiles(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	LogEnvFiles(logger, []EnvFile{
		{Path: ".env"},
		{Path: ".env.local", Err: errors.New("bad line")},
	})

	out := buf.String()
	require.Contains(t, out, `level=DEBUG msg="Loaded environment variables" file=.env`)
	require.Contains(t, out, `level=WARN msg="Could not load env file" file=.env.local error="bad line"`)
}

func TestLogEnvFiles_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	LogEnvFiles(logger, []EnvFile{{Path: ".env"}})
	require.Empty(t, buf.String())
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}

func TestNormalizeLogLevel(t *testing.T) {
	require.Equal(t, LogLevelWarn, NormalizeLogLevel(" Warning "))
	require.Equal(t, LogLevelInfo, NormalizeLogLevel("verbose"))
	require.Equal(t, LogLevelError.Slog(), NormalizeLogLevel("error").Slog())
}
