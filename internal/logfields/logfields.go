package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyFile       = "file"
	KeyLine       = "line"
	KeyState      = "state"
	KeyNextState  = "next_state"
	KeySignal     = "signal"
	KeyEngine     = "engine"
	KeyDurationMS = "duration_ms"
	KeyBytes      = "bytes"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func File(path string) slog.Attr      { return slog.String(KeyFile, path) }
func Line(n int) slog.Attr            { return slog.Int(KeyLine, n) }
func State(s string) slog.Attr        { return slog.String(KeyState, s) }
func NextState(s string) slog.Attr    { return slog.String(KeyNextState, s) }
func Signal(s string) slog.Attr       { return slog.String(KeySignal, s) }
func Engine(name string) slog.Attr    { return slog.String(KeyEngine, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Bytes(n int64) slog.Attr         { return slog.Int64(KeyBytes, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
