package render

import "io"

type flusher interface {
	Flush() error
}

// sink writes per-line output and flushes it immediately when the
// underlying writer buffers.
type sink struct {
	w       io.Writer
	f       flusher
	written int64
}

func newSink(w io.Writer) *sink {
	s := &sink{w: w}
	if f, ok := w.(flusher); ok {
		s.f = f
	}
	return s
}

func (s *sink) emit(text string) error {
	if text == "" {
		return nil
	}
	n, err := io.WriteString(s.w, text)
	s.written += int64(n)
	if err != nil {
		return err
	}
	if s.f != nil {
		return s.f.Flush()
	}
	return nil
}
