package render

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"git.home.luguber.info/inful/mdstream/internal/config"
)

// LineSource yields the lines of a document in order. A line ends at "\n",
// "\r\n" or a bare "\r"; the terminator is kept as written. A final line
// without one is still returned.
type LineSource struct {
	r *bufio.Reader
}

// NewLineSource wraps r, decoding it according to enc.
func NewLineSource(r io.Reader, enc config.Encoding) *LineSource {
	return &LineSource{r: bufio.NewReader(decode(r, enc))}
}

// Next returns the next line, or io.EOF once the input is exhausted. A read
// error discards the partial line it interrupted.
func (s *LineSource) Next() (string, error) {
	var line strings.Builder
	for {
		b, err := s.r.ReadByte()
		if errors.Is(err, io.EOF) {
			if line.Len() == 0 {
				return "", io.EOF
			}
			return line.String(), nil
		}
		if err != nil {
			return "", err
		}
		line.WriteByte(b)

		switch b {
		case '\n':
			return line.String(), nil
		case '\r':
			next, err := s.r.Peek(1)
			if err == nil && next[0] == '\n' {
				_, _ = s.r.ReadByte()
				line.WriteByte('\n')
			}
			return line.String(), nil
		}
	}
}

// decode strips a byte-order mark in auto mode. A UTF-16 BOM switches the
// decoder to UTF-16; anything else must already be valid UTF-8, and the
// first invalid byte surfaces as encoding.ErrInvalidUTF8.
func decode(r io.Reader, enc config.Encoding) io.Reader {
	if enc == config.EncodingRaw {
		return r
	}
	return transform.NewReader(r, transform.Chain(
		unicode.BOMOverride(transform.Nop),
		encoding.UTF8Validator,
	))
}
