package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
)

// RenderCommonMark renders a whole document with goldmark. It is the
// reference engine used to compare the line state machine's output with a
// CommonMark implementation; it is not streamed.
func RenderCommonMark(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("commonmark render: %w", err)
	}
	return buf.Bytes(), nil
}
