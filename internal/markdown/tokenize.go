package markdown

import (
	"strings"
	"unicode"
)

// isSeparator reports whether r separates tokens. The ASCII information
// separators (FS, GS, RS, US) count as whitespace alongside unicode.IsSpace.
func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Tokenize splits a line on runs of whitespace. Leading and trailing
// whitespace, including the line terminator, produce no tokens.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, isSeparator)
}

// Classify maps a token sequence to its LineSignal. Only the first token is
// inspected and the checks run in a fixed priority order.
//
// Ordered markers are recognised only when the first token is a single ASCII
// digit followed by '.', and another token follows it. "10." is plain text.
func Classify(tokens []string) LineSignal {
	if len(tokens) == 0 {
		return SignalEmptyLine
	}
	first := tokens[0]
	switch {
	case first[0] == '#':
		return SignalHeading
	case first[0] == '*':
		return SignalListBullet
	case isASCIIDigit(first[0]) && len(tokens) >= 2 && len(first) >= 2 && first[1] == '.':
		return SignalOrderedMarker
	default:
		return SignalOtherText
	}
}

func isASCIIDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// joinTokens space-joins tokens the way every emitter renders text.
func joinTokens(tokens []string) string {
	return strings.Join(tokens, " ")
}
