package config

import (
	"strings"
	"time"
)

// DefaultDebounce is the quiet period the watch command waits for after a change.
const DefaultDebounce = 200 * time.Millisecond

// Engine names a document rendering engine.
type Engine string

const (
	EngineFSM        Engine = "fsm"
	EngineCommonMark Engine = "commonmark"
)

// Encoding controls how input bytes are decoded before tokenizing.
type Encoding string

const (
	// EncodingAuto strips a leading byte-order mark and decodes as UTF-8.
	EncodingAuto Encoding = "auto"
	// EncodingRaw passes input bytes through untouched.
	EncodingRaw Encoding = "raw"
)

// NormalizeEngine lowercases and trims an engine name. Unknown names are
// kept so validation can report them.
func NormalizeEngine(raw string) Engine {
	return Engine(strings.ToLower(strings.TrimSpace(raw)))
}

// NormalizeEncoding lowercases and trims an encoding name.
func NormalizeEncoding(raw string) Encoding {
	return Encoding(strings.ToLower(strings.TrimSpace(raw)))
}
