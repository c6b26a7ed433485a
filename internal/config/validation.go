package config

import (
	"fmt"

	mserrors "git.home.luguber.info/inful/mdstream/internal/errors"
)

// Validate checks enumerated fields and ranges.
func Validate(cfg *Config) error {
	switch cfg.Render.Engine {
	case EngineFSM, EngineCommonMark:
	default:
		return mserrors.ValidationFailed("render.engine",
			fmt.Sprintf("unknown engine %q (want %s or %s)", cfg.Render.Engine, EngineFSM, EngineCommonMark))
	}
	switch cfg.Render.Encoding {
	case EncodingAuto, EncodingRaw:
	default:
		return mserrors.ValidationFailed("render.encoding",
			fmt.Sprintf("unknown encoding %q (want %s or %s)", cfg.Render.Encoding, EncodingAuto, EncodingRaw))
	}
	if cfg.Watch.Debounce < 0 {
		return mserrors.ValidationFailed("watch.debounce", "must not be negative")
	}
	return nil
}
