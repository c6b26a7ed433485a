package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

var envFiles = []string{".env", ".env.local"}

// EnvFile records the outcome of loading one .env file. Err is nil when the
// file was loaded.
type EnvFile struct {
	Path string
	Err  error
}

// loadEnvFiles loads KEY=VALUE pairs from .env files in the working
// directory. Missing files are skipped and variables already present in the
// process environment are never overridden. Nothing is logged here: the
// process logger is not configured yet when configuration loads.
func loadEnvFiles() []EnvFile {
	var loaded []EnvFile
	for _, path := range envFiles {
		err := godotenv.Load(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		loaded = append(loaded, EnvFile{Path: path, Err: err})
	}
	return loaded
}

// LogEnvFiles reports the .env files seen by Load through logger.
func LogEnvFiles(logger *slog.Logger, files []EnvFile) {
	for _, f := range files {
		if f.Err != nil {
			logger.Warn("Could not load env file", "file", f.Path, "error", f.Err)
			continue
		}
		logger.Debug("Loaded environment variables", "file", f.Path)
	}
}
