package commands

import (
	"log/slog"

	"git.home.luguber.info/inful/mdstream/internal/config"
	mserrors "git.home.luguber.info/inful/mdstream/internal/errors"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	slog.Info("Initializing configuration", "path", root.Config, "force", i.Force)
	if err := config.Init(root.Config, i.Force); err != nil {
		return mserrors.Wrap(err, mserrors.CategoryConfig, mserrors.SeverityFatal, "init failed").
			WithContext("path", root.Config)
	}
	return nil
}
