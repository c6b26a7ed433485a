package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdstream/cmd/mdstream/commands"
	mserrors "git.home.luguber.info/inful/mdstream/internal/errors"
	"git.home.luguber.info/inful/mdstream/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Must(cli,
		kong.Name("mdstream"),
		kong.Description("Stream a small markdown subset to HTML, one line at a time."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	kctx, err := parser.Parse(os.Args[1:])
	if _, ok := mserrors.As(err); ok {
		// Configuration loaded in AfterApply; keep its category exit code.
		mserrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
		return
	}
	parser.FatalIfErrorf(err)

	global := &commands.Global{Logger: slog.Default()}
	if err := kctx.Run(global, cli); err != nil {
		mserrors.NewCLIErrorAdapter(cli.Verbose, global.Logger).HandleError(err)
	}
}
