package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/readable-research/readable/internal/cmd/base"
	"github.com/readable-research/readable/internal/cmd/commands/operator"
	"github.com/readable-research/readable/internal/cmd/commands/serve"
	"github.com/readable-research/readable/internal/cmd/commands/server"
	"github.com/readable-research/readable/internal/cmd/commands/version"
)

// Commands is the mapping of all available commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := base.NewCommand(log, ui)

	Commands = map[string]cli.CommandFactory{
		"operator": func() (cli.Command, error) {
			return &operator.Command{Command: b}, nil
		},
		"operator check-papers": func() (cli.Command, error) {
			return &operator.CheckPapersCommand{Command: b}, nil
		},
		"serve": func() (cli.Command, error) {
			return &serve.Command{Command: b}, nil
		},
		"server": func() (cli.Command, error) {
			return &server.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
