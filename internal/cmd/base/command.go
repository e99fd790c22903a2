package base

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
)

// Command holds what every subcommand needs: a logger and a UI.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui
}

// NewCommand returns a Command that logs to log and writes output to ui.
func NewCommand(log hclog.Logger, ui cli.Ui) *Command {
	return &Command{
		Log: log,
		UI:  ui,
	}
}
