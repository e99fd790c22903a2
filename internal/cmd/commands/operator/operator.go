package operator

import (
	"github.com/mitchellh/cli"

	"github.com/readable-research/readable/internal/cmd/base"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Perform operator-specific tasks"
}

func (c *Command) Help() string {
	return `Usage: readable operator <subcommand> [options] [args]

  This command groups subcommands for operators maintaining a papers
  directory.`
}

func (c *Command) Run(args []string) int {
	return cli.RunResultHelp
}
