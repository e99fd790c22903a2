package version

import (
	"github.com/readable-research/readable/internal/cmd/base"
	"github.com/readable-research/readable/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version of the binary"
}

func (c *Command) Help() string {
	return `Usage: readable version

  Print the version of the binary.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
