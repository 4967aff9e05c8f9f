package version

import (
	"github.com/andzheyevskiy/Toolbox/internal/cmd/base"
	"github.com/andzheyevskiy/Toolbox/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return "Usage: restc version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(version.Version)
	return 0
}
