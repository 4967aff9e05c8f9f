package remove

import (
	"context"
	"flag"
	"fmt"

	"github.com/andzheyevskiy/Toolbox/internal/cmd/base"
)

type Command struct {
	*base.Command

	client base.ClientFlags
}

func (c *Command) Synopsis() string {
	return "Delete an item of a resource"
}

func (c *Command) Help() string {
	return `Usage: restc delete -config=restc.hcl [options] <resource> <id>

  DELETE the item and print the response status code. The response body is
  never read.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("delete", flag.ContinueOnError))
	c.client.Add(f, false)
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	args = f.Args()
	if len(args) != 2 {
		c.UI.Error("expected exactly two arguments: <resource> <id>")
		return 1
	}

	s, err := c.Open(&c.client)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	opts, stop := s.Options()
	defer stop()

	status, err := s.Endpoint(args[0]).Remove(context.Background(), args[1], opts...)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error deleting %s %s: %v", args[0], args[1], err))
		return 1
	}

	c.UI.Output(fmt.Sprintf("%d", status))
	return 0
}
