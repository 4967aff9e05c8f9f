package get

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
	return "Fetch a single item of a resource"
}

func (c *Command) Help() string {
	return `Usage: restc get -config=restc.hcl [options] <resource> <id>

  Fetch one item and print it as JSON.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("get", flag.ContinueOnError))
	c.client.Add(f, true)
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

	result, err := s.Endpoint(args[0]).GetOne(context.Background(), args[1], opts...)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error getting %s %s: %v", args[0], args[1], err))
		return 1
	}

	if err := c.Output(result); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
