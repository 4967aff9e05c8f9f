package list

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
	return "List the items of a resource"
}

func (c *Command) Help() string {
	return `Usage: restc list -config=restc.hcl [options] <resource> [key=value ...]

  List a collection. Trailing key=value arguments become query parameters
  and are sent in the order given.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("list", flag.ContinueOnError))
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
	if len(args) < 1 {
		c.UI.Error("expected a resource name")
		return 1
	}

	query, err := base.ParseQuery(args[1:])
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	s, err := c.Open(&c.client)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	opts, stop := s.Options()
	defer stop()

	result, err := s.Endpoint(args[0]).GetMany(context.Background(), query, opts...)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listing %s: %v", args[0], err))
		return 1
	}

	if err := c.Output(result); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
