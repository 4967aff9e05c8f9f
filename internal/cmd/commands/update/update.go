package update

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
	return "Replace an item of a resource"
}

func (c *Command) Help() string {
	return `Usage: restc update -config=restc.hcl [options] <resource> <id> <json|->

  PUT a JSON document to the item and print the server's response.
  Use "-" to read the document from stdin.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("update", flag.ContinueOnError))
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
	if len(args) != 3 {
		c.UI.Error("expected exactly three arguments: <resource> <id> <json|->")
		return 1
	}

	body, err := c.ReadBody(args[2])
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

	result, err := s.Endpoint(args[0]).Update(context.Background(), args[1], body, opts...)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error updating %s %s: %v", args[0], args[1], err))
		return 1
	}

	if err := c.Output(result); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
