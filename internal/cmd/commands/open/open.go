package open

import (
	"flag"
	"fmt"

	"github.com/pkg/browser"

	"github.com/andzheyevskiy/Toolbox/internal/cmd/base"
)

// openURL is replaced in tests.
var openURL = browser.OpenURL

type Command struct {
	*base.Command

	client base.ClientFlags
}

func (c *Command) Synopsis() string {
	return "Open a resource URL in the browser"
}

func (c *Command) Help() string {
	return `Usage: restc open -config=restc.hcl <resource> [id]

  Open the collection URL, or the item URL when an id is given, in the
  default browser.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("open", flag.ContinueOnError))
	f.StringVar(
		&c.client.ConfigPath, "config", "",
		"Path to the configuration file (HCL, JSON or YAML)",
	)
	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	args = f.Args()
	if len(args) < 1 || len(args) > 2 {
		c.UI.Error("expected arguments: <resource> [id]")
		return 1
	}

	s, err := c.Open(&c.client)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	e := s.Endpoint(args[0])
	url := e.CollectionURL()
	if len(args) == 2 {
		url = e.ItemURL(args[1])
	}

	c.Log.Debug("opening browser", "url", url)
	if err := openURL(url); err != nil {
		c.UI.Error(fmt.Sprintf("error opening browser: %v", err))
		c.UI.Output(url)
		return 1
	}
	c.UI.Output(url)
	return 0
}
