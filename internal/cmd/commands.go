package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/andzheyevskiy/Toolbox/internal/cmd/base"
	"github.com/andzheyevskiy/Toolbox/internal/cmd/commands/create"
	"github.com/andzheyevskiy/Toolbox/internal/cmd/commands/get"
	"github.com/andzheyevskiy/Toolbox/internal/cmd/commands/list"
	"github.com/andzheyevskiy/Toolbox/internal/cmd/commands/open"
	"github.com/andzheyevskiy/Toolbox/internal/cmd/commands/remove"
	"github.com/andzheyevskiy/Toolbox/internal/cmd/commands/update"
	"github.com/andzheyevskiy/Toolbox/internal/cmd/commands/version"
)

// initCommands returns the restc command table.
func initCommands(log hclog.Logger, ui cli.Ui) map[string]cli.CommandFactory {
	b := &base.Command{
		Log: log,
		UI:  ui,
		FS:  afero.NewOsFs(),
	}

	return map[string]cli.CommandFactory{
		"get": func() (cli.Command, error) {
			return &get.Command{Command: b}, nil
		},
		"list": func() (cli.Command, error) {
			return &list.Command{Command: b}, nil
		},
		"create": func() (cli.Command, error) {
			return &create.Command{Command: b}, nil
		},
		"update": func() (cli.Command, error) {
			return &update.Command{Command: b}, nil
		},
		"delete": func() (cli.Command, error) {
			return &remove.Command{Command: b}, nil
		},
		"open": func() (cli.Command, error) {
			return &open.Command{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}
