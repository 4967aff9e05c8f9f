package open

import (
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andzheyevskiy/Toolbox/internal/cmd/base"
)

func TestRun(t *testing.T) {
	var opened []string
	orig := openURL
	t.Cleanup(func() { openURL = orig })
	openURL = func(url string) error {
		opened = append(opened, url)
		if url == "https://api.example.com/v1/people/broken" {
			return errors.New("no browser")
		}
		return nil
	}

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "restc.hcl", []byte(`
client {
  base_url = "https://api.example.com/v1/"
}

resource "folks" {
  path = "/people/"
}
`), 0o644))

	newCommand := func() (*Command, *cli.MockUi) {
		ui := cli.NewMockUi()
		return &Command{Command: &base.Command{Log: hclog.NewNullLogger(), UI: ui, FS: fs}}, ui
	}

	c, ui := newCommand()
	require.Equal(t, 0, c.Run([]string{"-config", "restc.hcl", "folks"}), ui.ErrorWriter.String())
	assert.Equal(t, "https://api.example.com/v1/people\n", ui.OutputWriter.String())

	c, ui = newCommand()
	require.Equal(t, 0, c.Run([]string{"-config", "restc.hcl", "folks", "a b"}), ui.ErrorWriter.String())
	assert.Equal(t, "https://api.example.com/v1/people/a%20b\n", ui.OutputWriter.String())

	c, ui = newCommand()
	assert.Equal(t, 1, c.Run([]string{"-config", "restc.hcl", "folks", "broken"}))
	assert.Contains(t, ui.ErrorWriter.String(), "no browser")

	assert.Equal(t, []string{
		"https://api.example.com/v1/people",
		"https://api.example.com/v1/people/a%20b",
		"https://api.example.com/v1/people/broken",
	}, opened)
}
