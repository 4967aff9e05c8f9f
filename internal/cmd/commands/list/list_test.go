package list

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andzheyevskiy/Toolbox/internal/cmd/base"
	"github.com/andzheyevskiy/Toolbox/pkg/resource/resourcetest"
)

func TestRun(t *testing.T) {
	srv := resourcetest.NewServer(resourcetest.WithCollection("people",
		resourcetest.Item{"name": "a", "age": "3"},
		resourcetest.Item{"name": "b", "age": "4"},
		resourcetest.Item{"name": "c", "age": "3"},
	))
	defer srv.Close()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "restc.hcl", []byte(`
client {
  base_url = "`+srv.URL+`"
}
`), 0o644))

	ui := cli.NewMockUi()
	c := &Command{Command: &base.Command{Log: hclog.NewNullLogger(), UI: ui, FS: fs}}

	code := c.Run([]string{"-config", "restc.hcl", "people", "age=3", "name=c"})
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.JSONEq(t, `[{"id": 3, "name": "c", "age": "3"}]`, ui.OutputWriter.String())

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "age=3&name=c", reqs[0].RawQuery)

	t.Run("bad query argument", func(t *testing.T) {
		ui := cli.NewMockUi()
		c := &Command{Command: &base.Command{Log: hclog.NewNullLogger(), UI: ui, FS: fs}}
		assert.Equal(t, 1, c.Run([]string{"-config", "restc.hcl", "people", "age"}))
		assert.Contains(t, ui.ErrorWriter.String(), "invalid query parameter")
	})

	t.Run("missing resource", func(t *testing.T) {
		ui := cli.NewMockUi()
		c := &Command{Command: &base.Command{Log: hclog.NewNullLogger(), UI: ui, FS: fs}}
		assert.Equal(t, 1, c.Run([]string{"-config", "restc.hcl"}))
		assert.Contains(t, ui.ErrorWriter.String(), "expected a resource name")
	})
}
