package base

import (
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andzheyevskiy/Toolbox/pkg/resource"
)

func TestFlagSet_Help(t *testing.T) {
	var cf ClientFlags
	f := NewFlagSet(flag.NewFlagSet("get", flag.ContinueOnError))
	cf.Add(f, true)

	help := f.Help()
	assert.True(t, strings.HasPrefix(help, "\n\nOptions:"))
	assert.Contains(t, help, "-config=<string>")
	assert.Contains(t, help, "-timeout=<duration>")
	assert.Contains(t, help, "-raw\n")
	assert.Contains(t, help, "May be repeated")
}

func TestFlagSet_ParseErrorIsReturned(t *testing.T) {
	f := NewFlagSet(flag.NewFlagSet("get", flag.ContinueOnError))
	err := f.Parse([]string{"-nope"})
	assert.Error(t, err)
}

func TestClientFlags_Headers(t *testing.T) {
	var cf ClientFlags
	f := NewFlagSet(flag.NewFlagSet("get", flag.ContinueOnError))
	cf.Add(f, false)

	require.NoError(t, f.Parse([]string{"-H", "X-A=1", "-H", "X-B = two=2", "people"}))
	assert.Equal(t, StringMapValue{"X-A": "1", "X-B": " two=2"}, cf.Headers)
	assert.Equal(t, []string{"people"}, f.Args())
	assert.Nil(t, f.Lookup("raw"))

	assert.Error(t, f.Parse([]string{"-H", "novalue"}))
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery([]string{"b=2", "a=1", "empty="})
	require.NoError(t, err)
	assert.Equal(t, resource.Pairs("b", "2", "a", "1", "empty", ""), q)
	assert.Equal(t, "b=2&a=1&empty=", q.Encode())

	_, err = ParseQuery([]string{"=x"})
	assert.Error(t, err)
	_, err = ParseQuery([]string{"flag"})
	assert.Error(t, err)
}

func TestReadBody(t *testing.T) {
	c := &Command{Stdin: strings.NewReader(" {\"name\": \"f\"}\n")}

	body, err := c.ReadBody("-")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "f"}`, string(body))

	body, err = c.ReadBody(`[1, 2]`)
	require.NoError(t, err)
	assert.JSONEq(t, `[1, 2]`, string(body))

	_, err = c.ReadBody(`{name: f}`)
	assert.ErrorContains(t, err, "not valid JSON")
}
