// Package base holds what every restc command shares: the logger, the UI
// and the flag plumbing.
package base

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
)

// Command is embedded by every restc command.
type Command struct {
	Log hclog.Logger
	UI  cli.Ui

	// FS is where configuration files are read from. Defaults to the OS
	// filesystem.
	FS afero.Fs

	// Stdin is read when a body argument is "-". Defaults to os.Stdin.
	Stdin io.Reader
}

func (c *Command) fs() afero.Fs {
	if c.FS == nil {
		return afero.NewOsFs()
	}
	return c.FS
}

func (c *Command) stdin() io.Reader {
	if c.Stdin == nil {
		return os.Stdin
	}
	return c.Stdin
}

// FlagSet wraps a flag.FlagSet so commands can render their flags in Help.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet wraps f. Flag errors are returned from Parse instead of being
// printed, the caller reports them through its UI.
func NewFlagSet(f *flag.FlagSet) *FlagSet {
	f.SetOutput(new(bytes.Buffer))
	return &FlagSet{FlagSet: f}
}

// Help renders the flags in a form suitable for appending to command help.
func (f *FlagSet) Help() string {
	var b strings.Builder
	b.WriteString("\n\nOptions:\n")

	f.VisitAll(func(fl *flag.Flag) {
		name, usage := flag.UnquoteUsage(fl)
		fmt.Fprintf(&b, "\n  -%s", fl.Name)
		if name != "" {
			fmt.Fprintf(&b, "=<%s>", name)
		}
		if fl.DefValue != "" && fl.DefValue != "false" && fl.DefValue != "0s" {
			fmt.Fprintf(&b, " (default: %s)", fl.DefValue)
		}
		fmt.Fprintf(&b, "\n      %s\n", usage)
	})

	return strings.TrimRight(b.String(), "\n")
}

// StringMapValue is a repeatable "key=value" flag.
type StringMapValue map[string]string

func (m StringMapValue) String() string {
	pairs := make([]string, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, k+"="+v)
	}
	return strings.Join(pairs, ",")
}

func (m StringMapValue) Set(value string) error {
	k, v, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("expected key=value, got %q", value)
	}
	m[strings.TrimSpace(k)] = v
	return nil
}
