package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/example/uitheme/internal/clipboard"
	"github.com/example/uitheme/theme"
)

type checkCmd struct {
	*root
	fs        *flag.FlagSet
	clipboard bool
	file      string
}

func (c *checkCmd) Program() string { return c.root.program + " check" }

func (c *checkCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseCheckCmd(args []string, r *root) (*checkCmd, error) {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	c := &checkCmd{root: r, fs: fs}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(c)
	fs.BoolVar(&c.clipboard, "clipboard", false, "check the clipboard text instead of a file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	switch {
	case c.clipboard && fs.NArg() == 0:
	case !c.clipboard && fs.NArg() == 1:
		c.file = fs.Arg(0)
	default:
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *checkCmd) Run(context.Context) error {
	source := c.file
	var (
		t   *theme.Theme
		err error
	)
	if c.clipboard {
		source = "clipboard"
		t, err = clipboard.ReadTheme()
	} else {
		var data []byte
		if data, err = os.ReadFile(c.file); err == nil {
			t, err = theme.Unmarshal(data)
		}
	}
	if err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}
	fmt.Fprintf(c.stdout, "%s: ok, theme %q with %d entries\n", source, t.Name(), t.Len())
	return nil
}
