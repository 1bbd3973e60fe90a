package main

import (
	"context"
	"flag"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/example/uitheme/theme"
)

type getCmd struct {
	*root
	fs     *flag.FlagSet
	widget theme.Widget
	state  theme.WidgetState
}

func (c *getCmd) Program() string { return c.root.program + " get" }

func (c *getCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseGetCmd(args []string, r *root) (*getCmd, error) {
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	c := &getCmd{root: r, fs: fs, state: theme.DefaultState}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return nil, &UsageError{of: c}
	}
	var err error
	if c.widget, err = theme.ParseWidget(fs.Arg(0)); err != nil {
		return nil, &UsageError{of: c, msg: err.Error()}
	}
	if fs.NArg() == 2 {
		if c.state, err = theme.ParseState(fs.Arg(1)); err != nil {
			return nil, &UsageError{of: c, msg: err.Error()}
		}
	}
	return c, nil
}

func (c *getCmd) Run(ctx context.Context) error {
	t, err := c.resolve(ctx, c.shade())
	if err != nil {
		return err
	}
	props := t.Get(c.widget, c.state)
	data, err := yaml.Marshal(props)
	if err != nil {
		return err
	}
	note := ""
	if !t.Has(c.widget, c.state) {
		note = " (from " + theme.DefaultState.String() + ")"
	}
	fmt.Fprintf(c.stdout, "# %s %s.%s%s\n", t.Name(), c.widget, c.state, note)
	_, err = c.stdout.Write(data)
	return err
}
