package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/example/uitheme/theme"
)

type widgetsCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *widgetsCmd) Program() string { return c.root.program + " widgets" }

func (c *widgetsCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseWidgetsCmd(args []string, r *root) (*widgetsCmd, error) {
	fs := flag.NewFlagSet("widgets", flag.ContinueOnError)
	c := &widgetsCmd{root: r, fs: fs}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *widgetsCmd) Run(context.Context) error {
	fmt.Fprintln(c.stdout, "widgets:")
	for _, w := range theme.Widgets() {
		fmt.Fprintf(c.stdout, "  %s\n", w)
	}
	fmt.Fprintln(c.stdout, "states (* marks the fallback state):")
	for _, s := range theme.States() {
		marker := " "
		if s == theme.DefaultState {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %s\n", marker, s)
	}
	return nil
}
