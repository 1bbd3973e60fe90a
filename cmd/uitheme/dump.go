package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/example/uitheme/internal/clipboard"
	"github.com/example/uitheme/theme"
)

type dumpCmd struct {
	*root
	fs        *flag.FlagSet
	output    string
	clipboard bool
}

func (c *dumpCmd) Program() string { return c.root.program + " dump" }

func (c *dumpCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseDumpCmd(args []string, r *root) (*dumpCmd, error) {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	c := &dumpCmd{root: r, fs: fs}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "o", "", "write to this file instead of stdout")
	fs.BoolVar(&c.clipboard, "clipboard", false, "copy the YAML to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *dumpCmd) Run(ctx context.Context) error {
	t, err := c.resolve(ctx, c.shade())
	if err != nil {
		return err
	}

	if c.clipboard {
		if err := clipboard.WriteTheme(t); err != nil {
			return fmt.Errorf("copy theme: %w", err)
		}
		c.notifier.Copied(ctx, t.Name())
		if c.output == "" {
			return nil
		}
	}

	data, err := theme.Marshal(t)
	if err != nil {
		return err
	}
	if c.output == "" {
		_, err = c.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(c.output, data, 0o644); err != nil {
		return err
	}
	c.log.Info().Str("path", c.output).Str("theme", t.Name()).Msg("theme written")
	c.notifier.Exported(ctx, c.output)
	return nil
}
