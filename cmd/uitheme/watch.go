package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/example/uitheme/internal/notify"
	"github.com/example/uitheme/internal/preview"
	"github.com/example/uitheme/internal/render"
	"github.com/example/uitheme/theme"
)

type watchCmd struct {
	*root
	fs     *flag.FlagSet
	notify bool
	window bool

	watch     func(context.Context, func(theme.Shade)) error
	runWindow func(*preview.Viewer)
	viewer    *preview.Viewer
}

func (c *watchCmd) Program() string { return c.root.program + " watch" }

func (c *watchCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseWatchCmd(args []string, r *root) (*watchCmd, error) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	c := &watchCmd{root: r, fs: fs, runWindow: (*preview.Viewer).Run}
	if r.loader != nil {
		c.watch = r.loader.Watch
	}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(c)
	fs.BoolVar(&c.notify, "notify", false, "show a desktop notification on each change")
	fs.BoolVar(&c.window, "window", false, "show a live swatch window")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

// noticePreview keeps the notification icon small.
var noticePreview = render.SwatchOptions{
	CellWidth:    96,
	CellHeight:   44,
	LabelWidth:   0,
	HeaderHeight: 0,
	Widgets:      []theme.Widget{theme.WidgetButton, theme.WidgetCheckbox, theme.WidgetEditor},
	States:       []theme.WidgetState{theme.StateEnabled, theme.StatePressed},
}

func (c *watchCmd) Run(ctx context.Context) error {
	if c.notify {
		c.notifier.Enable(notify.EventShadeChange, true)
	}
	if !c.window {
		return c.follow(ctx)
	}

	shade := c.shade()
	t, err := c.resolve(ctx, shade)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.viewer = preview.New(t, preview.WithShade(shade), preview.WithLogger(c.log), preview.WithOnClose(cancel))

	errc := make(chan error, 1)
	go func() { errc <- c.follow(ctx) }()
	c.runWindow(c.viewer)
	cancel()
	return <-errc
}

// follow blocks until ctx ends, reporting every shade change.
func (c *watchCmd) follow(ctx context.Context) error {
	if c.watch == nil {
		return errors.New("watch: no loader")
	}
	err := c.watch(ctx, func(s theme.Shade) { c.changed(ctx, s) })
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *watchCmd) changed(ctx context.Context, s theme.Shade) {
	t, err := c.resolve(ctx, s)
	if err != nil {
		c.log.Warn().Err(err).Stringer("shade", s).Msg("reload theme")
		return
	}
	fmt.Fprintf(c.stdout, "%s\t%s\n", s, t.Name())
	if c.viewer != nil {
		c.viewer.Update(t, s)
	}
	c.notifier.ShadeChanged(ctx, s, t, render.Swatch(t, noticePreview))
}
