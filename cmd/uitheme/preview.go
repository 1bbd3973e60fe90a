package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/example/uitheme/internal/clipboard"
	"github.com/example/uitheme/internal/preview"
	"github.com/example/uitheme/internal/render"
	"github.com/example/uitheme/theme"
)

type previewCmd struct {
	*root
	fs        *flag.FlagSet
	output    string
	clipboard bool
	window    bool
	shadow    bool
	widgets   string
	states    string
	runWindow func(*preview.Viewer)
}

func (c *previewCmd) Program() string { return c.root.program + " preview" }

func (c *previewCmd) FlagSet() *flag.FlagSet { return c.fs }

func parsePreviewCmd(args []string, r *root) (*previewCmd, error) {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	c := &previewCmd{root: r, fs: fs, runWindow: (*preview.Viewer).Run}
	fs.SetOutput(r.stderr)
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "o", "", "write the swatch to this PNG file")
	fs.BoolVar(&c.clipboard, "clipboard", false, "copy the swatch image to the clipboard")
	fs.BoolVar(&c.window, "window", false, "open a window even when exporting")
	fs.BoolVar(&c.shadow, "shadow", false, "add a drop shadow to exported images")
	fs.StringVar(&c.widgets, "widgets", "", "comma separated widgets to show (default all)")
	fs.StringVar(&c.states, "states", "", "comma separated states to show (default all)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *previewCmd) swatchOptions() (render.SwatchOptions, error) {
	opts := render.DefaultSwatchOptions()
	for _, name := range splitList(c.widgets) {
		w, err := theme.ParseWidget(name)
		if err != nil {
			return opts, err
		}
		opts.Widgets = append(opts.Widgets, w)
	}
	for _, name := range splitList(c.states) {
		s, err := theme.ParseState(name)
		if err != nil {
			return opts, err
		}
		opts.States = append(opts.States, s)
	}
	return opts, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *previewCmd) Run(ctx context.Context) error {
	opts, err := c.swatchOptions()
	if err != nil {
		return &UsageError{of: c, msg: err.Error()}
	}
	shade := c.shade()
	t, err := c.resolve(ctx, shade)
	if err != nil {
		return err
	}

	exporting := c.output != "" || c.clipboard
	if exporting {
		img := render.Swatch(t, opts)
		if c.shadow {
			img, _ = render.WithDropShadow(img, render.DefaultDropShadow())
		}
		if err := c.export(ctx, img); err != nil {
			return err
		}
	}
	if exporting && !c.window {
		return nil
	}

	v := preview.New(t,
		preview.WithShade(shade),
		preview.WithSwatchOptions(opts),
		preview.WithLogger(c.log),
		preview.WithToggle(func(s theme.Shade) (*theme.Theme, error) {
			return c.resolve(ctx, s)
		}),
	)
	c.runWindow(v)
	return nil
}

func (c *previewCmd) export(ctx context.Context, img image.Image) error {
	if c.output != "" {
		if err := writePNG(c.output, img); err != nil {
			return fmt.Errorf("write %s: %w", c.output, err)
		}
		c.log.Info().Str("path", c.output).Msg("swatch written")
		c.notifier.Exported(ctx, c.output)
	}
	if c.clipboard {
		if err := clipboard.WriteImage(img); err != nil {
			return fmt.Errorf("copy swatch: %w", err)
		}
		c.notifier.Copied(ctx, "swatch")
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
