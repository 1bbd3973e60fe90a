package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/example/uitheme/theme"
)

// Notify holds notification settings.
type Notify struct {
	ShadeChange bool
	Copy        bool
	Export      bool
}

// Override replaces parts of one widget's style in one state. Nil fields
// leave the theme's value alone.
type Override struct {
	Background      *theme.Color
	TextColor       *theme.Color
	TextSize        *float32
	Font            *theme.FontFamily
	BorderColor     *theme.Color
	BorderThickness *float32
	BorderRadius    *float32
	Margin          *float32
	Padding         *float32
	DefaultSize     *theme.Size
}

// Config holds the application configuration.
type Config struct {
	Theme    string
	Shade    string // "light", "dark" or empty to ask the system
	ThemeDir string
	LogLevel string
	Notify   Notify
	Widgets  map[theme.Key]*Override
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:   "", // Empty lets the loader ask the desktop
		Widgets: make(map[theme.Key]*Override),
	}
}

// ApplyEnv lets UITHEME_THEME and UITHEME_SHADE take precedence over the
// file.
func (c *Config) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv("UITHEME_THEME")); v != "" {
		c.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("UITHEME_SHADE")); v != "" {
		if err := setShade(c, v); err != nil {
			return fmt.Errorf("UITHEME_SHADE: %w", err)
		}
	}
	return nil
}

// PreferredShade returns the configured shade and whether one is set.
func (c *Config) PreferredShade() (theme.Shade, bool) {
	shade, err := theme.ParseShade(c.Shade)
	return shade, err == nil
}

// Override returns the override for the pair, creating it if needed.
func (c *Config) Override(widget theme.Widget, state theme.WidgetState) *Override {
	if c.Widgets == nil {
		c.Widgets = make(map[theme.Key]*Override)
	}
	key := theme.Key{Widget: widget, State: state}
	o, ok := c.Widgets[key]
	if !ok {
		o = &Override{}
		c.Widgets[key] = o
	}
	return o
}

func (c *Config) sortedKeys() []theme.Key {
	keys := make([]theme.Key, 0, len(c.Widgets))
	for k := range c.Widgets {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b theme.Key) int {
		if a.Widget != b.Widget {
			return int(a.Widget) - int(b.Widget)
		}
		return int(a.State) - int(b.State)
	})
	return keys
}

// Apply writes every override into t. A pair without its own entry starts
// from the properties Get would have returned for it.
func (c *Config) Apply(t *theme.Theme) {
	for _, key := range c.sortedKeys() {
		o := c.Widgets[key]
		if !t.Has(key.Widget, key.State) {
			inherited := t.Get(key.Widget, key.State)
			*t.GetMut(key.Widget, key.State) = inherited
		}
		o.apply(t.GetMut(key.Widget, key.State))
	}
}

func (o *Override) apply(p *theme.WidgetProperties) {
	if o.Background != nil {
		p.SetBackgroundColor(*o.Background)
	}

	if o.TextColor != nil || o.TextSize != nil || o.Font != nil {
		text, ok := p.TextStyle()
		if !ok {
			text = theme.NewTextStyle(12, theme.SansSerif)
		}
		if o.TextColor != nil {
			text.SetColor(*o.TextColor)
		}
		if o.TextSize != nil {
			text.SetSize(*o.TextSize)
		}
		if o.Font != nil {
			text.SetFamily(*o.Font)
		}
		p.SetTextStyle(text)
	}

	if o.BorderColor != nil || o.BorderThickness != nil || o.BorderRadius != nil {
		border, ok := p.Border()
		if !ok {
			border = theme.NewBorder(1, theme.Black)
		}
		if o.BorderColor != nil {
			border.SetColor(*o.BorderColor)
		}
		if o.BorderThickness != nil {
			border.SetThickness(*o.BorderThickness)
		}
		if o.BorderRadius != nil {
			border.SetRadius(*o.BorderRadius)
		}
		p.SetBorder(border)
	}

	if o.Margin != nil {
		p.SetMargin(theme.UniformMargin(*o.Margin))
	}
	if o.Padding != nil {
		p.SetPadding(theme.UniformMargin(*o.Padding))
	}
	if o.DefaultSize != nil {
		p.SetDefaultSize(*o.DefaultSize)
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Shade != "" {
		fmt.Fprintf(&sb, "shade = %s\n", c.Shade)
	}
	if c.ThemeDir != "" {
		fmt.Fprintf(&sb, "theme_dir = %s\n", c.ThemeDir)
	}
	if c.LogLevel != "" {
		fmt.Fprintf(&sb, "log_level = %s\n", c.LogLevel)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "shade_change = %v\n", c.Notify.ShadeChange)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	sb.WriteString("\n")

	for _, key := range c.sortedKeys() {
		o := c.Widgets[key]
		fmt.Fprintf(&sb, "[widget.%s.%s]\n", key.Widget, key.State)
		if o.Background != nil {
			fmt.Fprintf(&sb, "background = %s\n", toHex(*o.Background))
		}
		if o.TextColor != nil {
			fmt.Fprintf(&sb, "text_color = %s\n", toHex(*o.TextColor))
		}
		if o.TextSize != nil {
			fmt.Fprintf(&sb, "text_size = %g\n", *o.TextSize)
		}
		if o.Font != nil {
			fmt.Fprintf(&sb, "font = %s\n", o.Font)
		}
		if o.BorderColor != nil {
			fmt.Fprintf(&sb, "border_color = %s\n", toHex(*o.BorderColor))
		}
		if o.BorderThickness != nil {
			fmt.Fprintf(&sb, "border_thickness = %g\n", *o.BorderThickness)
		}
		if o.BorderRadius != nil {
			fmt.Fprintf(&sb, "border_radius = %g\n", *o.BorderRadius)
		}
		if o.Margin != nil {
			fmt.Fprintf(&sb, "margin = %g\n", *o.Margin)
		}
		if o.Padding != nil {
			fmt.Fprintf(&sb, "padding = %g\n", *o.Padding)
		}
		if o.DefaultSize != nil {
			fmt.Fprintf(&sb, "default_size = %dx%d\n", o.DefaultSize.Width, o.DefaultSize.Height)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func toHex(c theme.Color) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
