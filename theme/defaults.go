package theme

// Seed colors of the built-in palette, approximating Adwaita.
var (
	lightBackground = hex("#f6f5f4")
	lightForeground = hex("#2e3436")
	darkBackground  = hex("#3d3846")
	darkForeground  = hex("#eeeeec")

	lightSelected = hex("#3584e4")
	darkSelected  = hex("#3584e3").Darken(20)
)

// Palette is the set of colors the default builder derives widget styles
// from.
type Palette struct {
	Text       Color `yaml:"text"`
	Base       Color `yaml:"base"`
	Background Color `yaml:"background"`
	Foreground Color `yaml:"foreground"`

	SelectedForeground Color `yaml:"selected_foreground"`
	SelectedBackground Color `yaml:"selected_background"`
	SelectedBorders    Color `yaml:"selected_borders"`

	Borders         Color `yaml:"borders"`
	AltBorders      Color `yaml:"alt_borders"`
	Link            Color `yaml:"link"`
	SelectedLink    Color `yaml:"selected_link"`
	ScrollbarBg     Color `yaml:"scrollbar_bg"`
	ScrollbarSlider Color `yaml:"scrollbar_slider"`

	DisabledForeground Color `yaml:"disabled_foreground"`
	DisabledBackground Color `yaml:"disabled_background"`
	DisabledBorders    Color `yaml:"disabled_borders"`
}

// NewPalette derives the built-in palette for shade.
func NewPalette(shade Shade) Palette {
	light := shade != ShadeDark
	pick := func(l, d Color) Color {
		if light {
			return l
		}
		return d
	}
	pickPct := func(l, d uint8) uint8 {
		if light {
			return l
		}
		return d
	}

	var p Palette
	p.Text = pick(Black, White)
	p.Base = pick(White, Black)
	p.Background = pick(lightBackground, darkBackground)
	p.Foreground = pick(lightForeground, darkForeground)

	p.SelectedForeground = White
	p.SelectedBackground = pick(lightSelected, darkSelected)
	p.SelectedBorders = p.SelectedBackground.Darken(pickPct(15, 30))

	p.Borders = p.Background.Darken(pickPct(18, 10))
	p.AltBorders = p.Background.Darken(pickPct(24, 18))
	p.Link = p.SelectedBackground.Darken(pickPct(10, 20))
	p.SelectedLink = p.SelectedBackground.Darken(pickPct(20, 10))

	if light {
		p.ScrollbarBg = p.Background.Mix(p.Foreground, 80)
	} else {
		p.ScrollbarBg = p.Base.Mix(p.Background, 50)
	}
	p.ScrollbarSlider = p.Foreground.Mix(p.Background, 60)

	p.DisabledForeground = p.Foreground.Mix(p.Background, 50)
	p.DisabledBackground = p.Background.Mix(p.Base, 60)
	p.DisabledBorders = p.Borders.Mix(p.Background, 80)
	return p
}

// Policy is the table of layout constants the default builder applies. It
// is data so alternate theme packs can reuse the builder with their own
// numbers.
type Policy struct {
	// Bordered lists the widgets that receive a border.
	Bordered map[Widget]bool

	BorderThickness float32
	BorderRadius    float32

	FontSize   float32
	FontFamily FontFamily
	HAlign     TextAlignment
	VAlign     TextAlignment

	Margin  Margin
	Padding Margin

	// DefaultHeight is the square default size of unbordered widgets;
	// BorderedHeight applies to bordered ones.
	DefaultHeight  uint32
	BorderedHeight uint32

	BarLong  uint32
	BarShort uint32
}

// DefaultPolicy returns the reference constants.
func DefaultPolicy() Policy {
	return Policy{
		Bordered:        map[Widget]bool{WidgetButton: true},
		BorderThickness: 2,
		BorderRadius:    1,
		FontSize:        12,
		FontFamily:      SansSerif,
		HAlign:          AlignCenter,
		VAlign:          AlignCenter,
		Margin:          UniformMargin(2),
		Padding:         UniformMargin(2),
		DefaultHeight:   20,
		BorderedHeight:  24,
		BarLong:         16,
		BarShort:        8,
	}
}

// Builder populates every known (widget, state) pair of a theme from a
// palette and a policy.
type Builder struct {
	Palette Palette
	Policy  Policy
}

// NewBuilder returns a builder using the built-in palette for shade and the
// default policy.
func NewBuilder(shade Shade) Builder {
	return Builder{Palette: NewPalette(shade), Policy: DefaultPolicy()}
}

// Build creates a theme named name. It is deterministic and has no side
// effects.
func (b Builder) Build(name string) *Theme {
	t := Empty(name)
	b.Apply(t)
	return t
}

// Apply styles every known (widget, state) pair of t in place.
func (b Builder) Apply(t *Theme) {
	p, pol := b.Palette, b.Policy
	for _, widget := range Widgets() {
		for _, state := range States() {
			props := t.GetMut(widget, state)

			bg, fg := p.Background, p.Foreground
			if state == StateDisabled {
				bg, fg = p.DisabledBackground, p.DisabledForeground
			}
			props.SetBackgroundColor(bg)

			text := NewTextStyle(pol.FontSize, pol.FontFamily)
			text.SetColor(fg).SetHAlignment(pol.HAlign).SetVAlignment(pol.VAlign)
			props.SetTextStyle(text)

			bordered := pol.Bordered[widget]
			if bordered {
				color := p.Borders
				switch state {
				case StateDisabled:
					color = p.DisabledBorders
				case StateSelected:
					color = p.SelectedBorders
				}
				border := NewBorder(pol.BorderThickness, color)
				border.SetRadius(pol.BorderRadius)
				props.SetBorder(border)
			}

			props.SetMargin(pol.Margin).SetPadding(pol.Padding)

			height := pol.DefaultHeight
			if bordered {
				height = pol.BorderedHeight
			}
			props.SetDefaultSize(Size{Width: height, Height: height})
			props.SetMenuBarSize(Size{Width: pol.BarLong, Height: pol.BarShort})
			props.SetScrollBarSize(Size{Width: pol.BarShort, Height: pol.BarLong})
		}
	}
}

// DefaultTheme builds the built-in theme for shade, named "Default_Light"
// or "Default_Dark".
func DefaultTheme(shade Shade) *Theme {
	return NewBuilder(shade).Build(defaultName(shade))
}

func defaultName(shade Shade) string {
	if shade == ShadeDark {
		return "Default_Dark"
	}
	return "Default_Light"
}
