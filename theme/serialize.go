package theme

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Marshal encodes t as a YAML document.
func Marshal(t *Theme) ([]byte, error) {
	return yaml.Marshal(t)
}

// Unmarshal decodes a YAML document produced by Marshal. The result holds an
// entry for every known widget in DefaultState, whether or not the document
// listed one.
func Unmarshal(data []byte) (*Theme, error) {
	t := &Theme{}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, err
	}
	t.ensureDefaults()
	return t, nil
}

type themeYAML struct {
	Name    string      `yaml:"name"`
	Entries []entryYAML `yaml:"entries"`
}

type entryYAML struct {
	Widget     Widget           `yaml:"widget"`
	State      WidgetState      `yaml:"state"`
	Properties WidgetProperties `yaml:"properties"`
}

func (t *Theme) MarshalYAML() (any, error) {
	out := themeYAML{Name: t.name}
	for _, k := range t.Keys() {
		out.Entries = append(out.Entries, entryYAML{
			Widget:     k.Widget,
			State:      k.State,
			Properties: *t.properties[k],
		})
	}
	return out, nil
}

func (t *Theme) UnmarshalYAML(value *yaml.Node) error {
	var in themeYAML
	if err := value.Decode(&in); err != nil {
		return err
	}
	props := make(map[Key]*WidgetProperties, len(in.Entries))
	for _, e := range in.Entries {
		if !e.Widget.Known() {
			return errors.New("theme: entry without a known widget")
		}
		if !e.State.Known() {
			return fmt.Errorf("theme: %s entry without a known state", e.Widget)
		}
		key := Key{Widget: e.Widget, State: e.State}
		if _, dup := props[key]; dup {
			return fmt.Errorf("theme: duplicate entry %s", key)
		}
		p := e.Properties
		props[key] = &p
	}
	t.name = in.Name
	t.properties = props
	t.ensureDefaults()
	return nil
}

type propertiesYAML struct {
	Border        *Border    `yaml:"border"`
	Background    *Fill      `yaml:"background"`
	Text          *TextStyle `yaml:"text"`
	MenuText      *TextStyle `yaml:"menu_text"`
	TextShadow    *Shadow    `yaml:"text_shadow"`
	BoxShadow     *Shadow    `yaml:"box_shadow"`
	Margin        *Margin    `yaml:"margin"`
	Padding       *Margin    `yaml:"padding"`
	DefaultSize   *Size      `yaml:"default_size"`
	MenuBarSize   *Size      `yaml:"menu_bar_size"`
	ScrollBarSize *Size      `yaml:"scroll_bar_size"`
}

func (p WidgetProperties) MarshalYAML() (any, error) {
	return propertiesYAML{
		Border:        p.border,
		Background:    p.background,
		Text:          p.text,
		MenuText:      p.menuText,
		TextShadow:    p.textShadow,
		BoxShadow:     p.boxShadow,
		Margin:        p.margin,
		Padding:       p.padding,
		DefaultSize:   p.defaultSize,
		MenuBarSize:   p.menuBarSize,
		ScrollBarSize: p.scrollBarSize,
	}, nil
}

func (p *WidgetProperties) UnmarshalYAML(value *yaml.Node) error {
	var in propertiesYAML
	if err := value.Decode(&in); err != nil {
		return err
	}
	*p = WidgetProperties{
		border:        in.Border,
		background:    in.Background,
		text:          in.Text,
		menuText:      in.MenuText,
		textShadow:    in.TextShadow,
		boxShadow:     in.BoxShadow,
		margin:        in.Margin,
		padding:       in.Padding,
		defaultSize:   in.DefaultSize,
		menuBarSize:   in.MenuBarSize,
		scrollBarSize: in.ScrollBarSize,
	}
	return nil
}

// borderYAML keeps dashes behind a pointer so a solid border encodes as null
// and an empty dash list as [].
type borderYAML struct {
	Thickness float32    `yaml:"thickness"`
	Color     Color      `yaml:"color"`
	Dashes    *[]float32 `yaml:"dashes"`
	Radius    float32    `yaml:"radius"`
}

func (b Border) MarshalYAML() (any, error) {
	out := borderYAML{Thickness: b.thickness, Color: b.color, Radius: b.radius}
	if b.dashes != nil {
		dashes := b.dashes
		out.Dashes = &dashes
	}
	return out, nil
}

func (b *Border) UnmarshalYAML(value *yaml.Node) error {
	var in borderYAML
	if err := value.Decode(&in); err != nil {
		return err
	}
	*b = Border{thickness: in.Thickness, color: in.Color, radius: in.Radius}
	if in.Dashes != nil {
		b.dashes = append(make([]float32, 0, len(*in.Dashes)), *in.Dashes...)
	}
	return nil
}

type fillYAML struct {
	Solid *Color `yaml:"solid"`
}

func (f Fill) MarshalYAML() (any, error) {
	c, ok := f.Solid()
	if !ok {
		return nil, fmt.Errorf("fill: cannot encode kind %d", f.kind)
	}
	return fillYAML{Solid: &c}, nil
}

func (f *Fill) UnmarshalYAML(value *yaml.Node) error {
	var in fillYAML
	if err := value.Decode(&in); err != nil {
		return err
	}
	if in.Solid == nil {
		return errors.New("fill: missing solid color")
	}
	*f = SolidFill(*in.Solid)
	return nil
}

type shadowYAML struct {
	Color   Color   `yaml:"color"`
	OffsetX float32 `yaml:"offset_x"`
	OffsetY float32 `yaml:"offset_y"`
	Blur    float32 `yaml:"blur"`
}

func (s Shadow) MarshalYAML() (any, error) {
	return shadowYAML{Color: s.color, OffsetX: s.offsetX, OffsetY: s.offsetY, Blur: s.blur}, nil
}

func (s *Shadow) UnmarshalYAML(value *yaml.Node) error {
	var in shadowYAML
	if err := value.Decode(&in); err != nil {
		return err
	}
	*s = Shadow{color: in.Color, offsetX: in.OffsetX, offsetY: in.OffsetY, blur: in.Blur}
	return nil
}

type marginYAML struct {
	Left   float32 `yaml:"left"`
	Right  float32 `yaml:"right"`
	Top    float32 `yaml:"top"`
	Bottom float32 `yaml:"bottom"`
}

func (m Margin) MarshalYAML() (any, error) {
	return marginYAML{Left: m.left, Right: m.right, Top: m.top, Bottom: m.bottom}, nil
}

func (m *Margin) UnmarshalYAML(value *yaml.Node) error {
	var in marginYAML
	if err := value.Decode(&in); err != nil {
		return err
	}
	*m = NewMargin(in.Left, in.Right, in.Top, in.Bottom)
	return nil
}

type textStyleYAML struct {
	Family        FontFamily    `yaml:"family"`
	Size          float32       `yaml:"size"`
	Orientation   float32       `yaml:"orientation"`
	Weight        uint16        `yaml:"weight"`
	Italic        bool          `yaml:"italic"`
	Underline     bool          `yaml:"underline"`
	Strikethrough bool          `yaml:"strikethrough"`
	Color         Color         `yaml:"color"`
	HAlignment    TextAlignment `yaml:"halignment"`
	VAlignment    TextAlignment `yaml:"valignment"`
}

func (t TextStyle) MarshalYAML() (any, error) {
	return textStyleYAML{
		Family:        t.family,
		Size:          t.size,
		Orientation:   t.orientation,
		Weight:        t.weight,
		Italic:        t.italic,
		Underline:     t.underline,
		Strikethrough: t.strikethrough,
		Color:         t.color,
		HAlignment:    t.halignment,
		VAlignment:    t.valignment,
	}, nil
}

func (t *TextStyle) UnmarshalYAML(value *yaml.Node) error {
	var in textStyleYAML
	if err := value.Decode(&in); err != nil {
		return err
	}
	*t = TextStyle{
		family:        in.Family,
		size:          in.Size,
		orientation:   in.Orientation,
		weight:        in.Weight,
		italic:        in.Italic,
		underline:     in.Underline,
		strikethrough: in.Strikethrough,
		color:         in.Color,
		halignment:    in.HAlignment,
		valignment:    in.VAlignment,
	}
	return nil
}
