package theme

import (
	"fmt"
	"strings"
)

// TextAlignment positions text along one axis.
type TextAlignment uint8

const (
	AlignLeft TextAlignment = iota
	AlignCenter
	AlignRight
)

func (a TextAlignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return fmt.Sprintf("alignment(%d)", uint8(a))
}

func (a TextAlignment) MarshalText() ([]byte, error) {
	if a > AlignRight {
		return nil, fmt.Errorf("cannot encode %s", a)
	}
	return []byte(a.String()), nil
}

func (a *TextAlignment) UnmarshalText(text []byte) error {
	switch string(text) {
	case "left":
		*a = AlignLeft
	case "center":
		*a = AlignCenter
	case "right":
		*a = AlignRight
	default:
		return fmt.Errorf("unknown text alignment %q", text)
	}
	return nil
}

// FontKind distinguishes the generic font families from a named one.
type FontKind uint8

const (
	FontMonospace FontKind = iota
	FontSansSerif
	FontSerif
	FontCustom
)

// FontFamily is a generic family or a custom font name.
type FontFamily struct {
	kind FontKind
	name string
}

var (
	Monospace = FontFamily{kind: FontMonospace}
	SansSerif = FontFamily{kind: FontSansSerif}
	Serif     = FontFamily{kind: FontSerif}
)

// CustomFont names a specific font family.
func CustomFont(name string) FontFamily {
	return FontFamily{kind: FontCustom, name: name}
}

func (f FontFamily) Kind() FontKind { return f.kind }

// Name returns the custom family name, empty for generic families.
func (f FontFamily) Name() string { return f.name }

func (f FontFamily) String() string {
	switch f.kind {
	case FontMonospace:
		return "monospace"
	case FontSansSerif:
		return "sans-serif"
	case FontSerif:
		return "serif"
	}
	return "custom:" + f.name
}

// ParseFontFamily is the inverse of FontFamily.String. Any other value is
// taken as a custom family name.
func ParseFontFamily(s string) FontFamily {
	switch s {
	case "monospace":
		return Monospace
	case "sans-serif":
		return SansSerif
	case "serif":
		return Serif
	}
	return CustomFont(strings.TrimPrefix(s, "custom:"))
}

func (f FontFamily) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *FontFamily) UnmarshalText(text []byte) error {
	*f = ParseFontFamily(string(text))
	return nil
}

// TextStyle describes how a widget draws text.
type TextStyle struct {
	family        FontFamily
	size          float32
	orientation   float32
	weight        uint16
	italic        bool
	underline     bool
	strikethrough bool
	color         Color
	halignment    TextAlignment
	valignment    TextAlignment
}

// NewTextStyle creates a regular weight, black, left aligned and vertically
// centred style.
func NewTextStyle(size float32, family FontFamily) TextStyle {
	return TextStyle{
		family:     family,
		size:       size,
		weight:     400,
		color:      Black,
		halignment: AlignLeft,
		valignment: AlignCenter,
	}
}

func (t TextStyle) Family() FontFamily { return t.family }

func (t *TextStyle) SetFamily(family FontFamily) *TextStyle {
	t.family = family
	return t
}

// Size returns the size in pixels.
func (t TextStyle) Size() float32 { return t.size }

func (t *TextStyle) SetSize(size float32) *TextStyle {
	t.size = size
	return t
}

// Orientation returns the text rotation in radians.
func (t TextStyle) Orientation() float32 { return t.orientation }

func (t *TextStyle) SetOrientation(orientation float32) *TextStyle {
	t.orientation = orientation
	return t
}

func (t TextStyle) Weight() uint16 { return t.weight }

func (t *TextStyle) SetWeight(weight uint16) *TextStyle {
	t.weight = weight
	return t
}

func (t TextStyle) Italic() bool { return t.italic }

func (t *TextStyle) SetItalic(italic bool) *TextStyle {
	t.italic = italic
	return t
}

func (t TextStyle) Underline() bool { return t.underline }

func (t *TextStyle) SetUnderline(underline bool) *TextStyle {
	t.underline = underline
	return t
}

func (t TextStyle) Strikethrough() bool { return t.strikethrough }

func (t *TextStyle) SetStrikethrough(strikethrough bool) *TextStyle {
	t.strikethrough = strikethrough
	return t
}

func (t TextStyle) Color() Color { return t.color }

func (t *TextStyle) SetColor(color Color) *TextStyle {
	t.color = color
	return t
}

func (t TextStyle) HAlignment() TextAlignment { return t.halignment }

func (t *TextStyle) SetHAlignment(a TextAlignment) *TextStyle {
	t.halignment = a
	return t
}

func (t TextStyle) VAlignment() TextAlignment { return t.valignment }

func (t *TextStyle) SetVAlignment(a TextAlignment) *TextStyle {
	t.valignment = a
	return t
}
