package theme

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Color is a 32-bit RGBA color. The zero value is transparent black.
type Color struct {
	R, G, B, A uint8
}

// RGBA constructs a Color from its four channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Common colors.
var (
	Black = RGBA(0, 0, 0, 255)
	White = RGBA(255, 255, 255, 255)
)

// hex parses a "#rrggbb" literal. Alpha is always 255.
//
// It panics on malformed input and is only meant for palette literals
// evaluated at package initialization.
func hex(s string) Color {
	if len(s) != 7 || s[0] != '#' {
		panic(fmt.Sprintf("theme: invalid hex color literal %q", s))
	}
	return Color{
		R: hexByte(s[1], s[2]),
		G: hexByte(s[3], s[4]),
		B: hexByte(s[5], s[6]),
		A: 255,
	}
}

func hexByte(hi, lo byte) uint8 {
	return hexDigit(hi)<<4 | hexDigit(lo)
}

func hexDigit(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	panic(fmt.Sprintf("theme: invalid hex digit %q", c))
}

// Darken scales every channel, alpha included, by percent/100.
// The result is truncated, not rounded, and percent is not clamped.
func (c Color) Darken(percent uint8) Color {
	scale := func(ch uint8) uint8 {
		return uint8(uint16(ch) * uint16(percent) / 100)
	}
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}

// Mix linearly interpolates every channel from c towards other.
// A percent of 0 yields c and 100 yields other.
func (c Color) Mix(other Color, percent uint8) Color {
	lerp := func(e, o uint8) uint8 {
		ei, oi := int(e), int(o)
		return uint8(ei + (oi-ei)*int(percent)/100)
	}
	return Color{
		R: lerp(c.R, other.R),
		G: lerp(c.G, other.G),
		B: lerp(c.B, other.B),
		A: lerp(c.A, other.A),
	}
}

// Compare orders colors byte-wise in R, G, B, A order.
func (c Color) Compare(other Color) int {
	a, b := c.Array(), other.Array()
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Array returns the channels as an array.
func (c Color) Array() [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, c.A}
}

// Components returns the four channels.
func (c Color) Components() (r, g, b, a uint8) {
	return c.R, c.G, c.B, c.A
}

// RGBA implements image/color.Color. Channels are treated as non-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	a |= a << 8
	r = uint32(c.R)
	r |= r << 8
	r = r * a / 0xffff
	g = uint32(c.G)
	g |= g << 8
	g = g * a / 0xffff
	b = uint32(c.B)
	b |= b << 8
	b = b * a / 0xffff
	return r, g, b, a
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// MarshalYAML encodes the color as a flow sequence [r, g, b, a].
func (c Color) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, ch := range c.Array() {
		node.Content = append(node.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: fmt.Sprintf("%d", ch),
		})
	}
	return node, nil
}

// UnmarshalYAML decodes a four element channel sequence.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var channels []int
	if err := value.Decode(&channels); err != nil {
		return fmt.Errorf("color: %w", err)
	}
	if len(channels) != 4 {
		return fmt.Errorf("color: expected 4 channels, got %d", len(channels))
	}
	var out [4]uint8
	for i, ch := range channels {
		if ch < 0 || ch > 255 {
			return fmt.Errorf("color: channel %d out of range: %d", i, ch)
		}
		out[i] = uint8(ch)
	}
	*c = Color{R: out[0], G: out[1], B: out[2], A: out[3]}
	return nil
}
