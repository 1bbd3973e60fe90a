package theme

import "slices"

// Border describes the outline of a widget.
type Border struct {
	thickness float32
	color     Color
	dashes    []float32
	radius    float32
}

// NewBorder creates a solid, square-cornered border.
func NewBorder(thickness float32, color Color) Border {
	return Border{thickness: thickness, color: color}
}

func (b Border) Thickness() float32 { return b.thickness }

func (b *Border) SetThickness(thickness float32) *Border {
	b.thickness = thickness
	return b
}

func (b Border) Color() Color { return b.color }

func (b *Border) SetColor(color Color) *Border {
	b.color = color
	return b
}

// Dashes returns the dash lengths if the border is dashed.
func (b Border) Dashes() ([]float32, bool) {
	if b.dashes == nil {
		return nil, false
	}
	return slices.Clone(b.dashes), true
}

// SetDashes makes the border dashed. The slice is copied.
func (b *Border) SetDashes(dashes ...float32) *Border {
	b.dashes = append(make([]float32, 0, len(dashes)), dashes...)
	return b
}

// Radius returns the rounding radius of the corners.
func (b Border) Radius() float32 { return b.radius }

func (b *Border) SetRadius(radius float32) *Border {
	b.radius = radius
	return b
}

func (b Border) clone() Border {
	if b.dashes != nil {
		b.dashes = slices.Clone(b.dashes)
	}
	return b
}

// FillKind identifies how a Fill paints.
type FillKind uint8

const (
	// FillSolid paints a single color.
	FillSolid FillKind = iota
)

// Fill is a background paint. Only solid colors exist today.
type Fill struct {
	kind  FillKind
	color Color
}

// SolidFill creates a fill painting a single color.
func SolidFill(color Color) Fill {
	return Fill{kind: FillSolid, color: color}
}

func (f Fill) Kind() FillKind { return f.kind }

// Solid returns the fill color when the fill is solid.
func (f Fill) Solid() (Color, bool) {
	if f.kind != FillSolid {
		return Color{}, false
	}
	return f.color, true
}

// Shadow is a text or box shadow.
type Shadow struct {
	color   Color
	offsetX float32
	offsetY float32
	blur    float32
}

// NewShadow creates an unblurred shadow directly under its subject.
func NewShadow(color Color) Shadow {
	return Shadow{color: color}
}

func (s Shadow) Color() Color { return s.color }

func (s *Shadow) SetColor(color Color) *Shadow {
	s.color = color
	return s
}

func (s Shadow) Offset() (x, y float32) { return s.offsetX, s.offsetY }

func (s *Shadow) SetOffset(x, y float32) *Shadow {
	s.offsetX, s.offsetY = x, y
	return s
}

func (s Shadow) Blur() float32 { return s.blur }

func (s *Shadow) SetBlur(blur float32) *Shadow {
	s.blur = blur
	return s
}

// Margin holds four edge insets. It is also used for padding.
type Margin struct {
	left, right, top, bottom float32
}

func NewMargin(left, right, top, bottom float32) Margin {
	return Margin{left: left, right: right, top: top, bottom: bottom}
}

// UniformMargin uses the same inset on every edge.
func UniformMargin(v float32) Margin {
	return Margin{left: v, right: v, top: v, bottom: v}
}

func (m Margin) Left() float32   { return m.left }
func (m Margin) Right() float32  { return m.right }
func (m Margin) Top() float32    { return m.top }
func (m Margin) Bottom() float32 { return m.bottom }

func (m *Margin) SetLeft(v float32) *Margin {
	m.left = v
	return m
}

func (m *Margin) SetRight(v float32) *Margin {
	m.right = v
	return m
}

func (m *Margin) SetTop(v float32) *Margin {
	m.top = v
	return m
}

func (m *Margin) SetBottom(v float32) *Margin {
	m.bottom = v
	return m
}

// Size is a width and height in pixels.
type Size struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}
