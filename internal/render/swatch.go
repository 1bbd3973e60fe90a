package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/uitheme/theme"
)

// SwatchOptions controls the swatch layout: one row per widget and one
// column per state.
type SwatchOptions struct {
	CellWidth    int
	CellHeight   int
	LabelWidth   int
	HeaderHeight int
	// Widgets and States select and order the grid. Nil means all known.
	Widgets []theme.Widget
	States  []theme.WidgetState
}

func DefaultSwatchOptions() SwatchOptions {
	return SwatchOptions{
		CellWidth:    96,
		CellHeight:   44,
		LabelWidth:   176,
		HeaderHeight: 22,
	}
}

// Size returns the image bounds Swatch produces for opts.
func (o SwatchOptions) Size() image.Point {
	return image.Pt(
		o.LabelWidth+o.CellWidth*len(o.states()),
		o.HeaderHeight+o.CellHeight*len(o.widgets()),
	)
}

func (o SwatchOptions) widgets() []theme.Widget {
	if o.Widgets == nil {
		return theme.Widgets()
	}
	return o.Widgets
}

func (o SwatchOptions) states() []theme.WidgetState {
	if o.States == nil {
		return []theme.WidgetState{
			theme.StateEnabled,
			theme.StateHovered,
			theme.StatePressed,
			theme.StateFocused,
			theme.StateSelected,
			theme.StateChecked,
			theme.StateDisabled,
		}
	}
	return o.States
}

// CellRect returns the rectangle of the cell at row, col.
func (o SwatchOptions) CellRect(row, col int) image.Rectangle {
	min := image.Pt(o.LabelWidth+col*o.CellWidth, o.HeaderHeight+row*o.CellHeight)
	return image.Rectangle{Min: min, Max: min.Add(image.Pt(o.CellWidth, o.CellHeight))}
}

// Swatch renders every selected (widget, state) pair of t. Labels are
// skipped when LabelWidth or HeaderHeight is zero.
func Swatch(t *theme.Theme, opts SwatchOptions) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: opts.Size()})
	faces := newFaceCache()

	page := theme.White
	if fill, ok := t.Get(theme.WidgetTabBody, theme.StateEnabled).Background(); ok {
		if c, ok := fill.Solid(); ok {
			page = c
		}
	}
	ink := theme.Black
	if text, ok := t.Get(theme.WidgetTextLabel, theme.StateEnabled).TextStyle(); ok {
		ink = text.Color()
	}
	draw.Draw(dst, dst.Bounds(), image.NewUniform(page), image.Point{}, draw.Src)

	states := opts.states()
	if opts.HeaderHeight > 0 {
		for col, state := range states {
			r := opts.CellRect(0, col)
			label(dst, image.Pt(r.Min.X+4, opts.HeaderHeight-6), state.String(), ink)
		}
	}
	for row, widget := range opts.widgets() {
		if opts.LabelWidth > 0 {
			r := opts.CellRect(row, 0)
			label(dst, image.Pt(4, r.Min.Y+opts.CellHeight/2+4), widget.String(), ink)
		}
		for col, state := range states {
			DrawWidget(dst, opts.CellRect(row, col), t.Get(widget, state), state.String(), faces)
		}
	}
	return dst
}

func label(dst draw.Image, at image.Point, s string, c theme.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13, Dot: fixed.P(at.X, at.Y)}
	d.DrawString(s)
}

// DrawWidget draws a placeholder widget styled by props inside cell. Absent
// properties are simply not drawn.
func DrawWidget(dst *image.RGBA, cell image.Rectangle, props theme.WidgetProperties, text string, faces *FaceCache) {
	box := cell
	if m, ok := props.Margin(); ok {
		box = inset(box, m)
	}
	if size, ok := props.DefaultSize(); ok {
		h := min(int(size.Height), box.Dy())
		top := box.Min.Y + (box.Dy()-h)/2
		box = image.Rect(box.Min.X, top, box.Max.X, top+h)
	}
	if box.Empty() {
		return
	}

	if shadow, ok := props.BoxShadow(); ok {
		DrawBoxShadow(dst, box, shadow)
	}

	layer := image.NewRGBA(box)
	if fill, ok := props.Background(); ok {
		if c, ok := fill.Solid(); ok {
			draw.Draw(layer, box, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}
	radius := 0
	if border, ok := props.Border(); ok {
		drawBorder(layer, box, border)
		radius = round(border.Radius())
	}
	if radius > 0 {
		draw.DrawMask(dst, box, layer, box.Min, roundedMask(box, radius), box.Min, draw.Over)
	} else {
		draw.Draw(dst, box, layer, box.Min, draw.Over)
	}

	style, ok := props.TextStyle()
	if !ok || text == "" {
		return
	}
	inner := box
	if p, ok := props.Padding(); ok {
		inner = inset(inner, p)
	}
	if shadow, ok := props.TextShadow(); ok {
		ox, oy := shadow.Offset()
		shifted := inner.Add(image.Pt(int(math.Round(float64(ox))), int(math.Round(float64(oy)))))
		drawText(dst, shifted, text, style, shadow.Color(), faces)
	}
	drawText(dst, inner, text, style, style.Color(), faces)
}

func inset(r image.Rectangle, m theme.Margin) image.Rectangle {
	out := image.Rect(
		r.Min.X+round(m.Left()),
		r.Min.Y+round(m.Top()),
		r.Max.X-round(m.Right()),
		r.Max.Y-round(m.Bottom()),
	)
	if out.Dx() < 0 || out.Dy() < 0 {
		return image.Rectangle{Min: out.Min, Max: out.Min}
	}
	return out
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}

func drawBorder(dst *image.RGBA, r image.Rectangle, b theme.Border) {
	thick := max(round(b.Thickness()), 0)
	if thick == 0 {
		return
	}
	src := image.NewUniform(b.Color())
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thick),
		image.Rect(r.Min.X, r.Max.Y-thick, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y+thick, r.Min.X+thick, r.Max.Y-thick),
		image.Rect(r.Max.X-thick, r.Min.Y+thick, r.Max.X, r.Max.Y-thick),
	}
	dashes, dashed := b.Dashes()
	for _, e := range edges {
		e = e.Intersect(r)
		if !dashed || len(dashes) == 0 {
			draw.Draw(dst, e, src, image.Point{}, draw.Over)
			continue
		}
		drawDashedEdge(dst, e, dashes, src)
	}
}

// roundedMask is opaque over r except outside a circle of the given radius
// in each corner.
func roundedMask(r image.Rectangle, radius int) *image.Alpha {
	mask := image.NewAlpha(r)
	radius = min(radius, r.Dx()/2, r.Dy()/2)
	rr := float64(radius) * float64(radius)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cx, cy := x, y
			switch {
			case x < r.Min.X+radius:
				cx = r.Min.X + radius
			case x >= r.Max.X-radius:
				cx = r.Max.X - radius - 1
			}
			switch {
			case y < r.Min.Y+radius:
				cy = r.Min.Y + radius
			case y >= r.Max.Y-radius:
				cy = r.Max.Y - radius - 1
			}
			dx, dy := float64(x-cx), float64(y-cy)
			if dx*dx+dy*dy <= rr {
				mask.SetAlpha(x, y, color.Alpha{A: 0xff})
			}
		}
	}
	return mask
}

// drawDashedEdge alternates on and off segments along the long axis of e,
// cycling through dashes.
func drawDashedEdge(dst *image.RGBA, e image.Rectangle, dashes []float32, src image.Image) {
	horizontal := e.Dx() >= e.Dy()
	length := e.Dy()
	if horizontal {
		length = e.Dx()
	}
	on := true
	for pos, i := 0, 0; pos < length; i++ {
		seg := max(round(dashes[i%len(dashes)]), 1)
		if on {
			var part image.Rectangle
			if horizontal {
				part = image.Rect(e.Min.X+pos, e.Min.Y, min(e.Min.X+pos+seg, e.Max.X), e.Max.Y)
			} else {
				part = image.Rect(e.Min.X, e.Min.Y+pos, e.Max.X, min(e.Min.Y+pos+seg, e.Max.Y))
			}
			draw.Draw(dst, part, src, image.Point{}, draw.Over)
		}
		on = !on
		pos += seg
	}
}

func drawText(dst *image.RGBA, r image.Rectangle, s string, style theme.TextStyle, c theme.Color, faces *FaceCache) {
	face := faces.Face(style.Size())
	metrics := face.Metrics()
	ascent, descent := metrics.Ascent.Ceil(), metrics.Descent.Ceil()
	width := font.MeasureString(face, s).Ceil()

	x := r.Min.X
	switch style.HAlignment() {
	case theme.AlignCenter:
		x += (r.Dx() - width) / 2
	case theme.AlignRight:
		x = r.Max.X - width
	}
	y := r.Min.Y + ascent
	switch style.VAlignment() {
	case theme.AlignCenter:
		y = r.Min.Y + (r.Dy()-ascent-descent)/2 + ascent
	case theme.AlignRight:
		y = r.Max.Y - descent
	}

	src := image.NewUniform(c)
	d := &font.Drawer{Dst: dst, Src: src, Face: face, Dot: fixed.P(x, y)}
	d.DrawString(s)
	if style.Underline() {
		draw.Draw(dst, image.Rect(x, y+1, x+width, y+2), src, image.Point{}, draw.Over)
	}
	if style.Strikethrough() {
		mid := y - ascent/3
		draw.Draw(dst, image.Rect(x, mid, x+width, mid+1), src, image.Point{}, draw.Over)
	}
}

var (
	regularOnce sync.Once
	regularFont *opentype.Font
)

func goRegular() *opentype.Font {
	regularOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err == nil {
			regularFont = f
		}
	})
	return regularFont
}

// FaceCache hands out Go Regular faces by pixel size. It is not safe for
// concurrent use.
type FaceCache struct {
	faces map[float32]font.Face
}

func newFaceCache() *FaceCache {
	return &FaceCache{faces: make(map[float32]font.Face)}
}

// NewFaceCache creates an empty cache.
func NewFaceCache() *FaceCache { return newFaceCache() }

// Face returns a face for size, falling back to the 7x13 bitmap face.
func (c *FaceCache) Face(size float32) font.Face {
	if face, ok := c.faces[size]; ok {
		return face
	}
	var face font.Face = basicfont.Face7x13
	if f := goRegular(); f != nil && size > 0 {
		if sized, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull}); err == nil {
			face = sized
		}
	}
	c.faces[size] = face
	return face
}
