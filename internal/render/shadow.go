package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/example/uitheme/theme"
)

// DropShadow configures the shadow placed under a whole swatch when it is
// exported.
type DropShadow struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultDropShadow returns a soft shadow suited to swatch exports.
func DefaultDropShadow() DropShadow {
	return DropShadow{
		Radius:  12,
		Offset:  image.Pt(6, 6),
		Opacity: 0.45,
	}
}

// WithDropShadow returns img on a larger transparent canvas with a blurred
// shadow of its opaque pixels underneath. The canvas origin is always (0, 0);
// the second result is where img's top-left corner ended up.
func WithDropShadow(img *image.RGBA, opts DropShadow) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img, image.Point{}
	}
	opacity := math.Min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	padded := src.Inset(-radius)
	shadowRect := padded.Add(opts.Offset)
	canvas := src.Union(shadowRect)

	mask := image.NewGray(padded.Sub(padded.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
			}
		}
	}

	dst := image.NewRGBA(canvas.Sub(canvas.Min))
	tint := color.RGBA{A: uint8(opacity*255 + 0.5)}
	compositeMask(dst, blurGray(mask, radius), shadowRect.Min.Sub(canvas.Min), tint)
	draw.Draw(dst, src.Sub(canvas.Min), img, src.Min, draw.Over)
	return dst, src.Min.Sub(canvas.Min)
}

// DrawBoxShadow paints the theme shadow of a box occupying rect into dst.
func DrawBoxShadow(dst *image.RGBA, rect image.Rectangle, shadow theme.Shadow) {
	if rect.Empty() || shadow.Color().A == 0 {
		return
	}
	radius := max(int(math.Round(float64(shadow.Blur()))), 0)
	padded := rect.Inset(-radius)

	mask := image.NewGray(padded.Sub(padded.Min))
	draw.Draw(mask, rect.Sub(padded.Min), image.NewUniform(color.Gray{Y: 0xff}), image.Point{}, draw.Src)

	ox, oy := shadow.Offset()
	origin := padded.Min.Add(image.Pt(int(math.Round(float64(ox))), int(math.Round(float64(oy)))))
	compositeMask(dst, blurGray(mask, radius), origin, shadow.Color())
}

func compositeMask(dst *image.RGBA, mask *image.Gray, at image.Point, c color.Color) {
	draw.DrawMask(dst, mask.Bounds().Add(at), image.NewUniform(c), image.Point{}, mask, mask.Bounds().Min, draw.Over)
}

// blurGray is a separable box blur built on running sums.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	boxPass(w, h, radius,
		func(line, i int) int { return int(src.Pix[line*src.Stride+i]) },
		func(line, i int, v uint8) { tmp.Pix[line*tmp.Stride+i] = v })
	boxPass(h, w, radius,
		func(line, i int) int { return int(tmp.Pix[i*tmp.Stride+line]) },
		func(line, i int, v uint8) { dst.Pix[i*dst.Stride+line] = v })
	return dst
}

// boxPass averages each of lines sequences of n samples over a window of
// radius samples on either side.
func boxPass(n, lines, radius int, get func(line, i int) int, set func(line, i int, v uint8)) {
	prefix := make([]int, n+1)
	for line := 0; line < lines; line++ {
		for i := 0; i < n; i++ {
			prefix[i+1] = prefix[i] + get(line, i)
		}
		for i := 0; i < n; i++ {
			lo := max(i-radius, 0)
			hi := min(i+radius, n-1)
			set(line, i, uint8((prefix[hi+1]-prefix[lo])/(hi-lo+1)))
		}
	}
}
