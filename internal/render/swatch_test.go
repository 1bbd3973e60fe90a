package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"

	"github.com/example/uitheme/theme"
)

func rgba(c theme.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func TestSwatchSizeCoversEveryPair(t *testing.T) {
	opts := DefaultSwatchOptions()
	size := opts.Size()
	require.Equal(t, 176+96*7, size.X)
	require.Equal(t, 22+44*len(theme.Widgets()), size.Y)

	img := Swatch(theme.DefaultTheme(theme.ShadeLight), opts)
	require.Equal(t, image.Rectangle{Max: size}, img.Bounds())
}

func TestCellRect(t *testing.T) {
	opts := DefaultSwatchOptions()
	require.Equal(t, image.Rect(176, 22, 272, 66), opts.CellRect(0, 0))
	require.Equal(t, image.Rect(368, 110, 464, 154), opts.CellRect(2, 2))
}

func TestSwatchButtonCells(t *testing.T) {
	palette := theme.NewPalette(theme.ShadeLight)
	opts := DefaultSwatchOptions()
	opts.Widgets = []theme.Widget{theme.WidgetButton}
	opts.States = []theme.WidgetState{theme.StateEnabled, theme.StateDisabled}

	img := Swatch(theme.DefaultTheme(theme.ShadeLight), opts)
	page := rgba(palette.Background)

	// Margin 2 and a 24px default height centre the box at (178,32)-(270,56).
	require.Equal(t, page, img.RGBAAt(177, 44), "margin shows the page")
	require.Equal(t, page, img.RGBAAt(178, 32), "rounded corner is knocked out")
	require.NotEqual(t, page, img.RGBAAt(180, 32), "top border")
	require.NotEqual(t, page, img.RGBAAt(178, 44), "left border")

	// Inside the border and padding, clear of the centred label.
	require.Equal(t, rgba(palette.DisabledBackground), img.RGBAAt(277, 44))
}

func TestDrawWidgetDashedBorder(t *testing.T) {
	red := theme.RGBA(255, 0, 0, 255)
	border := theme.NewBorder(1, red)
	border.SetDashes(4, 4)
	var props theme.WidgetProperties
	props.SetBorder(border)

	dst := image.NewRGBA(image.Rect(0, 0, 20, 10))
	DrawWidget(dst, dst.Bounds(), props, "", NewFaceCache())

	require.Equal(t, rgba(red), dst.RGBAAt(1, 0))
	require.Zero(t, dst.RGBAAt(5, 0).A)
	require.Equal(t, rgba(red), dst.RGBAAt(9, 0))
	require.Zero(t, dst.RGBAAt(10, 5).A, "interior has no background")
}

func TestDrawWidgetEmptyPropertiesDrawsNothing(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	DrawWidget(dst, dst.Bounds(), theme.WidgetProperties{}, "text", NewFaceCache())
	for _, v := range dst.Pix {
		require.Zero(t, v)
	}
}

func TestInsetClampsToEmpty(t *testing.T) {
	r := inset(image.Rect(0, 0, 10, 10), theme.UniformMargin(8))
	require.True(t, r.Empty())
	require.Equal(t, image.Rect(1, 2, 7, 6), inset(image.Rect(0, 0, 10, 10), theme.NewMargin(1, 3, 2, 4)))
}

func TestRoundedMask(t *testing.T) {
	m := roundedMask(image.Rect(0, 0, 10, 10), 3)
	require.Zero(t, m.AlphaAt(0, 0).A)
	require.Zero(t, m.AlphaAt(9, 9).A)
	require.Equal(t, uint8(0xff), m.AlphaAt(5, 5).A)
	require.Equal(t, uint8(0xff), m.AlphaAt(5, 0).A)
	require.Equal(t, uint8(0xff), m.AlphaAt(0, 5).A)
}

func TestFaceCache(t *testing.T) {
	faces := NewFaceCache()
	require.Same(t, faces.Face(12), faces.Face(12))
	require.Equal(t, basicfont.Face7x13, faces.Face(0))
	require.NotEqual(t, faces.Face(12).Metrics(), faces.Face(24).Metrics())
}
