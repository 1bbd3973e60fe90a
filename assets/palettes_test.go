package assets

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/uitheme/theme"
)

func TestBundledNames(t *testing.T) {
	require.Equal(t, []string{"high-contrast", "high-contrast-inverse", "nord", "solarized-light"}, Names())
}

func TestThemeLookupIgnoresCaseAndSpaces(t *testing.T) {
	th, err := Theme("High Contrast")
	require.NoError(t, err)
	require.Equal(t, "High Contrast", th.Name())

	fill, ok := th.Get(theme.WidgetButton, theme.StateEnabled).Background()
	require.True(t, ok)
	c, _ := fill.Solid()
	require.Equal(t, theme.White, c)
	border, ok := th.Get(theme.WidgetButton, theme.StateEnabled).Border()
	require.True(t, ok)
	require.Equal(t, theme.Black, border.Color())
}

func TestThemeUnknown(t *testing.T) {
	_, err := Theme("missing")
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestEveryBundledThemeIsComplete(t *testing.T) {
	for _, name := range Names() {
		th, err := Theme(name)
		require.NoError(t, err, name)
		for _, w := range theme.Widgets() {
			for _, s := range theme.States() {
				require.True(t, th.Has(w, s), "%s %s.%s", name, w, s)
			}
		}
	}
}

func TestParsePaletteKeepsShadeDefaults(t *testing.T) {
	pf, err := ParsePalette([]byte("name: Partial\nshade: dark\npalette:\n  link: [1, 2, 3, 255]\n"))
	require.NoError(t, err)
	want := theme.NewPalette(theme.ShadeDark)
	require.Equal(t, theme.ShadeDark, pf.Shade)
	require.Equal(t, theme.RGBA(1, 2, 3, 255), pf.Palette.Link)
	require.Equal(t, want.Background, pf.Palette.Background)
}

func TestParsePaletteErrors(t *testing.T) {
	tests := map[string]string{
		"no name":   "shade: light\n",
		"bad shade": "name: x\nshade: dim\n",
		"bad color": "name: x\npalette:\n  text: [1, 2]\n",
		"not yaml":  "name: [\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePalette([]byte(input))
			require.Error(t, err)
		})
	}
}
