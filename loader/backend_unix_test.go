//go:build linux || freebsd || openbsd || netbsd || dragonfly

package loader

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/example/uitheme/theme"
)

func stubDesktopLookups(t *testing.T, dconf string, xsettings string) *[]string {
	t.Helper()
	var keys []string
	prevDconf, prevX := dconfRead, xsettingsThemeName
	dconfRead = func(_ context.Context, key string) (string, error) {
		keys = append(keys, key)
		if dconf == "" {
			return "", errors.New("dconf unavailable")
		}
		return dconf, nil
	}
	xsettingsThemeName = func() (string, error) {
		if xsettings == "" {
			return "", errNoXSettingsManager
		}
		return xsettings, nil
	}
	t.Cleanup(func() {
		dconfRead = prevDconf
		xsettingsThemeName = prevX
	})
	return &keys
}

// isolateGTKDirs points every GTK search location at a fresh directory and
// returns the one searched first.
func isolateGTKDirs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", filepath.Join(root, "home"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(root, "data"))
	t.Setenv("XDG_DATA_DIRS", filepath.Join(root, "system"))
	t.Setenv("GTK_DATA_PREFIX", "")
	t.Setenv("GTK_THEME", "")
	return filepath.Join(root, "data", "themes")
}

func installGTKTheme(t *testing.T, dir, name string, files ...string) {
	t.Helper()
	gtkDir := filepath.Join(dir, name, "gtk-3.0")
	require.NoError(t, os.MkdirAll(gtkDir, 0o755))
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(gtkDir, f), []byte("* {}\n"), 0o644))
	}
}

func TestDetectDesktop(t *testing.T) {
	tests := []struct {
		env  string
		want desktop
	}{
		{"GNOME", desktopGNOME},
		{"ubuntu:GNOME", desktopGNOME},
		{"Unity", desktopUnity},
		{"X-Cinnamon", desktopCinnamon},
		{"MATE", desktopMATE},
		{"KDE", desktopKDE},
		{"XFCE", desktopOther},
		{"", desktopOther},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("XDG_CURRENT_DESKTOP", tt.env)
			require.Equal(t, tt.want, detectDesktop())
		})
	}
}

func TestDconfKeys(t *testing.T) {
	require.Equal(t, "/org/gnome/desktop/interface/gtk-theme", desktopGNOME.dconfKey())
	require.Equal(t, "/org/gnome/desktop/interface/gtk-theme", desktopUnity.dconfKey())
	require.Equal(t, "/org/cinnamon/desktop/interface/gtk-theme", desktopCinnamon.dconfKey())
	require.Equal(t, "/org/mate/desktop/interface/gtk-theme", desktopMATE.dconfKey())
	require.Empty(t, desktopOther.dconfKey())
}

func TestCleanDconfString(t *testing.T) {
	require.Equal(t, "Adwaita", cleanDconfString("'Adwaita'\n"))
	require.Equal(t, "Yaru dark", cleanDconfString("  'Yaru dark'  \n"))
	require.Equal(t, "Arc", cleanDconfString("\"Arc\""))
	require.Equal(t, "", cleanDconfString("\n"))
}

func TestGTKThemeDirsOrder(t *testing.T) {
	t.Setenv("HOME", "/home/u")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_DATA_DIRS", "/a::/b")
	t.Setenv("GTK_DATA_PREFIX", "/gtk")
	require.Equal(t, []string{
		"/data/themes",
		"/home/u/.themes",
		"/a/themes",
		"/b/themes",
		"/gtk/share/themes",
	}, gtkThemeDirs())

	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_DATA_DIRS", "")
	t.Setenv("GTK_DATA_PREFIX", "")
	require.Equal(t, []string{
		"/home/u/.local/share/themes",
		"/home/u/.themes",
		"/usr/local/share/themes",
		"/usr/share/themes",
	}, gtkThemeDirs())
}

func TestFindGTKStylesheet(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	installGTKTheme(t, second, "Arc", "gtk.css", "gtk-dark.css")

	path, err := findGTKStylesheet([]string{first, second}, "Arc", false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(second, "Arc", "gtk-3.0", "gtk.css"), path)

	path, err = findGTKStylesheet([]string{first, second}, "Arc", true)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(second, "Arc", "gtk-3.0", "gtk-dark.css"), path)

	_, err = findGTKStylesheet([]string{first, second}, "Missing", false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindGTKStylesheetNeedsGTKSubdir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Plain", "metacity-1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Plain", "metacity-1", "gtk.css"), nil, 0o644))

	_, err := findGTKStylesheet([]string{dir}, "Plain", false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFindGTKStylesheetSkipsStrayFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Arc"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Arc", "gtk-2.0"), nil, 0o644))
	installGTKTheme(t, dir, "Arc", "gtk.css")

	path, err := findGTKStylesheet([]string{dir}, "Arc", false)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Arc", "gtk-3.0", "gtk.css"), path)
}

func TestFindGTKStylesheetReportsOtherErrors(t *testing.T) {
	dir := t.TempDir()
	installGTKTheme(t, dir, "Loop")
	css := filepath.Join(dir, "Loop", "gtk-3.0", "gtk.css")
	require.NoError(t, os.Symlink("gtk.css", css))

	_, err := findGTKStylesheet([]string{dir}, "Loop", false)
	require.Error(t, err)
	var lerr *LoadError
	require.ErrorAs(t, err, &lerr)
	require.ErrorIs(t, err, syscall.ELOOP)
}

func TestConfiguredThemeNameEmptyDconfIsNotAFailure(t *testing.T) {
	t.Setenv("GTK_THEME", "")
	prevDconf, prevX := dconfRead, xsettingsThemeName
	dconfRead = func(context.Context, string) (string, error) { return "", nil }
	xsettingsThemeName = func() (string, error) { return "Greybird", nil }
	t.Cleanup(func() {
		dconfRead = prevDconf
		xsettingsThemeName = prevX
	})

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).Level(zerolog.DebugLevel).WithContext(context.Background())
	require.Equal(t, "Greybird", configuredThemeName(ctx, desktopGNOME))
	require.NotContains(t, buf.String(), "dconf lookup failed")

	dconfRead = func(context.Context, string) (string, error) { return "", errors.New("no dconf") }
	require.Equal(t, "Greybird", configuredThemeName(ctx, desktopGNOME))
	require.Contains(t, buf.String(), "dconf lookup failed")
}

func TestNamedThemeFromDconf(t *testing.T) {
	dir := isolateGTKDirs(t)
	t.Setenv("XDG_CURRENT_DESKTOP", "GNOME")
	installGTKTheme(t, dir, "Yaru", "gtk.css")
	keys := stubDesktopLookups(t, "Yaru", "")

	th, err := unixBackend{}.NamedTheme(context.Background(), "", theme.ShadeLight)
	require.NoError(t, err)
	require.Equal(t, "Yaru", th.Name())
	require.Equal(t, []string{"/org/gnome/desktop/interface/gtk-theme"}, *keys)
}

func TestNamedThemeFromGTKThemeVariable(t *testing.T) {
	dir := isolateGTKDirs(t)
	t.Setenv("XDG_CURRENT_DESKTOP", "GNOME")
	t.Setenv("GTK_THEME", "Adwaita:dark")
	installGTKTheme(t, dir, "Adwaita", "gtk.css", "gtk-dark.css")
	keys := stubDesktopLookups(t, "Yaru", "")

	th, err := unixBackend{}.NamedTheme(context.Background(), "", theme.ShadeLight)
	require.NoError(t, err)
	require.Equal(t, "Adwaita", th.Name())
	require.Empty(t, *keys)

	fill, _ := th.Get(theme.WidgetButton, theme.StateEnabled).Background()
	c, _ := fill.Solid()
	require.Equal(t, theme.NewPalette(theme.ShadeDark).Background, c)
}

func TestNamedThemeFromXSettings(t *testing.T) {
	dir := isolateGTKDirs(t)
	t.Setenv("XDG_CURRENT_DESKTOP", "XFCE")
	installGTKTheme(t, dir, "Greybird-dark", "gtk.css")
	keys := stubDesktopLookups(t, "", "Greybird-dark")

	th, err := unixBackend{}.NamedTheme(context.Background(), "", theme.ShadeLight)
	require.NoError(t, err)
	require.Equal(t, "Greybird-dark", th.Name())
	require.Empty(t, *keys)

	fill, _ := th.Get(theme.WidgetButton, theme.StateEnabled).Background()
	c, _ := fill.Solid()
	require.Equal(t, theme.NewPalette(theme.ShadeDark).Background, c)
}

func TestNamedThemeNotInstalled(t *testing.T) {
	isolateGTKDirs(t)
	t.Setenv("XDG_CURRENT_DESKTOP", "GNOME")
	stubDesktopLookups(t, "Yaru", "")

	_, err := unixBackend{}.NamedTheme(context.Background(), "", theme.ShadeLight)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = unixBackend{}.NamedTheme(context.Background(), "Missing", theme.ShadeLight)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestNamedThemeSkipsKDE(t *testing.T) {
	dir := isolateGTKDirs(t)
	t.Setenv("XDG_CURRENT_DESKTOP", "KDE")
	installGTKTheme(t, dir, "Breeze", "gtk.css")

	_, err := unixBackend{}.NamedTheme(context.Background(), "Breeze", theme.ShadeLight)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestColorSchemeShade(t *testing.T) {
	shade, ok := colorSchemeShade(1)
	require.True(t, ok)
	require.Equal(t, theme.ShadeDark, shade)

	shade, ok = colorSchemeShade(2)
	require.True(t, ok)
	require.Equal(t, theme.ShadeLight, shade)

	_, ok = colorSchemeShade(0)
	require.False(t, ok)
	_, ok = colorSchemeShade(9)
	require.False(t, ok)
}

func TestUnixShadeUsesPortal(t *testing.T) {
	prev := portalColorScheme
	t.Cleanup(func() { portalColorScheme = prev })

	portalColorScheme = func(context.Context) (uint32, error) { return 1, nil }
	shade, ok, err := unixBackend{}.Shade(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, theme.ShadeDark, shade)

	portalColorScheme = func(context.Context) (uint32, error) {
		return 0, &dbus.Error{Name: "org.freedesktop.DBus.Error.ServiceUnknown"}
	}
	_, ok, err = unixBackend{}.Shade(context.Background())
	require.Error(t, err)
	require.False(t, ok)
}

func TestVariantUint32(t *testing.T) {
	v, err := variantUint32(dbus.MakeVariant(uint32(2)))
	require.NoError(t, err)
	require.Equal(t, uint32(2), v)

	v, err = variantUint32(dbus.MakeVariant(dbus.MakeVariant(uint32(1))))
	require.NoError(t, err)
	require.Equal(t, uint32(1), v)

	_, err = variantUint32(dbus.MakeVariant("dark"))
	require.Error(t, err)
}

func TestSettingChangedShade(t *testing.T) {
	sig := &dbus.Signal{
		Name: portalSettings + ".SettingChanged",
		Body: []interface{}{appearanceGroup, colorSchemeKey, dbus.MakeVariant(uint32(1))},
	}
	shade, ok := settingChangedShade(sig)
	require.True(t, ok)
	require.Equal(t, theme.ShadeDark, shade)

	sig.Body[2] = dbus.MakeVariant(uint32(0))
	shade, ok = settingChangedShade(sig)
	require.True(t, ok)
	require.Equal(t, theme.ShadeLight, shade)

	other := &dbus.Signal{
		Name: portalSettings + ".SettingChanged",
		Body: []interface{}{"org.gnome.desktop.interface", "gtk-theme", dbus.MakeVariant("Yaru")},
	}
	_, ok = settingChangedShade(other)
	require.False(t, ok)

	_, ok = settingChangedShade(&dbus.Signal{Name: "org.freedesktop.DBus.NameAcquired"})
	require.False(t, ok)
}
