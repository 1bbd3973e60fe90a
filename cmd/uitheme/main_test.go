package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/uitheme/internal/preview"
	"github.com/example/uitheme/theme"
)

// isolate points every config and theme lookup at a fresh directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("UITHEME_THEME", "")
	t.Setenv("UITHEME_SHADE", "")
	return dir
}

func writeThemeFile(t *testing.T, dir string, th *theme.Theme) string {
	t.Helper()
	data, err := theme.Marshal(th)
	require.NoError(t, err)
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func testTheme() *theme.Theme {
	th := theme.DefaultTheme(theme.ShadeDark)
	th.SetName("Test")
	return th
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := newRoot(&stdout, &stderr).Run(context.Background(), args)
	return stdout.String(), stderr.String(), err
}

// setupRoot returns a configured root for driving commands directly.
func setupRoot(t *testing.T, themePath string) (*root, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	r := newRoot(&stdout, &bytes.Buffer{})
	r.themeName = themePath
	require.NoError(t, r.setup())
	return r, &stdout
}

func TestUsageErrors(t *testing.T) {
	isolate(t)
	for _, args := range [][]string{nil, {"frobnicate"}} {
		_, _, err := run(t, args...)
		var uerr *UsageError
		require.ErrorAs(t, err, &uerr)
		require.Contains(t, uerr.Error(), "Commands:")
		require.Contains(t, uerr.Error(), "-theme")
	}
}

func TestInvalidRootFlags(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "-shade", "purple", "widgets")
	require.ErrorContains(t, err, "-shade")

	_, _, err = run(t, "-log-level", "loud", "widgets")
	require.ErrorContains(t, err, "log level")
}

func TestWidgets(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "widgets")
	require.NoError(t, err)
	require.Contains(t, out, "  button\n")
	require.Contains(t, out, "  tooltip-balloon-stem\n")
	require.Contains(t, out, "* enabled\n")
	require.Contains(t, out, "  disabled\n")
}

func TestDumpFromFile(t *testing.T) {
	dir := isolate(t)
	path := writeThemeFile(t, dir, testTheme())

	out, _, err := run(t, "-theme", path, "dump")
	require.NoError(t, err)
	want, err := theme.Marshal(testTheme())
	require.NoError(t, err)
	require.Equal(t, string(want), out)

	target := filepath.Join(dir, "out.yaml")
	_, _, err = run(t, "-theme", path, "dump", "-o", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	require.Equal(t, want, data)
}

func TestDumpAppliesConfigOverrides(t *testing.T) {
	dir := isolate(t)
	path := writeThemeFile(t, dir, testTheme())
	cfgPath := filepath.Join(dir, "custom.rc")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[widget.button.hovered]\nbackground = #102030\n"), 0o644))

	out, _, err := run(t, "-config", cfgPath, "-theme", path, "dump")
	require.NoError(t, err)
	th, err := theme.Unmarshal([]byte(out))
	require.NoError(t, err)
	fill, ok := th.Get(theme.WidgetButton, theme.StateHovered).Background()
	require.True(t, ok)
	c, _ := fill.Solid()
	require.Equal(t, theme.RGBA(0x10, 0x20, 0x30, 0xff), c)
}

func TestGet(t *testing.T) {
	dir := isolate(t)
	path := writeThemeFile(t, dir, testTheme())

	out, _, err := run(t, "-theme", path, "get", "button", "hovered")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "# Test button.hovered\n"), out)
	require.Contains(t, out, "border:")

	_, _, err = run(t, "-theme", path, "get", "slider")
	var uerr *UsageError
	require.ErrorAs(t, err, &uerr)
	require.Contains(t, uerr.Error(), "slider")
}

func TestGetReportsFallback(t *testing.T) {
	dir := isolate(t)
	sparse := theme.Empty("Sparse")
	sparse.GetMut(theme.WidgetEditor, theme.StateEnabled).SetPadding(theme.UniformMargin(3))
	path := writeThemeFile(t, dir, sparse)

	out, _, err := run(t, "-theme", path, "get", "editor", "focused")
	require.NoError(t, err)
	require.Contains(t, out, "# Sparse editor.focused (from enabled)\n")
	require.Contains(t, out, "padding:")
}

func TestCheck(t *testing.T) {
	dir := isolate(t)
	path := writeThemeFile(t, dir, testTheme())

	out, _, err := run(t, "check", path)
	require.NoError(t, err)
	require.Contains(t, out, `ok, theme "Test"`)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: x\nentries:\n  - widget: slider\n    state: enabled\n"), 0o644))
	_, _, err = run(t, "check", bad)
	require.ErrorContains(t, err, bad)

	_, _, err = run(t, "check")
	var uerr *UsageError
	require.ErrorAs(t, err, &uerr)
}

func TestConfigPrint(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "custom.rc")
	require.NoError(t, os.WriteFile(cfgPath, []byte("theme = Adwaita\n[widget.button.hovered]\nmargin = 3\n"), 0o644))

	out, _, err := run(t, "-config", cfgPath, "config", "print")
	require.NoError(t, err)
	require.Contains(t, out, "theme = Adwaita\n")
	require.Contains(t, out, "[widget.button.hovered]\n")

	_, _, err = run(t, "-config", cfgPath, "config", "frob")
	require.ErrorContains(t, err, "unknown config command")
}

func TestConfigSave(t *testing.T) {
	dir := isolate(t)
	_, stderr, err := run(t, "-theme", "Saved", "config", "save")
	require.NoError(t, err)
	path := filepath.Join(dir, "config", "uitheme", "config.rc")
	require.Contains(t, stderr, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "theme = Saved\n")
}

func TestPreviewExport(t *testing.T) {
	dir := isolate(t)
	path := writeThemeFile(t, dir, testTheme())
	target := filepath.Join(dir, "swatch.png")

	_, _, err := run(t, "-theme", path, "preview", "-o", target, "-widgets", "button", "-states", "enabled, disabled")
	require.NoError(t, err)

	f, err := os.Open(target)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 176+96*2, img.Bounds().Dx())
	require.Equal(t, 22+44, img.Bounds().Dy())
}

func TestPreviewRejectsUnknownState(t *testing.T) {
	dir := isolate(t)
	path := writeThemeFile(t, dir, testTheme())
	_, _, err := run(t, "-theme", path, "preview", "-o", filepath.Join(dir, "x.png"), "-states", "sleepy")
	var uerr *UsageError
	require.ErrorAs(t, err, &uerr)
}

func TestPreviewOpensWindow(t *testing.T) {
	dir := isolate(t)
	r, _ := setupRoot(t, writeThemeFile(t, dir, testTheme()))

	c, err := parsePreviewCmd([]string{"-widgets", "editor"}, r)
	require.NoError(t, err)
	var shown *preview.Viewer
	c.runWindow = func(v *preview.Viewer) { shown = v }
	require.NoError(t, c.Run(context.Background()))
	require.NotNil(t, shown)
	require.Equal(t, "Test", shown.Theme.Name())
	require.Equal(t, []theme.Widget{theme.WidgetEditor}, shown.Swatch.Widgets)
}

func TestWatchPrintsChanges(t *testing.T) {
	dir := isolate(t)
	r, stdout := setupRoot(t, writeThemeFile(t, dir, testTheme()))

	c, err := parseWatchCmd(nil, r)
	require.NoError(t, err)
	c.watch = func(_ context.Context, fn func(theme.Shade)) error {
		fn(theme.ShadeDark)
		fn(theme.ShadeLight)
		return context.Canceled
	}
	require.NoError(t, c.Run(context.Background()))
	require.Equal(t, "dark\tTest\nlight\tTest\n", stdout.String())
}

func TestWatchReturnsBackendError(t *testing.T) {
	dir := isolate(t)
	r, _ := setupRoot(t, writeThemeFile(t, dir, testTheme()))

	c, err := parseWatchCmd(nil, r)
	require.NoError(t, err)
	sentinel := errors.New("no portal")
	c.watch = func(context.Context, func(theme.Shade)) error { return sentinel }
	require.ErrorIs(t, c.Run(context.Background()), sentinel)
}

func TestWatchWindowStopsWhenClosed(t *testing.T) {
	dir := isolate(t)
	r, _ := setupRoot(t, writeThemeFile(t, dir, testTheme()))

	c, err := parseWatchCmd([]string{"-window"}, r)
	require.NoError(t, err)
	c.watch = func(ctx context.Context, fn func(theme.Shade)) error {
		<-ctx.Done()
		return ctx.Err()
	}
	c.runWindow = func(v *preview.Viewer) { require.Equal(t, "Test", v.Theme.Name()) }
	require.NoError(t, c.Run(context.Background()))
}

func TestVersion(t *testing.T) {
	isolate(t)
	out, _, err := run(t, "version")
	require.NoError(t, err)
	require.Equal(t, "uitheme version dev\n", out)
}
