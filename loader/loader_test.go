package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/example/uitheme/theme"
)

type fakeBackend struct {
	named      *theme.Theme
	namedErr   error
	shade      theme.Shade
	shadeOK    bool
	shadeErr   error
	namedCalls *[]string
}

func (f fakeBackend) NamedTheme(_ context.Context, name string, _ theme.Shade) (*theme.Theme, error) {
	if f.namedCalls != nil {
		*f.namedCalls = append(*f.namedCalls, name)
	}
	if f.namedErr != nil {
		return nil, f.namedErr
	}
	if f.named == nil {
		return nil, ErrNotFound
	}
	return f.named, nil
}

func (f fakeBackend) Shade(context.Context) (theme.Shade, bool, error) {
	return f.shade, f.shadeOK, f.shadeErr
}

func (f fakeBackend) Watch(context.Context, func(theme.Shade)) error {
	return ErrUnsupported
}

func useBackend(t *testing.T, b platformBackend) {
	t.Helper()
	prev := backend
	backend = b
	t.Cleanup(func() { backend = prev })
}

func writeTheme(t *testing.T, path string, th *theme.Theme) {
	t.Helper()
	data, err := theme.Marshal(th)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestLoadFallsBackToDefaultTheme(t *testing.T) {
	useBackend(t, fakeBackend{})

	th, err := LoadBlocking("", theme.ShadeDark, WithThemeDirs())
	require.NoError(t, err)
	require.Equal(t, "Default_Dark", th.Name())
}

func TestLoadUsesSystemShade(t *testing.T) {
	useBackend(t, fakeBackend{shade: theme.ShadeDark, shadeOK: true})

	th, err := Load(context.Background(), "", theme.ShadeLight, WithThemeDirs())
	require.NoError(t, err)
	require.Equal(t, "Default_Dark", th.Name())
}

func TestLoadIgnoresShadeQueryFailure(t *testing.T) {
	useBackend(t, fakeBackend{shadeErr: errors.New("no session bus")})

	th, err := Load(context.Background(), "", theme.ShadeLight, WithThemeDirs(), WithLogger(zerolog.Nop()))
	require.NoError(t, err)
	require.Equal(t, "Default_Light", th.Name())
}

func TestLoadPlatformNamedTheme(t *testing.T) {
	named := theme.DefaultTheme(theme.ShadeLight)
	named.SetName("Adwaita")
	var calls []string
	useBackend(t, fakeBackend{named: named, namedCalls: &calls})

	th, err := LoadBlocking("Adwaita", theme.ShadeLight, WithThemeDirs(t.TempDir()))
	require.NoError(t, err)
	require.Equal(t, "Adwaita", th.Name())
	require.Equal(t, []string{"Adwaita"}, calls)
}

func TestLoadPlatformErrorIsReturned(t *testing.T) {
	cause := &LoadError{Op: "search /usr/share/themes", Err: errors.New("i/o error")}
	useBackend(t, fakeBackend{namedErr: cause})

	_, err := LoadBlocking("Adwaita", theme.ShadeLight, WithThemeDirs())
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, "search /usr/share/themes", loadErr.Op)
}

func TestLoadFromFile(t *testing.T) {
	useBackend(t, fakeBackend{})
	path := filepath.Join(t.TempDir(), "mine.yaml")
	custom := theme.Empty("Mine")
	custom.GetMut(theme.WidgetButton, theme.StateEnabled).SetBackgroundColor(theme.RGBA(1, 2, 3, 255))
	writeTheme(t, path, custom)

	th, err := LoadBlocking(path, theme.ShadeLight)
	require.NoError(t, err)
	require.Equal(t, "Mine", th.Name())
	fill, ok := th.Get(theme.WidgetButton, theme.StateHovered).Background()
	require.True(t, ok)
	c, _ := fill.Solid()
	require.Equal(t, theme.RGBA(1, 2, 3, 255), c)
}

func TestLoadFromFileNamesUnnamedTheme(t *testing.T) {
	useBackend(t, fakeBackend{})
	path := filepath.Join(t.TempDir(), "plain.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: []\n"), 0o644))

	th, err := LoadBlocking(path, theme.ShadeLight)
	require.NoError(t, err)
	require.Equal(t, "plain", th.Name())
}

func TestLoadMissingFileFallsThrough(t *testing.T) {
	useBackend(t, fakeBackend{})

	th, err := LoadBlocking(filepath.Join(t.TempDir(), "absent.yaml"), theme.ShadeDark)
	require.NoError(t, err)
	require.Equal(t, "Default_Dark", th.Name())
}

func TestLoadMalformedFile(t *testing.T) {
	useBackend(t, fakeBackend{})
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: [{widget: slider}]\n"), 0o644))

	_, err := LoadBlocking(path, theme.ShadeLight)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Contains(t, loadErr.Op, "decode")
	require.NotNil(t, errors.Unwrap(err))
}

func TestLoadFromThemeDirs(t *testing.T) {
	useBackend(t, fakeBackend{})
	first, second := t.TempDir(), t.TempDir()
	writeTheme(t, filepath.Join(second, "Ocean.yaml"), theme.Empty("Ocean"))

	th, err := LoadBlocking("Ocean", theme.ShadeLight, WithThemeDirs(first, second))
	require.NoError(t, err)
	require.Equal(t, "Ocean", th.Name())
}

func TestLoadThemeDirsPreferEarlierDirectory(t *testing.T) {
	useBackend(t, fakeBackend{})
	first, second := t.TempDir(), t.TempDir()
	writeTheme(t, filepath.Join(first, "Ocean.yaml"), theme.Empty("Ocean user"))
	writeTheme(t, filepath.Join(second, "Ocean.yaml"), theme.Empty("Ocean system"))

	th, err := LoadBlocking("Ocean", theme.ShadeLight, WithThemeDirs(first, second))
	require.NoError(t, err)
	require.Equal(t, "Ocean user", th.Name())
}

func TestLoadBundledTheme(t *testing.T) {
	var calls []string
	useBackend(t, fakeBackend{namedCalls: &calls})

	th, err := LoadBlocking("nord", theme.ShadeLight, WithThemeDirs(t.TempDir()))
	require.NoError(t, err)
	require.Equal(t, "Nord", th.Name())
	require.Empty(t, calls, "platform lookup is not consulted")
}

func TestLoadThemeDirShadowsBundledTheme(t *testing.T) {
	useBackend(t, fakeBackend{})
	dir := t.TempDir()
	writeTheme(t, filepath.Join(dir, "nord.yaml"), theme.Empty("My Nord"))

	th, err := LoadBlocking("nord", theme.ShadeLight, WithThemeDirs(dir))
	require.NoError(t, err)
	require.Equal(t, "My Nord", th.Name())
}

func TestLoadUnreadableThemeDirFallsThrough(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	useBackend(t, fakeBackend{})
	locked := t.TempDir()
	writeTheme(t, filepath.Join(locked, "Ocean.yaml"), theme.Empty("Ocean"))
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	th, err := LoadBlocking("Ocean", theme.ShadeLight, WithThemeDirs(locked))
	require.NoError(t, err)
	require.Equal(t, "Default_Light", th.Name())
}

func TestLoadCancelled(t *testing.T) {
	useBackend(t, fakeBackend{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, "", theme.ShadeLight)
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoadAsync(t *testing.T) {
	useBackend(t, fakeBackend{shade: theme.ShadeDark, shadeOK: true})

	results := LoadAsync(context.Background(), "", theme.ShadeLight, WithThemeDirs())
	res, ok := <-results
	require.True(t, ok)
	require.NoError(t, res.Err)
	require.Equal(t, "Default_Dark", res.Theme.Name())

	_, ok = <-results
	require.False(t, ok)
}

func TestLoadErrorMessage(t *testing.T) {
	cause := errors.New("boom")
	err := &LoadError{Op: "read x", Err: cause}
	require.Equal(t, "load theme: read x: boom", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestLooksLikePath(t *testing.T) {
	require.True(t, looksLikePath("./theme"))
	require.True(t, looksLikePath("dark.yaml"))
	require.True(t, looksLikePath("dark.yml"))
	require.False(t, looksLikePath("Adwaita"))
	require.False(t, looksLikePath("Adwaita:dark"))
}
