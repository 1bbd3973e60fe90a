//go:build windows

package loader

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"

	"github.com/example/uitheme/theme"
)

const personalizeKey = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`

var appsUseLightTheme = readAppsUseLightTheme

type windowsBackend struct{}

func newBackend() platformBackend {
	return windowsBackend{}
}

func (windowsBackend) NamedTheme(context.Context, string, theme.Shade) (*theme.Theme, error) {
	return nil, ErrNotFound
}

func (windowsBackend) Shade(context.Context) (theme.Shade, bool, error) {
	light, ok, err := appsUseLightTheme()
	if err != nil || !ok {
		return theme.ShadeLight, false, err
	}
	if light {
		return theme.ShadeLight, true, nil
	}
	return theme.ShadeDark, true, nil
}

func (windowsBackend) Watch(context.Context, func(theme.Shade)) error {
	return ErrUnsupported
}

func readAppsUseLightTheme() (light, ok bool, err error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("open %s: %w", personalizeKey, err)
	}
	defer key.Close()

	value, _, err := key.GetIntegerValue("AppsUseLightTheme")
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, false, nil
		}
		return false, false, fmt.Errorf("read AppsUseLightTheme: %w", err)
	}
	return value != 0, true, nil
}
