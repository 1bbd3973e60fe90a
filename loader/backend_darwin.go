//go:build darwin

package loader

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/example/uitheme/theme"
)

var appleInterfaceStyle = readAppleInterfaceStyle

type darwinBackend struct{}

func newBackend() platformBackend {
	return darwinBackend{}
}

func (darwinBackend) NamedTheme(context.Context, string, theme.Shade) (*theme.Theme, error) {
	return nil, ErrNotFound
}

// Shade reads AppleInterfaceStyle, which is only set while dark mode is on.
func (darwinBackend) Shade(ctx context.Context) (theme.Shade, bool, error) {
	style, err := appleInterfaceStyle(ctx)
	if err != nil {
		return theme.ShadeLight, false, err
	}
	if strings.EqualFold(style, "dark") {
		return theme.ShadeDark, true, nil
	}
	return theme.ShadeLight, true, nil
}

func (darwinBackend) Watch(context.Context, func(theme.Shade)) error {
	return ErrUnsupported
}

func readAppleInterfaceStyle(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The key does not exist in light mode.
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
