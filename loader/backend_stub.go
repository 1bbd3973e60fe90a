//go:build !(linux || freebsd || openbsd || netbsd || dragonfly || windows || darwin)

package loader

import (
	"context"

	"github.com/example/uitheme/theme"
)

type unsupportedBackend struct{}

func newBackend() platformBackend {
	return unsupportedBackend{}
}

func (unsupportedBackend) NamedTheme(context.Context, string, theme.Shade) (*theme.Theme, error) {
	return nil, ErrNotFound
}

func (unsupportedBackend) Shade(context.Context) (theme.Shade, bool, error) {
	return theme.ShadeLight, false, nil
}

func (unsupportedBackend) Watch(context.Context, func(theme.Shade)) error {
	return ErrUnsupported
}
