// Package clipboard publishes themes and swatches to the desktop clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/example/uitheme/theme"
)

var (
	errNoDisplay   = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")
	errUnsupported = errors.New("clipboard is not supported on this platform")
	errNoText      = errors.New("clipboard does not contain text data")
)

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// WriteTheme publishes t as YAML text.
func WriteTheme(t *theme.Theme) error {
	data, err := theme.Marshal(t)
	if err != nil {
		return err
	}
	return writeText(data)
}

// ReadTheme decodes a YAML theme from the clipboard text.
func ReadTheme() (*theme.Theme, error) {
	data, err := readText()
	if err != nil {
		return nil, err
	}
	t, err := theme.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("clipboard theme: %w", err)
	}
	return t, nil
}

// WriteText publishes UTF-8 text.
func WriteText(text string) error {
	return writeText([]byte(text))
}

// WriteImage encodes img as PNG and publishes it.
func WriteImage(img image.Image) error {
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return writeImage(data)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// trimText drops the trailing NUL some owners append to STRING data.
func trimText(data []byte) []byte {
	if n := len(data); n > 0 && data[n-1] == 0 {
		return data[:n-1]
	}
	return data
}
