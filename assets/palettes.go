// Package assets bundles palette themes into the binary.
//
// A palette file names a theme, picks the shade it derives from and lists
// the palette colors that differ from that shade's built-in palette. The
// theme itself is built with the default policy.
package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/example/uitheme/theme"
)

//go:embed palettes/*.yaml
var embeddedPalettes embed.FS

// PaletteFile is one decoded palette file.
type PaletteFile struct {
	Name    string
	Shade   theme.Shade
	Palette theme.Palette
}

type paletteHeader struct {
	Name    string      `yaml:"name"`
	Shade   theme.Shade `yaml:"shade"`
	Palette yaml.Node   `yaml:"palette"`
}

// ParsePalette decodes a palette file. Colors it omits keep the built-in
// values for its shade.
func ParsePalette(data []byte) (PaletteFile, error) {
	var head paletteHeader
	if err := yaml.Unmarshal(data, &head); err != nil {
		return PaletteFile{}, err
	}
	if head.Name == "" {
		return PaletteFile{}, fmt.Errorf("palette has no name")
	}
	out := PaletteFile{Name: head.Name, Shade: head.Shade, Palette: theme.NewPalette(head.Shade)}
	if !head.Palette.IsZero() {
		if err := head.Palette.Decode(&out.Palette); err != nil {
			return PaletteFile{}, fmt.Errorf("palette %s: %w", head.Name, err)
		}
	}
	return out, nil
}

// Build creates the theme described by f.
func (f PaletteFile) Build() *theme.Theme {
	return theme.Builder{Palette: f.Palette, Policy: theme.DefaultPolicy()}.Build(f.Name)
}

var (
	loadOnce sync.Once
	loadErr  error
	palettes map[string]PaletteFile
)

func load() {
	entries, err := fs.ReadDir(embeddedPalettes, "palettes")
	if err != nil {
		loadErr = err
		return
	}
	palettes = make(map[string]PaletteFile, len(entries))
	for _, entry := range entries {
		data, err := embeddedPalettes.ReadFile(path.Join("palettes", entry.Name()))
		if err != nil {
			loadErr = err
			return
		}
		pf, err := ParsePalette(data)
		if err != nil {
			loadErr = fmt.Errorf("%s: %w", entry.Name(), err)
			return
		}
		palettes[strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))] = pf
	}
}

func key(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// Names lists the bundled palette keys.
func Names() []string {
	loadOnce.Do(load)
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Theme builds the bundled theme called name. Matching ignores case, and
// spaces match dashes, so "High Contrast" finds high-contrast. Unknown
// names report fs.ErrNotExist.
func Theme(name string) (*theme.Theme, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	pf, ok := palettes[key(name)]
	if !ok {
		return nil, fmt.Errorf("bundled theme %q: %w", name, fs.ErrNotExist)
	}
	return pf.Build(), nil
}
