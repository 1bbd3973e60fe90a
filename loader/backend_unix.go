//go:build linux || freebsd || openbsd || netbsd || dragonfly

package loader

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/example/uitheme/theme"
)

type desktop int

const (
	desktopOther desktop = iota
	desktopGNOME
	desktopUnity
	desktopCinnamon
	desktopMATE
	desktopKDE
)

// detectDesktop reads the first recognised entry of XDG_CURRENT_DESKTOP.
func detectDesktop() desktop {
	for _, part := range strings.Split(os.Getenv("XDG_CURRENT_DESKTOP"), ":") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "gnome", "gnome-classic", "gnome-flashback":
			return desktopGNOME
		case "unity":
			return desktopUnity
		case "x-cinnamon", "cinnamon":
			return desktopCinnamon
		case "mate":
			return desktopMATE
		case "kde":
			return desktopKDE
		}
	}
	return desktopOther
}

// dconfKey is the gsettings path holding the GTK theme name, empty when the
// desktop does not keep one in dconf.
func (d desktop) dconfKey() string {
	switch d {
	case desktopGNOME, desktopUnity:
		return "/org/gnome/desktop/interface/gtk-theme"
	case desktopCinnamon:
		return "/org/cinnamon/desktop/interface/gtk-theme"
	case desktopMATE:
		return "/org/mate/desktop/interface/gtk-theme"
	}
	return ""
}

var (
	dconfRead          = runDconfRead
	xsettingsThemeName = readXSettingsThemeName
	portalColorScheme  = readPortalColorScheme
)

type unixBackend struct{}

func newBackend() platformBackend {
	return unixBackend{}
}

func (unixBackend) NamedTheme(ctx context.Context, name string, shade theme.Shade) (*theme.Theme, error) {
	log := zerolog.Ctx(ctx)
	desk := detectDesktop()
	if desk == desktopKDE {
		// KDE color schemes are not read; use the default theme.
		log.Debug().Msg("kde session, skipping gtk theme lookup")
		return nil, ErrNotFound
	}
	if name == "" {
		name = configuredThemeName(ctx, desk)
		if name == "" {
			return nil, ErrNotFound
		}
	}

	name, variant := splitThemeVariant(name)
	dark := shade == theme.ShadeDark || variant == "dark"
	path, err := findGTKStylesheet(gtkThemeDirs(), name, dark)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("stylesheet", path).Msg("found gtk theme")

	if filepath.Base(path) == "gtk-dark.css" || variant == "dark" || hasDarkSuffix(name) {
		shade = theme.ShadeDark
	}
	t := theme.DefaultTheme(shade)
	t.SetName(name)
	return t, nil
}

func (unixBackend) Shade(ctx context.Context) (theme.Shade, bool, error) {
	scheme, err := portalColorScheme(ctx)
	if err != nil {
		return theme.ShadeLight, false, err
	}
	shade, ok := colorSchemeShade(scheme)
	return shade, ok, nil
}

// configuredThemeName asks, in order, GTK_THEME, dconf and XSETTINGS.
func configuredThemeName(ctx context.Context, desk desktop) string {
	log := zerolog.Ctx(ctx)
	if name := strings.TrimSpace(os.Getenv("GTK_THEME")); name != "" {
		return name
	}
	if key := desk.dconfKey(); key != "" {
		name, err := dconfRead(ctx, key)
		switch {
		case err != nil:
			log.Debug().Err(err).Str("key", key).Msg("dconf lookup failed")
		case name != "":
			return name
		}
	}
	name, err := xsettingsThemeName()
	if err != nil {
		log.Debug().Err(err).Msg("xsettings lookup failed")
		return ""
	}
	return name
}

func runDconfRead(ctx context.Context, key string) (string, error) {
	out, err := exec.CommandContext(ctx, "dconf", "read", key).Output()
	if err != nil {
		return "", err
	}
	return cleanDconfString(string(out)), nil
}

// cleanDconfString strips the GVariant quoting dconf prints around strings.
func cleanDconfString(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return strings.TrimSpace(s)
}

// splitThemeVariant splits the GTK_THEME "name:variant" form.
func splitThemeVariant(name string) (string, string) {
	base, variant, _ := strings.Cut(name, ":")
	return base, strings.ToLower(variant)
}

func hasDarkSuffix(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, "-dark") || strings.HasSuffix(lower, "_dark")
}

// gtkThemeDirs lists the directories GTK searches for themes, in priority
// order.
func gtkThemeDirs() []string {
	var dirs []string
	home, _ := os.UserHomeDir()
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "themes"))
	} else if home != "" {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "themes"))
	}
	if home != "" {
		dirs = append(dirs, filepath.Join(home, ".themes"))
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir != "" {
			dirs = append(dirs, filepath.Join(dir, "themes"))
		}
	}
	if prefix := os.Getenv("GTK_DATA_PREFIX"); prefix != "" {
		dirs = append(dirs, filepath.Join(prefix, "share", "themes"))
	}
	return dirs
}

// findGTKStylesheet returns the first readable stylesheet of the named
// theme. With dark set, gtk-dark.css is preferred over gtk.css.
func findGTKStylesheet(dirs []string, name string, dark bool) (string, error) {
	variants := []string{"gtk.css"}
	if dark {
		variants = []string{"gtk-dark.css", "gtk.css"}
	}
	for _, dir := range dirs {
		path, err := stylesheetIn(filepath.Join(dir, name), variants)
		if err == nil {
			return path, nil
		}
		if !fallsThrough(err) {
			return "", &LoadError{Op: "search " + dir, Err: err}
		}
	}
	return "", ErrNotFound
}

func stylesheetIn(themeDir string, variants []string) (string, error) {
	entries, err := os.ReadDir(themeDir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "gtk-") {
			continue
		}
		for _, variant := range variants {
			path := filepath.Join(themeDir, entry.Name(), variant)
			f, err := os.Open(path)
			switch {
			case err == nil:
			case fallsThrough(err), errors.Is(err, syscall.ENOTDIR):
				continue
			default:
				return "", err
			}
			_ = f.Close()
			return path, nil
		}
	}
	return "", ErrNotFound
}

var errNoXSettingsManager = errors.New("no xsettings manager")
