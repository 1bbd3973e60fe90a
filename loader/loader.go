// Package loader resolves the theme the current desktop is using.
//
// Sources are tried in order: a theme file path, the user theme
// directories, the bundled palette themes, the platform's named theme
// lookup, and finally the built-in default theme for the preferred shade.
// Not-found and permission errors fall through to the next source; any
// other failure is returned as a *LoadError.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/example/uitheme/assets"
	"github.com/example/uitheme/theme"
)

var (
	// ErrNotFound reports that a source has no theme to offer.
	ErrNotFound = errors.New("theme not found")
	// ErrUnsupported is returned by Watch where the platform cannot report
	// preference changes.
	ErrUnsupported = errors.New("not supported on this platform")
)

// LoadError is a failure that stopped theme resolution.
type LoadError struct {
	Op  string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load theme: %s: %v", e.Op, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Result is the outcome of LoadAsync.
type Result struct {
	Theme *theme.Theme
	Err   error
}

type platformBackend interface {
	// NamedTheme resolves name, or the desktop's configured theme when name
	// is empty. It returns ErrNotFound when there is nothing to resolve.
	NamedTheme(ctx context.Context, name string, shade theme.Shade) (*theme.Theme, error)
	// Shade reports the system light/dark preference. ok is false when the
	// system has none.
	Shade(ctx context.Context) (shade theme.Shade, ok bool, err error)
	Watch(ctx context.Context, fn func(theme.Shade)) error
}

var backend = newBackend()

// Loader resolves themes. The zero value is not usable; call New.
type Loader struct {
	log       zerolog.Logger
	themeDirs []string
	backend   platformBackend
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// WithThemeDirs replaces the directories searched for <name>.yaml.
func WithThemeDirs(dirs ...string) Option {
	return func(l *Loader) { l.themeDirs = append([]string(nil), dirs...) }
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		log:       zerolog.Nop(),
		themeDirs: DefaultThemeDirs(),
		backend:   backend,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefaultThemeDirs returns the user then system theme directories.
func DefaultThemeDirs() []string {
	var dirs []string
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "uitheme", "themes"))
	}
	return append(dirs, "/usr/share/uitheme/themes")
}

// Load resolves a theme. An empty name asks the desktop for its configured
// theme. shade is the caller's preference; a preference reported by the
// system overrides it for the default theme.
//
// Load blocks on file and IPC access and honours ctx cancellation between
// and during those steps.
func (l *Loader) Load(ctx context.Context, name string, shade theme.Shade) (*theme.Theme, error) {
	log := l.log.With().Str("name", name).Stringer("shade", shade).Logger()
	ctx = log.WithContext(ctx)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if name != "" {
		t, err := l.fromFile(name)
		if err == nil {
			log.Debug().Msg("loaded theme file")
			return t, nil
		}
		if !fallsThrough(err) {
			return nil, err
		}

		t, err = l.fromThemeDirs(name)
		if err == nil {
			log.Debug().Str("theme", t.Name()).Msg("loaded theme from theme directory")
			return t, nil
		}
		if !fallsThrough(err) {
			return nil, err
		}

		t, err = assets.Theme(name)
		if err == nil {
			log.Debug().Str("theme", t.Name()).Msg("loaded bundled theme")
			return t, nil
		}
		if !fallsThrough(err) {
			return nil, &LoadError{Op: "bundled " + name, Err: err}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := l.backend.NamedTheme(ctx, name, shade)
	switch {
	case err == nil:
		log.Debug().Str("theme", t.Name()).Msg("loaded platform theme")
		return t, nil
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case !fallsThrough(err):
		return nil, err
	}

	preferred, ok, err := l.backend.Shade(ctx)
	switch {
	case ctx.Err() != nil:
		return nil, ctx.Err()
	case err != nil:
		log.Debug().Err(err).Msg("shade preference unavailable")
	case ok:
		log.Debug().Stringer("preferred", preferred).Msg("using system shade preference")
		shade = preferred
	}

	return theme.DefaultTheme(shade), nil
}

// LoadAsync runs Load on a new goroutine. The channel delivers exactly one
// Result and is then closed.
func (l *Loader) LoadAsync(ctx context.Context, name string, shade theme.Shade) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		t, err := l.Load(ctx, name, shade)
		out <- Result{Theme: t, Err: err}
	}()
	return out
}

// LoadBlocking is Load without cancellation.
func (l *Loader) LoadBlocking(name string, shade theme.Shade) (*theme.Theme, error) {
	return l.Load(context.Background(), name, shade)
}

// Watch calls fn with the new shade each time the system preference
// changes, until ctx is done. It returns ErrUnsupported where the platform
// has no change notification.
func (l *Loader) Watch(ctx context.Context, fn func(theme.Shade)) error {
	return l.backend.Watch(l.log.WithContext(ctx), fn)
}

// Load resolves a theme with a Loader built from opts.
func Load(ctx context.Context, name string, shade theme.Shade, opts ...Option) (*theme.Theme, error) {
	return New(opts...).Load(ctx, name, shade)
}

// LoadAsync is the package level form of (*Loader).LoadAsync.
func LoadAsync(ctx context.Context, name string, shade theme.Shade, opts ...Option) <-chan Result {
	return New(opts...).LoadAsync(ctx, name, shade)
}

// LoadBlocking is the package level form of (*Loader).LoadBlocking.
func LoadBlocking(name string, shade theme.Shade, opts ...Option) (*theme.Theme, error) {
	return New(opts...).LoadBlocking(name, shade)
}

func fallsThrough(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission)
}

func looksLikePath(name string) bool {
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return true
	}
	switch filepath.Ext(name) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (l *Loader) fromFile(path string) (*theme.Theme, error) {
	if !looksLikePath(path) {
		return nil, ErrNotFound
	}
	return readThemeFile(path)
}

func (l *Loader) fromThemeDirs(name string) (*theme.Theme, error) {
	if looksLikePath(name) {
		return nil, ErrNotFound
	}
	for _, dir := range l.themeDirs {
		t, err := readThemeFile(filepath.Join(dir, name+".yaml"))
		if err == nil {
			return t, nil
		}
		if !fallsThrough(err) {
			return nil, err
		}
		l.log.Trace().Str("dir", dir).Err(err).Msg("theme directory skipped")
	}
	return nil, ErrNotFound
}

func readThemeFile(path string) (*theme.Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, wrapIOError("stat "+path, err)
	}
	if info.IsDir() {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapIOError("read "+path, err)
	}
	t, err := theme.Unmarshal(data)
	if err != nil {
		return nil, &LoadError{Op: "decode " + path, Err: err}
	}
	if t.Name() == "" {
		t.SetName(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	}
	return t, nil
}

// wrapIOError keeps fall-through errors recognisable and turns everything
// else into a *LoadError.
func wrapIOError(op string, err error) error {
	if fallsThrough(err) {
		return err
	}
	return &LoadError{Op: op, Err: err}
}
