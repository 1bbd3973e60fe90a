package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/example/uitheme/internal/config"
	"github.com/example/uitheme/internal/notify"
	"github.com/example/uitheme/loader"
	"github.com/example/uitheme/theme"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type runnable interface {
	Run(ctx context.Context) error
}

type root struct {
	fs      *flag.FlagSet
	program string
	stdout  io.Writer
	stderr  io.Writer

	themeName  string
	shadeName  string
	configPath string
	logLevel   string

	log      zerolog.Logger
	config   *config.Config
	loader   *loader.Loader
	notifier *notify.Notifier
}

func (r *root) Program() string { return r.program }

func (r *root) FlagSet() *flag.FlagSet { return r.fs }

func newRoot(stdout, stderr io.Writer) *root {
	r := &root{
		fs:      flag.NewFlagSet("uitheme", flag.ContinueOnError),
		program: "uitheme",
		stdout:  stdout,
		stderr:  stderr,
		log:     zerolog.Nop(),
	}
	r.fs.SetOutput(stderr)
	r.fs.StringVar(&r.themeName, "theme", "", "theme name or YAML file (default: the desktop theme)")
	r.fs.StringVar(&r.shadeName, "shade", "", "light, dark or system")
	r.fs.StringVar(&r.configPath, "config", "", "configuration file")
	r.fs.StringVar(&r.logLevel, "log-level", "", "trace, debug, info, warn or error")
	r.fs.Usage = usageFunc(r)
	return r
}

// setup loads configuration and builds the shared services. Precedence is
// flags, then environment, then the config file.
func (r *root) setup() error {
	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if r.themeName != "" {
		cfg.Theme = r.themeName
	}
	switch name := strings.ToLower(r.shadeName); name {
	case "":
	case "system":
		cfg.Shade = ""
	default:
		if _, err := theme.ParseShade(name); err != nil {
			return fmt.Errorf("-shade: %w", err)
		}
		cfg.Shade = name
	}
	if r.logLevel != "" {
		cfg.LogLevel = r.logLevel
	}
	r.config = cfg

	level := zerolog.WarnLevel
	if cfg.LogLevel != "" {
		if level, err = zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
	}
	r.log = zerolog.New(zerolog.ConsoleWriter{Out: r.stderr, TimeFormat: "15:04:05"}).
		Level(level).With().Timestamp().Logger()

	opts := []loader.Option{loader.WithLogger(r.log)}
	if cfg.ThemeDir != "" {
		opts = append(opts, loader.WithThemeDirs(append([]string{cfg.ThemeDir}, loader.DefaultThemeDirs()...)...))
	}
	r.loader = loader.New(opts...)

	r.notifier = notify.New(notify.LoadPreferences(), r.log)
	r.notifier.Enable(notify.EventShadeChange, cfg.Notify.ShadeChange)
	r.notifier.Enable(notify.EventCopy, cfg.Notify.Copy)
	r.notifier.Enable(notify.EventExport, cfg.Notify.Export)
	return nil
}

// shade is the configured shade, light when nothing was asked for.
func (r *root) shade() theme.Shade {
	if s, ok := r.config.PreferredShade(); ok {
		return s
	}
	return theme.ShadeLight
}

// resolve loads the configured theme and applies the config overrides.
func (r *root) resolve(ctx context.Context, shade theme.Shade) (*theme.Theme, error) {
	t, err := r.loader.Load(ctx, r.config.Theme, shade)
	if err != nil {
		return nil, err
	}
	r.config.Apply(t)
	return t, nil
}

func (r *root) Run(ctx context.Context, args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	if err := r.setup(); err != nil {
		return err
	}

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "dump":
		cmd, err = parseDumpCmd(subArgs, r)
	case "get":
		cmd, err = parseGetCmd(subArgs, r)
	case "widgets":
		cmd, err = parseWidgetsCmd(subArgs, r)
	case "preview":
		cmd, err = parsePreviewCmd(subArgs, r)
	case "watch":
		cmd, err = parseWatchCmd(subArgs, r)
	case "check":
		cmd, err = parseCheckCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run(ctx)
}

func main() {
	ctx, stop := signalContext()
	defer stop()

	r := newRoot(os.Stdout, os.Stderr)
	if err := r.Run(ctx, os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		case errors.Is(err, flag.ErrHelp):
			return
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
