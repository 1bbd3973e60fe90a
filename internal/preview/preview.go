// Package preview shows a theme swatch in a desktop window.
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/uitheme/internal/render"
	"github.com/example/uitheme/theme"
)

const statusHeight = 20

var (
	checkerLight = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
	checkerDark  = color.RGBA{0xbb, 0xbb, 0xbb, 0xff}
)

// ToggleFunc produces the theme to show after the user flips the shade.
type ToggleFunc func(shade theme.Shade) (*theme.Theme, error)

// Viewer holds the window configuration.
type Viewer struct {
	Theme   *theme.Theme
	Shade   theme.Shade
	Swatch  render.SwatchOptions
	MaxSize image.Point

	log      zerolog.Logger
	toggle   ToggleFunc
	updateCh chan themeEvent

	onClose   func()
	closeOnce sync.Once
}

// Option modifies a Viewer during creation.
type Option func(*Viewer)

// WithShade records the shade t was built for.
func WithShade(shade theme.Shade) Option { return func(v *Viewer) { v.Shade = shade } }

// WithSwatchOptions sets the swatch layout.
func WithSwatchOptions(opts render.SwatchOptions) Option {
	return func(v *Viewer) { v.Swatch = opts }
}

// WithToggle enables the shade toggle key.
func WithToggle(fn ToggleFunc) Option { return func(v *Viewer) { v.toggle = fn } }

func WithLogger(log zerolog.Logger) Option { return func(v *Viewer) { v.log = log } }

// WithOnClose registers fn to run once when the window goes away.
func WithOnClose(fn func()) Option { return func(v *Viewer) { v.onClose = fn } }

// New creates a Viewer showing t.
func New(t *theme.Theme, opts ...Option) *Viewer {
	v := &Viewer{
		Theme:    t,
		Swatch:   render.DefaultSwatchOptions(),
		MaxSize:  image.Pt(1280, 900),
		log:      zerolog.Nop(),
		updateCh: make(chan themeEvent, 1),
	}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Update replaces the displayed theme, built for shade. It never blocks;
// only the newest pending theme is kept.
func (v *Viewer) Update(t *theme.Theme, shade theme.Shade) {
	ev := themeEvent{theme: t, shade: shade}
	for {
		select {
		case v.updateCh <- ev:
			return
		default:
		}
		select {
		case <-v.updateCh:
		default:
		}
	}
}

func (v *Viewer) notifyClose() {
	v.closeOnce.Do(func() {
		if v.onClose != nil {
			v.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver.
func (v *Viewer) Run() { driver.Main(v.Main) }

// themeEvent carries a replacement theme into the event loop.
type themeEvent struct {
	theme *theme.Theme
	shade theme.Shade
}

func (v *Viewer) Main(s screen.Screen) {
	st := newViewState(v.Theme, v.Shade, v.Swatch)
	win := st.windowSize(v.MaxSize)
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: win.X, Height: win.Y, Title: "uitheme: " + v.Theme.Name()})
	if err != nil {
		v.log.Error().Err(err).Msg("new window")
		return
	}
	defer w.Release()
	defer v.notifyClose()

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case ev := <-v.updateCh:
				w.Send(ev)
			case <-done:
				return
			}
		}
	}()

	width, height := win.X, win.Y
	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			w.Send(paint.Event{})
		case paint.Event:
			v.paint(s, w, st, width, height)
		case themeEvent:
			st.setTheme(e.theme, e.shade)
			w.Send(paint.Event{})
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			switch st.action(e) {
			case actionQuit:
				return
			case actionToggle:
				if v.toggle == nil {
					st.message = "shade toggle unavailable"
					w.Send(paint.Event{})
					continue
				}
				next := flip(st.shade)
				t, err := v.toggle(next)
				if err != nil {
					v.log.Warn().Err(err).Stringer("shade", next).Msg("toggle shade")
					st.message = "toggle failed: " + err.Error()
				} else {
					st.setTheme(t, next)
					v.log.Debug().Str("theme", t.Name()).Stringer("shade", next).Msg("shade toggled")
				}
				w.Send(paint.Event{})
			}
		case error:
			v.log.Error().Err(e).Msg("window event")
		}
	}
}

func (v *Viewer) paint(s screen.Screen, w screen.Window, st *viewState, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Pt(width, height))
	if err != nil {
		v.log.Error().Err(err).Msg("new buffer")
		return
	}
	defer b.Release()
	st.compose(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

type action int

const (
	actionNone action = iota
	actionQuit
	actionToggle
)

// viewState is the window model, kept apart from shiny so it can be driven
// without a display.
type viewState struct {
	opts    render.SwatchOptions
	theme   *theme.Theme
	shade   theme.Shade
	swatch  *image.RGBA
	message string
}

func newViewState(t *theme.Theme, shade theme.Shade, opts render.SwatchOptions) *viewState {
	st := &viewState{opts: opts}
	st.setTheme(t, shade)
	return st
}

func (st *viewState) setTheme(t *theme.Theme, shade theme.Shade) {
	st.theme = t
	st.shade = shade
	st.swatch = render.Swatch(t, st.opts)
	st.message = ""
}

func (st *viewState) action(e key.Event) action {
	switch {
	case e.Code == key.CodeEscape, e.Rune == 'q', e.Rune == 'Q':
		return actionQuit
	case e.Rune == 'd', e.Rune == 'D':
		return actionToggle
	}
	return actionNone
}

// windowSize is the swatch plus status bar, clamped to limit.
func (st *viewState) windowSize(limit image.Point) image.Point {
	sz := st.swatch.Bounds().Size().Add(image.Pt(0, statusHeight))
	if limit.X > 0 && sz.X > limit.X {
		sz.X = limit.X
	}
	if limit.Y > 0 && sz.Y > limit.Y {
		sz.Y = limit.Y
	}
	return sz
}

func (st *viewState) status() string {
	s := st.theme.Name() + " (" + st.shade.String() + ")  d: toggle shade  q: quit"
	if st.message != "" {
		s = st.message
	}
	return s
}

// compose draws the whole frame into dst.
func (st *viewState) compose(dst *image.RGBA) {
	b := dst.Bounds()
	drawCheckerboard(dst, b, 8, checkerLight, checkerDark)

	area := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Max.Y-statusHeight)
	if r := fitRect(st.swatch.Bounds().Size(), area); !r.Empty() {
		xdraw.ApproxBiLinear.Scale(dst, r, st.swatch, st.swatch.Bounds(), draw.Over, nil)
	}

	bar := image.Rect(b.Min.X, b.Max.Y-statusHeight, b.Max.X, b.Max.Y)
	draw.Draw(dst, bar, image.Black, image.Point{}, draw.Src)
	d := &font.Drawer{Dst: dst, Src: image.White, Face: basicfont.Face7x13, Dot: fixed.P(bar.Min.X+6, bar.Max.Y-5)}
	d.DrawString(st.status())
}

// fitRect scales src down to fit area, keeping its aspect ratio and its
// top-left corner anchored. It never scales up.
func fitRect(src image.Point, area image.Rectangle) image.Rectangle {
	if src.X <= 0 || src.Y <= 0 || area.Empty() {
		return image.Rectangle{}
	}
	zoom := min(float64(area.Dx())/float64(src.X), float64(area.Dy())/float64(src.Y), 1)
	w := int(float64(src.X) * zoom)
	h := int(float64(src.Y) * zoom)
	return image.Rect(area.Min.X, area.Min.Y, area.Min.X+w, area.Min.Y+h)
}

func flip(s theme.Shade) theme.Shade {
	if s == theme.ShadeDark {
		return theme.ShadeLight
	}
	return theme.ShadeDark
}

func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}
