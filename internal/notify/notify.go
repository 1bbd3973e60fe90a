// Package notify raises desktop notifications for theme events.
package notify

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/uitheme/internal/platform"
	"github.com/example/uitheme/theme"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventShadeChange fires when the system shade preference flips.
	EventShadeChange Event = "shade-change"
	// EventExport fires when a theme or swatch is written to disk.
	EventExport Event = "export"
	// EventCopy fires when a theme or swatch is copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences describes notification text.
type Preferences struct {
	Title     string
	Templates map[Event]string
	Timeout   time.Duration
}

func DefaultPreferences() Preferences {
	return Preferences{
		Title: "UI Theme",
		Templates: map[Event]string{
			EventShadeChange: "Switched to %s",
			EventExport:      "Saved %s",
			EventCopy:        "Copied %s to clipboard",
		},
		Timeout: 5 * time.Second,
	}
}

// LoadPreferences applies UITHEME_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("UITHEME_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for key, event := range map[string]Event{
		"UITHEME_NOTIFY_SHADE_TEXT":  EventShadeChange,
		"UITHEME_NOTIFY_EXPORT_TEXT": EventExport,
		"UITHEME_NOTIFY_COPY_TEXT":   EventCopy,
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

// Notifier sends desktop notifications for enabled events. A nil Notifier
// is valid and sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	log     zerolog.Logger
	send    func(context.Context, platform.Notification) error
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences, log zerolog.Logger) *Notifier {
	templates := make(map[Event]string, len(prefs.Templates))
	for k, v := range prefs.Templates {
		templates[k] = v
	}
	prefs.Templates = templates
	return &Notifier{
		prefs:   prefs,
		enabled: make(map[Event]bool),
		log:     log,
		send:    platform.Notify,
	}
}

// Enable toggles the notifier for event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// ShadeChanged reports that the system moved to shade and t is now in use.
// A non-nil preview is attached as the notification icon.
func (n *Notifier) ShadeChanged(ctx context.Context, shade theme.Shade, t *theme.Theme, preview image.Image) {
	if !n.enabledFor(EventShadeChange) {
		return
	}
	var icon string
	if preview != nil {
		path, cleanup, err := writePreview(preview)
		if err != nil {
			n.log.Warn().Err(err).Msg("notification preview")
		} else {
			defer cleanup()
			icon = path
		}
	}
	detail := shade.String()
	if t != nil {
		detail = fmt.Sprintf("%s (%s)", shade, t.Name())
	}
	n.dispatch(ctx, EventShadeChange, detail, icon)
}

// Exported reports a file written to path.
func (n *Notifier) Exported(ctx context.Context, path string) {
	if !n.enabledFor(EventExport) {
		return
	}
	detail := strings.TrimSpace(path)
	var icon string
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if strings.EqualFold(filepath.Ext(abs), ".png") {
			icon = abs
		}
	}
	n.dispatch(ctx, EventExport, detail, icon)
}

// Copied reports what was put on the clipboard.
func (n *Notifier) Copied(ctx context.Context, what string) {
	if strings.TrimSpace(what) == "" {
		what = "theme"
	}
	n.dispatch(ctx, EventCopy, what, "")
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(ctx context.Context, event Event, detail, icon string) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	err := n.send(ctx, platform.Notification{
		Title:    n.prefs.Title,
		Body:     body,
		IconPath: icon,
		Timeout:  n.prefs.Timeout,
	})
	if err != nil {
		n.log.Warn().Err(err).Str("event", string(event)).Msg("notification")
	}
}

func writePreview(img image.Image) (string, func(), error) {
	f, err := os.CreateTemp("", "uitheme-preview-*.png")
	if err != nil {
		return "", nil, err
	}
	path := f.Name()
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", nil, err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}
