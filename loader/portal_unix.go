//go:build linux || freebsd || openbsd || netbsd || dragonfly

package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"

	"github.com/example/uitheme/theme"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalSettings  = "org.freedesktop.portal.Settings"
	appearanceGroup = "org.freedesktop.appearance"
	colorSchemeKey  = "color-scheme"
)

// org.freedesktop.appearance color-scheme values.
const (
	colorSchemeNoPreference uint32 = 0
	colorSchemeDark         uint32 = 1
	colorSchemeLight        uint32 = 2
)

func colorSchemeShade(scheme uint32) (theme.Shade, bool) {
	switch scheme {
	case colorSchemeDark:
		return theme.ShadeDark, true
	case colorSchemeLight:
		return theme.ShadeLight, true
	}
	return theme.ShadeLight, false
}

func readPortalColorScheme(ctx context.Context) (uint32, error) {
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return colorSchemeNoPreference, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			zerolog.Ctx(ctx).Debug().Err(cerr).Msg("dbus close")
		}
	}()

	obj := conn.Object(portalDest, portalPath)
	var value dbus.Variant
	err = obj.CallWithContext(ctx, portalSettings+".ReadOne", 0, appearanceGroup, colorSchemeKey).Store(&value)
	if err != nil {
		// Portals older than version 2 only implement the deprecated Read.
		zerolog.Ctx(ctx).Debug().Err(err).Msg("portal ReadOne failed, trying Read")
		err = obj.CallWithContext(ctx, portalSettings+".Read", 0, appearanceGroup, colorSchemeKey).Store(&value)
	}
	if err != nil {
		return colorSchemeNoPreference, fmt.Errorf("portal read %s: %w", colorSchemeKey, err)
	}
	return variantUint32(value)
}

// variantUint32 unwraps the nested variants Read returns.
func variantUint32(v dbus.Variant) (uint32, error) {
	value := v.Value()
	for {
		inner, ok := value.(dbus.Variant)
		if !ok {
			break
		}
		value = inner.Value()
	}
	scheme, ok := value.(uint32)
	if !ok {
		return colorSchemeNoPreference, fmt.Errorf("portal %s: unexpected value type %T", colorSchemeKey, value)
	}
	return scheme, nil
}

// settingChangedShade extracts the shade from a SettingChanged signal for
// the color scheme. No preference is reported as light.
func settingChangedShade(sig *dbus.Signal) (theme.Shade, bool) {
	if sig == nil || sig.Name != portalSettings+".SettingChanged" || len(sig.Body) < 3 {
		return theme.ShadeLight, false
	}
	group, _ := sig.Body[0].(string)
	key, _ := sig.Body[1].(string)
	if group != appearanceGroup || key != colorSchemeKey {
		return theme.ShadeLight, false
	}
	value, ok := sig.Body[2].(dbus.Variant)
	if !ok {
		return theme.ShadeLight, false
	}
	scheme, err := variantUint32(value)
	if err != nil {
		return theme.ShadeLight, false
	}
	shade, _ := colorSchemeShade(scheme)
	return shade, true
}

func (unixBackend) Watch(ctx context.Context, fn func(theme.Shade)) error {
	log := zerolog.Ctx(ctx)
	conn, err := dbus.ConnectSessionBus(dbus.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Debug().Err(cerr).Msg("dbus close")
		}
	}()

	rule := fmt.Sprintf("type='signal',interface='%s',member='SettingChanged',path='%s',arg0='%s'",
		portalSettings, portalPath, appearanceGroup)
	if err := conn.BusObject().CallWithContext(ctx, "org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return fmt.Errorf("portal subscribe: %w", err)
	}

	sigc := make(chan *dbus.Signal, 8)
	conn.Signal(sigc)
	defer conn.RemoveSignal(sigc)

	log.Debug().Msg("watching color scheme")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig, ok := <-sigc:
			if !ok {
				return errors.New("portal watch: connection closed")
			}
			if shade, ok := settingChangedShade(sig); ok {
				log.Debug().Stringer("shade", shade).Msg("color scheme changed")
				fn(shade)
			}
		}
	}
}
