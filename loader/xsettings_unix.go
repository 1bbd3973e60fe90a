//go:build linux || freebsd || openbsd || netbsd || dragonfly

package loader

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// readXSettingsThemeName reads Net/ThemeName from the running XSETTINGS
// manager of the default screen.
func readXSettingsThemeName() (string, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return "", fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	selection, err := internAtom(conn, fmt.Sprintf("_XSETTINGS_S%d", conn.DefaultScreen))
	if err != nil {
		return "", err
	}
	owner, err := xproto.GetSelectionOwner(conn, selection).Reply()
	if err != nil {
		return "", fmt.Errorf("get xsettings owner: %w", err)
	}
	if owner.Owner == xproto.WindowNone {
		return "", errNoXSettingsManager
	}

	property, err := internAtom(conn, "_XSETTINGS_SETTINGS")
	if err != nil {
		return "", err
	}
	reply, err := xproto.GetProperty(conn, false, owner.Owner, property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
	if err != nil {
		return "", fmt.Errorf("get xsettings: %w", err)
	}
	settings, err := parseXSettings(reply.Value)
	if err != nil {
		return "", err
	}
	name, ok := settings["Net/ThemeName"]
	if !ok {
		return "", ErrNotFound
	}
	return name, nil
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, true, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	if reply.Atom == xproto.AtomNone {
		return 0, errNoXSettingsManager
	}
	return reply.Atom, nil
}
