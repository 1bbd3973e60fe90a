//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"fmt"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		owner, initErr = newSelectionOwner()
	})
	return initErr
}

func writeText(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	a := owner.atoms
	return owner.offer(data, a.utf8, xproto.AtomString, a.textPlain, a.yaml)
}

func writeImage(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return owner.offer(data, owner.atoms.png)
}

func readText() ([]byte, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	var (
		data []byte
		err  error
	)
	for _, target := range []xproto.Atom{owner.atoms.yaml, owner.atoms.utf8, xproto.AtomString} {
		if data, err = owner.atoms.fetch(target); err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	if data = trimText(data); len(data) == 0 {
		return nil, errNoText
	}
	return data, nil
}

type atomTable struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	utf8      xproto.Atom
	textPlain xproto.Atom
	yaml      xproto.Atom
	png       xproto.Atom
	property  xproto.Atom
}

func internAtoms(conn *xgb.Conn) (atomTable, error) {
	var t atomTable
	names := map[string]*xproto.Atom{
		"CLIPBOARD":                &t.clipboard,
		"TARGETS":                  &t.targets,
		"UTF8_STRING":              &t.utf8,
		"text/plain;charset=utf-8": &t.textPlain,
		"application/x-yaml":       &t.yaml,
		"image/png":                &t.png,
		"UITHEME_SELECTION":        &t.property,
	}
	for name, dst := range names {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atomTable{}, fmt.Errorf("intern %s: %w", name, err)
		}
		*dst = reply.Atom
	}
	return t, nil
}

// selectionOwner keeps CLIPBOARD for the life of the process and answers
// conversion requests from whatever was last offered.
type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atomTable

	mu      sync.RWMutex
	payload []byte
	formats []xproto.Atom
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	window, err := hiddenWindow(conn, xproto.EventMaskPropertyChange|xproto.EventMaskStructureNotify)
	if err != nil {
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, window: window, atoms: atoms}
	go o.serve()
	return o, nil
}

func hiddenWindow(conn *xgb.Conn, mask uint32) (xproto.Window, error) {
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return 0, err
	}
	err = xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0,
		xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{mask}).Check()
	return window, err
}

// offer makes payload available under each of formats and claims the
// selection.
func (o *selectionOwner) offer(payload []byte, formats ...xproto.Atom) error {
	o.mu.Lock()
	o.payload = append([]byte(nil), payload...)
	o.formats = formats
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.payload, o.formats = nil, nil
			o.mu.Unlock()
		}
	}
}

// reply returns the property type, format and data for target, or false
// when target is not on offer.
func (o *selectionOwner) reply(target xproto.Atom) (xproto.Atom, byte, []byte, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if target == o.atoms.targets {
		list := append([]xproto.Atom{o.atoms.targets}, o.formats...)
		buf := make([]byte, 4*len(list))
		for i, a := range list {
			xgb.Put32(buf[4*i:], uint32(a))
		}
		return xproto.AtomAtom, 32, buf, true
	}
	for _, f := range o.formats {
		if f == target {
			return target, 8, o.payload, true
		}
	}
	return 0, 0, nil, false
}

func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}
	if typ, format, data, ok := o.reply(e.Target); ok {
		units := uint32(len(data)) / uint32(format/8)
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, typ, format, units, data)
	} else {
		property = xproto.AtomNone
	}
	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// fetch converts CLIPBOARD to target on a private connection, since the
// owner's connection is busy serving requests.
func (t atomTable) fetch(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	window, err := hiddenWindow(conn, xproto.EventMaskPropertyChange)
	if err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.ConvertSelectionChecked(conn, window, t.clipboard, target, t.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		e, ok := ev.(xproto.SelectionNotifyEvent)
		if !ok {
			continue
		}
		if e.Property == xproto.AtomNone {
			return nil, fmt.Errorf("clipboard has no %d target", target)
		}
		prop, perr := xproto.GetProperty(conn, true, window, e.Property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
		if perr != nil {
			return nil, perr
		}
		return append([]byte(nil), prop.Value...), nil
	}
}
