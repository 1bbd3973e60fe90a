package loader

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// XSETTINGS setting types.
const (
	xsettingInt    = 0
	xsettingString = 1
	xsettingColor  = 2
)

var errShortXSettings = errors.New("xsettings: truncated data")

// parseXSettings decodes the _XSETTINGS_SETTINGS property and returns the
// string valued settings. Integer and color settings are skipped.
func parseXSettings(data []byte) (map[string]string, error) {
	if len(data) < 12 {
		return nil, errShortXSettings
	}
	var order binary.ByteOrder = binary.LittleEndian
	switch data[0] {
	case 0:
	case 1:
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("xsettings: bad byte order %d", data[0])
	}
	count := order.Uint32(data[8:12])
	r := xsettingsReader{data: data, off: 12, order: order}

	out := make(map[string]string)
	for i := uint32(0); i < count; i++ {
		kind, err := r.byte()
		if err != nil {
			return nil, err
		}
		if err := r.skip(1); err != nil {
			return nil, err
		}
		nameLen, err := r.uint16()
		if err != nil {
			return nil, err
		}
		name, err := r.padded(int(nameLen))
		if err != nil {
			return nil, err
		}
		// last-change serial
		if err := r.skip(4); err != nil {
			return nil, err
		}
		switch kind {
		case xsettingInt:
			err = r.skip(4)
		case xsettingString:
			var n uint32
			if n, err = r.uint32(); err != nil {
				return nil, err
			}
			var value []byte
			if value, err = r.padded(int(n)); err == nil {
				out[string(name)] = string(value)
			}
		case xsettingColor:
			err = r.skip(8)
		default:
			return nil, fmt.Errorf("xsettings: unknown setting type %d", kind)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

type xsettingsReader struct {
	data  []byte
	off   int
	order binary.ByteOrder
}

func (r *xsettingsReader) need(n int) error {
	if n < 0 || r.off+n > len(r.data) {
		return errShortXSettings
	}
	return nil
}

func (r *xsettingsReader) skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.off += n
	return nil
}

func (r *xsettingsReader) byte() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

func (r *xsettingsReader) uint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := r.order.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *xsettingsReader) uint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := r.order.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

// padded reads n bytes and skips the padding up to the next multiple of 4.
func (r *xsettingsReader) padded(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	if pad := (4 - n%4) % 4; pad > 0 {
		if err := r.skip(pad); err != nil {
			return nil, err
		}
	}
	return b, nil
}
