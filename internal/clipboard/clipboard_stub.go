//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

func writeText([]byte) error { return errUnsupported }

func writeImage([]byte) error { return errUnsupported }

func readText() ([]byte, error) { return nil, errUnsupported }
