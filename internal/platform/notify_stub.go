//go:build !linux && !darwin && !windows

package platform

import "context"

// Notify is a no-op on unsupported platforms.
func Notify(context.Context, Notification) error {
	return nil
}
