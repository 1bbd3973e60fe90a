// Package platform delivers desktop notifications through the host's
// notification service.
package platform

import "time"

// Notification is one desktop notification.
type Notification struct {
	AppName string
	Title   string
	Body    string
	// IconPath, when non-empty, points to an image file shown alongside the
	// notification where the platform supports it.
	IconPath string
	// Timeout is how long the notification stays up. Zero leaves it to the
	// notification server.
	Timeout time.Duration
}

func (n Notification) appName() string {
	if n.AppName == "" {
		return "uitheme"
	}
	return n.AppName
}
