//go:build !linux

package system

import "context"

// WatchKeys is unavailable without evdev; it logs and returns.
func WatchKeys(ctx context.Context, l logger, onKey func(Key)) {
	if l != nil {
		l.Infof("input", "key watching is only supported on linux")
	}
}
