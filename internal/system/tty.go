//go:build linux

package system

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// Prefer /dev/tty (active VT), fall back to /dev/tty0.
var ttyPaths = []string{"/dev/tty", "/dev/tty0"}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

// SetGraphicsMode switches the active console to graphics mode so the text
// console and its cursor stop drawing over the framebuffer.
func SetGraphicsMode() error { return setKDMode(kdGraphics, "KD_GRAPHICS") }

// RestoreTextMode restores the console to text mode so cursor and normal console return.
func RestoreTextMode() error { return setKDMode(kdText, "KD_TEXT") }

func setKDMode(mode int, name string) error {
	var errs []error
	for _, p := range ttyPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			errs = append(errs, fmt.Errorf("open %s: %w", p, err))
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s on %s: %w", name, p, err))
			continue
		}
		return nil
	}
	return errors.Join(errs...)
}

func SetGraphicsModeWithLog(l logger) error {
	return withLog(l, SetGraphicsMode(), "KD_GRAPHICS set", "KD_GRAPHICS failed")
}

func RestoreTextModeWithLog(l logger) error {
	return withLog(l, RestoreTextMode(), "KD_TEXT set", "KD_TEXT failed")
}

// HideCursor writes the ANSI escape to hide the cursor to the active VT.
func HideCursor() error { return writeVT("\x1b[?25l") }
func ShowCursor() error { return writeVT("\x1b[?25h") }

func HideCursorWithLog(l logger) error {
	return withLog(l, HideCursor(), "cursor hidden", "hide cursor failed")
}

func ShowCursorWithLog(l logger) error {
	return withLog(l, ShowCursor(), "cursor shown", "show cursor failed")
}

func withLog(l logger, err error, ok, failed string) error {
	if l == nil {
		return err
	}
	if err != nil {
		l.Errorf("tty", "%s: %v", failed, err)
	} else {
		l.Infof("tty", "%s", ok)
	}
	return err
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range ttyPaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write VT failed: %w", lastErr)
}
