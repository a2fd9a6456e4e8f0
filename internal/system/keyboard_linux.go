//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// WatchKeys watches Linux evdev devices under /dev/input/event* and calls
// onKey for every recognised key press. The exit key is reported once.
//
// It is best-effort: if no input devices are available, it logs and returns.
func WatchKeys(ctx context.Context, l logger, onKey func(Key)) {
	if onKey == nil {
		return
	}

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})
	eventSize := tvSize + 2 + 2 + 4

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if l != nil {
			l.Infof("input", "no evdev devices found")
		}
		return
	}

	var (
		mu     sync.Mutex
		exited bool
	)
	deliver := func(key Key) {
		mu.Lock()
		defer mu.Unlock()
		if exited {
			return
		}
		if key == KeyExit {
			exited = true
			if l != nil {
				l.Infof("input", "exit key pressed")
			}
		}
		onKey(key)
	}

	for _, path := range paths {
		go watchDevice(ctx, path, eventSize, tvSize, deliver)
	}
}

func watchDevice(ctx context.Context, path string, eventSize, tvSize int, deliver func(Key)) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 64*eventSize)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, key := range decodeKeys(buf[:n], tvSize) {
			deliver(key)
		}
	}
}
