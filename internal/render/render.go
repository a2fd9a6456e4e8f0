package render

import (
	"image"

	"github.com/rook-computer/ribbons/internal/input"
	"github.com/rook-computer/ribbons/internal/ribbon"
)

// Renderer is a display backend. It supplies the animation environment
// (surface metrics, a drawing context and a frame clock) and reports user
// and surface events. Snapshot copies the last finished frame.
type Renderer interface {
	input.Source
	ribbon.Environment
	Snapshot() *image.RGBA
}

var (
	_ Renderer = (*FBRenderer)(nil)
	_ Renderer = (*TermRenderer)(nil)
	_ Renderer = (*HeadlessRenderer)(nil)

	_ ribbon.FrameRunner = (*HeadlessRenderer)(nil)
)

// Clock schedules a single frame callback.
type Clock interface {
	ScheduleFrame(fn func()) ribbon.FrameHandle
}

type Logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

func logInfof(l Logger, component, format string, args ...interface{}) {
	if l != nil {
		l.Infof(component, format, args...)
	}
}

func logErrorf(l Logger, component, format string, args ...interface{}) {
	if l != nil {
		l.Errorf(component, format, args...)
	}
}
