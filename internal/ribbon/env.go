package ribbon

// Metrics describes the drawing surface in device pixels.
type Metrics struct {
	Width, Height    float64
	ScrollX, ScrollY float64
}

// HSLA is a color in the HSL model. H is in degrees and may lie outside
// [0,360); consumers wrap it. S, L and A are fractions.
type HSLA struct {
	H, S, L, A float64
}

// Context is the 2D drawing context the ribbons are painted with. Its
// methods follow the canvas model: a current path, a save/restore stack
// holding the transform and shadow settings, and a global alpha.
type Context interface {
	ClearRect(x, y, width, height float64)
	SetGlobalAlpha(alpha float64)

	Save()
	Restore()
	Translate(dx, dy float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()

	// SetShadow sets the blur radius and color used by subsequent fills and
	// strokes. A zero blur disables the shadow.
	SetShadow(blur float64, c HSLA)
	Fill(c HSLA)
	Stroke(width float64, c HSLA)
}

// FrameHandle cancels a scheduled frame callback.
type FrameHandle interface {
	Cancel()
}

// Environment supplies everything the population manager needs from the
// host display.
type Environment interface {
	Metrics() Metrics
	Context() (Context, error)
	// ScheduleFrame runs fn once on the next frame.
	ScheduleFrame(fn func()) FrameHandle
}

// FrameRunner is implemented by environments that can run a frame
// synchronously with the same bookkeeping as a scheduled one.
type FrameRunner interface {
	RunFrame(fn func())
}

// Logger is the component-tagged logger used across the program.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Infof(component, format string, args ...interface{})  {}
func (noopLogger) Errorf(component, format string, args ...interface{}) {}
