package ribbon

import (
	"fmt"
	"math/rand/v2"
)

// sequenceSource replays fixed Float64 values, repeating the last one.
type sequenceSource struct {
	values []float64
	next   int
}

func (s *sequenceSource) Uint64() uint64 {
	v := s.values[len(s.values)-1]
	if s.next < len(s.values) {
		v = s.values[s.next]
		s.next++
	}
	// rand.Rand.Float64 keeps the low 53 bits.
	return uint64(v * (1 << 53))
}

func sequence(values ...float64) *rand.Rand {
	return rand.New(&sequenceSource{values: values})
}

type recordingContext struct {
	clears      int
	globalAlpha float64
	depth       int
	translateY  float64
	translates  []float64
	path        []Point
	fills       []HSLA
	strokes     []float64
	shadowBlur  float64
}

func (c *recordingContext) ClearRect(x, y, width, height float64) { c.clears++ }
func (c *recordingContext) SetGlobalAlpha(alpha float64)          { c.globalAlpha = alpha }
func (c *recordingContext) Save()                                 { c.depth++ }
func (c *recordingContext) Restore() {
	c.depth--
	c.translateY = 0
}
func (c *recordingContext) Translate(dx, dy float64) {
	c.translateY += dy
	c.translates = append(c.translates, dy)
}
func (c *recordingContext) BeginPath()                     { c.path = c.path[:0] }
func (c *recordingContext) MoveTo(x, y float64)            { c.path = append(c.path, Point{x, y}) }
func (c *recordingContext) LineTo(x, y float64)            { c.path = append(c.path, Point{x, y}) }
func (c *recordingContext) ClosePath()                     {}
func (c *recordingContext) SetShadow(blur float64, _ HSLA) { c.shadowBlur = blur }
func (c *recordingContext) Fill(col HSLA)                  { c.fills = append(c.fills, col) }
func (c *recordingContext) Stroke(width float64, _ HSLA)   { c.strokes = append(c.strokes, width) }

type fakeHandle struct {
	fn        func()
	cancelled bool
}

func (h *fakeHandle) Cancel() { h.cancelled = true }

type fakeEnv struct {
	metrics Metrics
	ctx     *recordingContext
	ctxErr  error
	pending []*fakeHandle
}

func newFakeEnv(width, height float64) *fakeEnv {
	return &fakeEnv{metrics: Metrics{Width: width, Height: height}, ctx: &recordingContext{}}
}

func (e *fakeEnv) Metrics() Metrics { return e.metrics }

func (e *fakeEnv) Context() (Context, error) {
	if e.ctxErr != nil {
		return nil, e.ctxErr
	}
	return e.ctx, nil
}

func (e *fakeEnv) ScheduleFrame(fn func()) FrameHandle {
	h := &fakeHandle{fn: fn}
	e.pending = append(e.pending, h)
	return h
}

// step runs the callbacks scheduled so far and returns how many ran.
func (e *fakeEnv) step() int {
	due := e.pending
	e.pending = nil
	ran := 0
	for _, h := range due {
		if h.cancelled {
			continue
		}
		h.fn()
		ran++
	}
	return ran
}

// runnerEnv counts frames run through RunFrame.
type runnerEnv struct {
	*fakeEnv
	runs int
}

func (e *runnerEnv) RunFrame(fn func()) {
	e.runs++
	fn()
}

type recordingLogger struct {
	infos, errors []string
}

func (l *recordingLogger) Infof(component, format string, args ...interface{}) {
	l.infos = append(l.infos, component+": "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(component, format string, args ...interface{}) {
	l.errors = append(l.errors, component+": "+fmt.Sprintf(format, args...))
}
