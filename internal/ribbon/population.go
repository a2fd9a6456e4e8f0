package ribbon

import (
	"errors"
	"fmt"
	"sync"
)

// Manager owns the active ribbons and drives the per-frame draw pass.
//
// Frames run one at a time: each frame schedules its successor only after it
// has finished. Resize and scroll notifications only touch the cached metrics
// and may arrive from any goroutine.
type Manager struct {
	Logger Logger

	cfg       Config
	env       Environment
	generator *Generator

	mu      sync.Mutex
	ctx     Context
	ribbons []Ribbon // nil entries are retired slots
	running bool
	handle  FrameHandle
	frames  uint64

	metricsMu sync.RWMutex
	metrics   Metrics
}

// NewManager returns a stopped manager. A nil generator uses a clock seeded
// one.
func NewManager(cfg Config, env Environment, generator *Generator) *Manager {
	if generator == nil {
		generator = NewGenerator(nil)
	}
	return &Manager{
		Logger:    noopLogger{},
		cfg:       cfg.Normalize(),
		env:       env,
		generator: generator,
	}
}

func (m *Manager) Config() Config { return m.cfg }

// Start acquires the drawing context, draws the first frame right away and
// schedules the next one. If the context cannot be acquired the animation
// never starts.
func (m *Manager) Start() error {
	if m.env == nil {
		return errors.New("no environment configured")
	}
	ctx, err := m.env.Context()
	if err != nil {
		m.logger().Errorf("ribbons", "canvas context error: %v", err)
		return fmt.Errorf("acquire drawing context: %w", err)
	}

	m.OnResize()

	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return nil
	}
	m.ctx = ctx
	m.running = true
	m.mu.Unlock()

	m.runNow(func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if !m.running {
			return
		}
		m.ctx.SetGlobalAlpha(m.cfg.ColorAlpha)
		m.frame()
	})

	m.mu.Lock()
	if m.running && m.handle == nil {
		m.handle = m.env.ScheduleFrame(m.onFrame)
	}
	m.mu.Unlock()

	metrics := m.Metrics()
	m.logger().Infof("ribbons", "started: %dx%d, %d ribbons", int(metrics.Width), int(metrics.Height), m.cfg.RibbonCount)
	return nil
}

// runNow runs fn synchronously, through the environment when it can run
// frames itself.
func (m *Manager) runNow(fn func()) {
	if r, ok := m.env.(FrameRunner); ok {
		r.RunFrame(fn)
		return
	}
	fn()
}

// Stop cancels the pending frame. Calling Stop on a stopped manager is a
// no-op.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.running = false
	if m.handle != nil {
		m.handle.Cancel()
		m.handle = nil
	}
	m.logger().Infof("ribbons", "stopped after %d frames", m.frames)
}

func (m *Manager) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

func (m *Manager) onFrame() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	m.frame()
	m.handle = m.env.ScheduleFrame(m.onFrame)
}

// Frame draws one frame without scheduling another. The manager must have a
// drawing context, either from Start or from SetContext.
func (m *Manager) Frame() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frame()
}

// SetContext installs ctx without starting the frame loop, for callers that
// drive frames themselves.
func (m *Manager) SetContext(ctx Context) {
	m.OnResize()
	m.mu.Lock()
	m.ctx = ctx
	ctx.SetGlobalAlpha(m.cfg.ColorAlpha)
	m.mu.Unlock()
}

func (m *Manager) frame() {
	if m.ctx == nil {
		return
	}
	m.compact()

	m.refreshMetrics()
	metrics := m.Metrics()
	m.ctx.ClearRect(0, 0, metrics.Width, metrics.Height)

	for i, ribbon := range m.ribbons {
		if len(ribbon) == 0 {
			m.ribbons[i] = nil
			continue
		}

		done := 0
		for _, section := range ribbon {
			if section == nil {
				done++
				continue
			}
			if section.Advance(m.cfg) {
				done++
				continue
			}
			if section.Alpha > 0 {
				section.Draw(m.ctx, m.cfg, metrics.ScrollY)
			}
		}
		if done >= len(ribbon) {
			m.ribbons[i] = nil
		}
	}

	for len(m.ribbons) < m.cfg.RibbonCount {
		m.addRibbon(metrics)
	}
	m.frames++
}

func (m *Manager) addRibbon(metrics Metrics) {
	m.ribbons = append(m.ribbons, m.generator.Generate(metrics.Width, metrics.Height, m.cfg))
}

// compact drops retired slots, keeping the order of the rest.
func (m *Manager) compact() {
	kept := m.ribbons[:0]
	for _, ribbon := range m.ribbons {
		if ribbon != nil {
			kept = append(kept, ribbon)
		}
	}
	for i := len(kept); i < len(m.ribbons); i++ {
		m.ribbons[i] = nil
	}
	m.ribbons = kept
}

// Len returns the number of ribbon slots, including slots retired during the
// last frame.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ribbons)
}

// Active returns the number of ribbons still animating.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ribbon := range m.ribbons {
		if ribbon != nil {
			n++
		}
	}
	return n
}

// Ribbons returns the live slots. The sections are shared with the manager
// and must only be inspected between frames.
func (m *Manager) Ribbons() []Ribbon {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Ribbon, len(m.ribbons))
	copy(out, m.ribbons)
	return out
}

func (m *Manager) Frames() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// OnResize re-reads the surface metrics after the surface changed size.
func (m *Manager) OnResize() { m.refreshMetrics() }

// OnScroll re-reads the surface metrics after the scroll offset changed.
func (m *Manager) OnScroll() { m.refreshMetrics() }

func (m *Manager) refreshMetrics() {
	if m.env == nil {
		return
	}
	metrics := m.env.Metrics()
	m.metricsMu.Lock()
	m.metrics = metrics
	m.metricsMu.Unlock()
}

func (m *Manager) Metrics() Metrics {
	m.metricsMu.RLock()
	defer m.metricsMu.RUnlock()
	return m.metrics
}

func (m *Manager) logger() Logger {
	if m.Logger == nil {
		return noopLogger{}
	}
	return m.Logger
}
