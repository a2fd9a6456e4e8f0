package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/rook-computer/ribbons/internal/input"
	"github.com/rook-computer/ribbons/internal/render"
	"github.com/rook-computer/ribbons/internal/ribbon"
	"github.com/rook-computer/ribbons/internal/state"
)

// ErrExitRequested is returned by Start when the user asked to quit.
var ErrExitRequested = errors.New("exit requested")

type App struct {
	Store     *state.Store
	Render    render.Renderer
	Config    ribbon.Config
	Generator *ribbon.Generator
	Logger    Logger

	manager  atomic.Pointer[ribbon.Manager]
	exitOnce atomic.Bool
	exitCh   chan error
}

func New(store *state.Store, renderer render.Renderer, cfg ribbon.Config) *App {
	return &App{Store: store, Render: renderer, Config: cfg, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Manager returns the running ribbon manager, or nil before Start.
func (app *App) Manager() *ribbon.Manager { return app.manager.Load() }

// Start runs the animation until ctx is done or Exit is called. It returns
// ctx.Err() on cancellation and the Exit error otherwise.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	if app.Logger == nil {
		app.Logger = NoopLogger{}
	}
	if app.Render == nil {
		return errors.New("no renderer configured")
	}
	app.exitOnce.Store(false)
	app.Store.SetPhase(state.BOOTING)

	if err := app.Render.Start(ctx); err != nil {
		app.Logger.Errorf("app", "renderer start error: %v", err)
		app.Store.Fail(err)
		return fmt.Errorf("start renderer: %w", err)
	}
	defer app.Render.Stop()

	manager := ribbon.NewManager(app.Config, app.Render, app.Generator)
	manager.Logger = app.Logger
	if err := manager.Start(); err != nil {
		app.Store.Fail(err)
		return err
	}
	defer manager.Stop()
	app.manager.Store(manager)

	app.Store.SetPhase(state.RUNNING)
	app.Logger.Infof("app", "running with %d ribbons", manager.Config().RibbonCount)

	err := app.loop(ctx, manager)
	app.Store.SetPhase(state.STOPPED)
	return err
}

func (app *App) loop(ctx context.Context, manager *ribbon.Manager) error {
	heartbeat := time.NewTicker(10 * time.Second)
	defer heartbeat.Stop()
	events := app.Render.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-app.exitCh:
			return err
		case ev := <-events:
			app.handle(ev, manager)
		case <-heartbeat.C:
			snap := app.Store.Snapshot()
			app.Logger.Infof("app", "heartbeat: %d frames, %d ribbons active", snap.Frames, manager.Active())
		}
	}
}

func (app *App) handle(ev input.Event, manager *ribbon.Manager) {
	switch ev.Kind {
	case input.Exit:
		app.Exit(ErrExitRequested)
	case input.Scroll:
		app.Store.ScrollBy(0, ev.Delta)
		manager.OnScroll()
	case input.ScrollHome:
		app.Store.SetScroll(0, 0)
		manager.OnScroll()
	case input.Resize:
		manager.OnResize()
	}
}

// Logger interface and implementations
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}

type FileLogger struct{ w io.Writer }

func NewFileLogger(w io.Writer) FileLogger { return FileLogger{w: w} }
func (l FileLogger) Infof(component string, format string, args ...interface{}) {
	writeLog(l.w, "INFO", component, format, args...)
}
func (l FileLogger) Errorf(component string, format string, args ...interface{}) {
	writeLog(l.w, "ERROR", component, format, args...)
}

func writeLog(w io.Writer, level, component, format string, args ...interface{}) {
	timestamp := time.Now().Format(time.RFC3339)
	msg := fmt.Sprintf(format, args...)
	_, _ = io.WriteString(w, timestamp+" ["+level+"] "+component+": "+msg+"\n")
}
