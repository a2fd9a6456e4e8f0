package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/ribbons/internal/app"
	"github.com/rook-computer/ribbons/internal/render"
	"github.com/rook-computer/ribbons/internal/state"
	"github.com/rook-computer/ribbons/internal/web"
)

func main() {
	fmt.Println("Ribbons starting")

	opts, err := app.DefaultOptionsFromEnv()
	if err != nil {
		fmt.Println("environment error:", err)
		os.Exit(2)
	}
	srvCfg, err := web.DefaultServerConfigFromEnv("")
	if err != nil {
		fmt.Println("environment error:", err)
		os.Exit(2)
	}
	opts.RegisterFlags(flag.CommandLine)
	flag.StringVar(&srvCfg.ListenAddr, "listen", srvCfg.ListenAddr, "serve a live preview on this address, e.g. :8080 (empty = off)")
	flag.Parse()
	if err := opts.Finish(flag.CommandLine); err != nil {
		fmt.Println("configuration error:", err)
		os.Exit(2)
	}

	// Panics must stay readable while the console is in graphics mode.
	if opts.StdioLog != "" {
		if err := redirectStdIO(opts.StdioLog); err != nil {
			fmt.Println("stdio log redirect error:", err)
		}
	}

	// Local file logger when debug enabled
	var logger app.Logger = app.NoopLogger{}
	if opts.Debug {
		f, err := os.OpenFile("./ribbons-debug.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			defer f.Close()
			logger = app.NewFileLogger(f)
			logger.Infof("main", "debug logging enabled")
		} else {
			fmt.Println("debug log open error:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	overlay := &render.Overlay{Caption: opts.Caption, QRPayload: opts.QRPayload, Logger: logger}

	var renderer render.Renderer
	switch opts.Backend {
	case app.BackendTerminal:
		term := render.NewTermRenderer(store)
		term.FPS = opts.FPS
		term.Overlay = overlay
		term.Logger = logger
		renderer = term
	default:
		fbr := render.NewFBRenderer(store)
		fbr.Device = opts.FBDevice
		fbr.FPS = opts.FPS
		fbr.Width, fbr.Height = opts.Width, opts.Height
		fbr.Overlay = overlay
		fbr.Logger = logger
		fbr.Debug = opts.Debug
		renderer = fbr
	}

	a := app.New(store, renderer, opts.Ribbon)
	a.Logger = logger

	var srv web.Server = &web.NoopServer{}
	if srvCfg.Enabled() {
		httpSrv := web.NewHTTPServer(srvCfg, web.APIV1Deps{
			State:  store,
			Frames: renderer,
			Ribbons: func() web.RibbonSource {
				if m := a.Manager(); m != nil && m.Running() {
					return m
				}
				return nil
			},
		})
		httpSrv.Logger = logger
		srv = httpSrv
	}
	if err := srv.Start(ctx); err != nil {
		fmt.Println("web server error:", err)
	}
	defer srv.Stop()

	err = a.Start(ctx)
	switch {
	case err == nil, errors.Is(err, context.Canceled), errors.Is(err, app.ErrExitRequested):
		logger.Infof("main", "exiting")
	default:
		fmt.Println("app error:", err)
		os.Exit(1)
	}
}
