package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"github.com/rook-computer/ribbons/internal/app"
	"github.com/rook-computer/ribbons/internal/render"
	"github.com/rook-computer/ribbons/internal/ribbon"
	"github.com/rook-computer/ribbons/internal/state"
)

func main() {
	opts, err := app.DefaultOptionsFromEnv()
	if err != nil {
		fmt.Println("environment error:", err)
		os.Exit(2)
	}
	opts.RegisterFlags(flag.CommandLine)
	frames := flag.Int("frames", 600, "number of frames to render")
	every := flag.Int("every", 30, "write every Nth frame")
	outDir := flag.String("out", "ribbons-frames", "directory for PNG frames")
	seed := flag.Uint64("seed", 0, "random seed (0 = time based)")
	flag.Parse()
	if err := opts.Finish(flag.CommandLine); err != nil {
		fmt.Println("configuration error:", err)
		os.Exit(2)
	}

	width, height := opts.Width, opts.Height
	if width == 0 || height == 0 {
		width, height = render.CanvasWidth, render.CanvasHeight
	}

	var logger app.Logger = app.NoopLogger{}
	if opts.Debug {
		logger = app.NewFileLogger(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := state.NewStore()
	renderer := render.NewHeadlessRenderer(store, width, height)
	renderer.OutDir = *outDir
	renderer.Every = *every
	renderer.Logger = logger
	if opts.Caption != "" || opts.QRPayload != "" {
		renderer.Overlay = &render.Overlay{Caption: opts.Caption, QRPayload: opts.QRPayload, Logger: logger}
	}
	if err := renderer.Start(ctx); err != nil {
		fmt.Println("renderer start error:", err)
		os.Exit(1)
	}
	defer renderer.Stop()

	var generator *ribbon.Generator
	if *seed != 0 {
		generator = ribbon.NewGenerator(rand.New(rand.NewPCG(*seed, *seed)))
	}
	manager := ribbon.NewManager(opts.Ribbon, renderer, generator)
	manager.Logger = logger
	if err := manager.Start(); err != nil {
		fmt.Println("animation start error:", err)
		os.Exit(1)
	}
	defer manager.Stop()

	rendered := 0
	for rendered < *frames && ctx.Err() == nil {
		if !renderer.Step() {
			break
		}
		rendered++
	}

	fmt.Printf("Rendered %d frames at %dx%d, wrote %d files to %s\n",
		rendered, width, height, len(renderer.Written()), *outDir)
}
