package app

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/rook-computer/ribbons/internal/ribbon"
)

const (
	BackendFramebuffer = "fb"
	BackendTerminal    = "term"
)

// Environment variables used as defaults for the command line flags.
const (
	EnvBackend  = "RIBBONS_BACKEND"
	EnvFBDevice = "RIBBONS_FB"
	EnvFPS      = "RIBBONS_FPS"
	EnvWidth    = "RIBBONS_WIDTH"
	EnvHeight   = "RIBBONS_HEIGHT"
	EnvConfig   = "RIBBONS_CONFIG"
	EnvCaption  = "RIBBONS_CAPTION"
	EnvQR       = "RIBBONS_QR"
	EnvDebug    = "RIBBONS_DEBUG"
	EnvStdioLog = "RIBBONS_STDIO_LOG"
)

type Options struct {
	Backend    string
	FBDevice   string
	FPS        int
	Width      int
	Height     int
	ConfigPath string
	Caption    string
	QRPayload  string
	Debug      bool
	StdioLog   string

	Ribbon ribbon.Config
}

func DefaultOptions() Options {
	return Options{
		Backend:  BackendFramebuffer,
		FBDevice: "/dev/fb0",
		FPS:      60,
		Ribbon:   ribbon.DefaultConfig(),
	}
}

// DefaultOptionsFromEnv returns DefaultOptions overridden by any RIBBONS_*
// variables that are set.
func DefaultOptionsFromEnv() (Options, error) {
	opts := DefaultOptions()

	if v := os.Getenv(EnvBackend); v != "" {
		opts.Backend = v
	}
	if v := os.Getenv(EnvFBDevice); v != "" {
		opts.FBDevice = v
	}
	if v := os.Getenv(EnvConfig); v != "" {
		opts.ConfigPath = v
	}
	if v := os.Getenv(EnvCaption); v != "" {
		opts.Caption = v
	}
	if v := os.Getenv(EnvQR); v != "" {
		opts.QRPayload = v
	}
	if v := os.Getenv(EnvStdioLog); v != "" {
		opts.StdioLog = v
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvFPS, &opts.FPS},
		{EnvWidth, &opts.Width},
		{EnvHeight, &opts.Height},
	}
	for _, e := range ints {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return Options{}, fmt.Errorf("invalid %s: %w", e.name, err)
		}
		*e.dst = n
	}

	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Options{}, fmt.Errorf("invalid %s: %w", EnvDebug, err)
		}
		opts.Debug = b
	}

	return opts, nil
}

// RegisterFlags binds every option to a flag on fs, using the current values
// as defaults.
func (o *Options) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&o.Backend, "backend", o.Backend, "display backend: fb or term")
	fs.StringVar(&o.FBDevice, "fb", o.FBDevice, "framebuffer device")
	fs.IntVar(&o.FPS, "fps", o.FPS, "frames per second")
	fs.IntVar(&o.Width, "width", o.Width, "logical canvas width for the framebuffer (0 = device width)")
	fs.IntVar(&o.Height, "height", o.Height, "logical canvas height for the framebuffer (0 = device height)")
	fs.StringVar(&o.ConfigPath, "config", o.ConfigPath, "JSON file with ribbon options; flags given explicitly win")
	fs.StringVar(&o.Caption, "caption", o.Caption, "caption drawn over the ribbons")
	fs.StringVar(&o.QRPayload, "qr", o.QRPayload, "payload for a QR code badge in the bottom-right corner")
	fs.BoolVar(&o.Debug, "debug", o.Debug, "enable debug logging to ./ribbons-debug.log")
	fs.StringVar(&o.StdioLog, "stdio-log", o.StdioLog, "redirect stdout+stderr (including panics) to this file")

	r := &o.Ribbon
	fs.TextVar(&r.ColorSaturation, "saturation", r.ColorSaturation, "ribbon color saturation, e.g. 80%")
	fs.TextVar(&r.ColorBrightness, "brightness", r.ColorBrightness, "ribbon color lightness, e.g. 60%")
	fs.Float64Var(&r.ColorAlpha, "alpha", r.ColorAlpha, "global ribbon opacity in [0,1]")
	fs.Float64Var(&r.ColorCycleSpeed, "cycle-speed", r.ColorCycleSpeed, "hue change per section")
	fs.TextVar(&r.VerticalPosition, "vertical", r.VerticalPosition, "ribbon start height: top, center, bottom or random")
	fs.Float64Var(&r.HorizontalSpeed, "speed", r.HorizontalSpeed, "horizontal step scale in pixels")
	fs.Float64Var(&r.Delay, "delay", r.Delay, "delay step between consecutive sections")
	fs.Float64Var(&r.Phase, "phase", r.Phase, "fade phase advance per frame")
	fs.IntVar(&r.RibbonCount, "count", r.RibbonCount, "number of concurrent ribbons")
	fs.Float64Var(&r.StrokeSize, "stroke", r.StrokeSize, "section outline width (0 = none)")
	fs.Float64Var(&r.ParallaxAmount, "parallax", r.ParallaxAmount, "vertical offset per scrolled pixel")
	fs.BoolVar(&r.AnimateSections, "animate", r.AnimateSections, "wobble sections while they fade")
	fs.Float64Var(&r.RibbonBlur, "blur", r.RibbonBlur, "shadow blur radius")
	fs.TextVar(&r.SingleColor, "single-color", r.SingleColor, "hue in degrees, tricolor, or random")
}

// Finish applies the -config file, if any, then re-applies the flags that
// were given explicitly so they take precedence. It must run after fs has
// been parsed.
func (o *Options) Finish(fs *flag.FlagSet) error {
	if o.Backend != BackendFramebuffer && o.Backend != BackendTerminal {
		return fmt.Errorf("unknown backend %q", o.Backend)
	}
	if o.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", o.FPS)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New("canvas size must not be negative")
	}

	if o.ConfigPath != "" {
		explicit := map[string]string{}
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = f.Value.String() })

		f, err := os.Open(o.ConfigPath)
		if err != nil {
			return fmt.Errorf("open ribbon config: %w", err)
		}
		cfg, err := ribbon.LoadConfig(f, o.Ribbon)
		f.Close()
		if err != nil {
			return fmt.Errorf("ribbon config %s: %w", o.ConfigPath, err)
		}
		o.Ribbon = cfg
		for name, value := range explicit {
			if err := fs.Set(name, value); err != nil {
				return fmt.Errorf("flag -%s: %w", name, err)
			}
		}
	}

	o.Ribbon = o.Ribbon.Normalize()
	return o.Ribbon.Validate()
}
