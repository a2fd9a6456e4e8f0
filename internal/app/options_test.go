package app

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rook-computer/ribbons/internal/ribbon"
)

func parseOptions(t *testing.T, opts Options, args ...string) (Options, error) {
	t.Helper()
	fs := flag.NewFlagSet("ribbons", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	err := opts.Finish(fs)
	return opts, err
}

func TestDefaultOptionsFromEnv(t *testing.T) {
	t.Setenv(EnvBackend, "term")
	t.Setenv(EnvFPS, "30")
	t.Setenv(EnvWidth, "800")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvCaption, "welcome")

	opts, err := DefaultOptionsFromEnv()
	if err != nil {
		t.Fatalf("DefaultOptionsFromEnv: %v", err)
	}
	if opts.Backend != BackendTerminal || opts.FPS != 30 || opts.Width != 800 || !opts.Debug || opts.Caption != "welcome" {
		t.Fatalf("options = %+v", opts)
	}
	if opts.FBDevice != "/dev/fb0" || opts.Ribbon != ribbon.DefaultConfig() {
		t.Fatalf("defaults lost: %+v", opts)
	}
}

func TestDefaultOptionsFromEnvErrors(t *testing.T) {
	tests := []struct {
		name, value string
	}{
		{EnvFPS, "fast"},
		{EnvHeight, "1.5"},
		{EnvDebug, "sometimes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)
			_, err := DefaultOptionsFromEnv()
			if err == nil || !strings.Contains(err.Error(), tt.name) {
				t.Fatalf("error = %v, want one naming %s", err, tt.name)
			}
		})
	}
}

func TestOptionsRibbonFlags(t *testing.T) {
	opts, err := parseOptions(t, DefaultOptions(),
		"-count", "5",
		"-saturation", "50%",
		"-vertical", "bottom",
		"-single-color", "200",
		"-animate=false",
	)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := opts.Ribbon
	if r.RibbonCount != 5 || r.ColorSaturation != 0.5 || r.VerticalPosition != ribbon.VerticalBottom || r.AnimateSections {
		t.Fatalf("ribbon config = %+v", r)
	}
	if r.SingleColor != (ribbon.ColorMode{Kind: ribbon.ColorFixed, Hue: 200}) {
		t.Fatalf("single color = %+v", r.SingleColor)
	}
}

func TestOptionsTricolorFlagForcesThreeRibbons(t *testing.T) {
	opts, err := parseOptions(t, DefaultOptions(), "-count", "9", "-single-color", "tricolor")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if opts.Ribbon.RibbonCount != 3 {
		t.Fatalf("ribbon count = %d, want 3", opts.Ribbon.RibbonCount)
	}
}

func TestOptionsConfigFileWithFlagOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ribbons.json")
	data := `{"ribbonCount": 6, "ribbonBlur": 25, "verticalPosition": "top"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	opts, err := parseOptions(t, DefaultOptions(), "-config", path, "-count", "2")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	r := opts.Ribbon
	if r.RibbonCount != 2 {
		t.Fatalf("explicit flag lost: count = %d", r.RibbonCount)
	}
	if r.RibbonBlur != 25 || r.VerticalPosition != ribbon.VerticalTop {
		t.Fatalf("config file not applied: %+v", r)
	}
	if r.Phase != ribbon.DefaultConfig().Phase {
		t.Fatalf("phase = %v, want the default", r.Phase)
	}
}

func TestOptionsFinishErrors(t *testing.T) {
	badConfig := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(badConfig, []byte(`{"ribbonCnt": 3}`), 0o644); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		args []string
	}{
		{"backend", []string{"-backend", "x11"}},
		{"fps", []string{"-fps", "0"}},
		{"size", []string{"-width", "-1"}},
		{"missing config", []string{"-config", filepath.Join(t.TempDir(), "nope.json")}},
		{"unknown key", []string{"-config", badConfig}},
		{"invalid ribbon option", []string{"-alpha", "3"}},
		{"bad vertical", []string{"-vertical", "left"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseOptions(t, DefaultOptions(), tt.args...); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
