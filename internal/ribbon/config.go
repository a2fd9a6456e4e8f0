package ribbon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Config holds every recognised ribbon option. The zero value is not useful;
// start from DefaultConfig.
type Config struct {
	// HSL saturation and lightness used for every non-monochrome ribbon.
	ColorSaturation Percent `json:"colorSaturation"`
	ColorBrightness Percent `json:"colorBrightness"`
	// Global opacity applied to the drawing context.
	ColorAlpha float64 `json:"colorAlpha"`
	// Hue increment per section along a ribbon.
	ColorCycleSpeed float64 `json:"colorCycleSpeed"`

	VerticalPosition VerticalPosition `json:"verticalPosition"`
	// Scales the horizontal step of the generator walk.
	HorizontalSpeed float64 `json:"horizontalSpeed"`

	// Per-section appearance stagger.
	Delay float64 `json:"delay"`
	// Per-frame phase step; controls the fade speed.
	Phase float64 `json:"phase"`

	RibbonCount     int       `json:"ribbonCount"`
	StrokeSize      float64   `json:"strokeSize"`
	ParallaxAmount  float64   `json:"parallaxAmount"`
	AnimateSections bool      `json:"animateSections"`
	RibbonBlur      float64   `json:"ribbonBlur"`
	SingleColor     ColorMode `json:"singleColor"`
}

func DefaultConfig() Config {
	return Config{
		ColorSaturation:  0.8,
		ColorBrightness:  0.6,
		ColorAlpha:       0.65,
		ColorCycleSpeed:  6,
		VerticalPosition: VerticalCenter,
		HorizontalSpeed:  150,
		Delay:            4,
		Phase:            0.014,
		RibbonCount:      3,
		StrokeSize:       0,
		ParallaxAmount:   -0.5,
		AnimateSections:  true,
		RibbonBlur:       10,
		SingleColor:      ColorMode{Kind: ColorRandom},
	}
}

// Normalize applies option interactions. Tricolor mode always runs exactly
// three ribbons so every hue of the cycle is on screen.
func (c Config) Normalize() Config {
	if c.SingleColor.Kind == ColorTricolor {
		c.RibbonCount = 3
	}
	return c
}

func (c Config) Validate() error {
	var errs []error
	if c.ColorSaturation < 0 || c.ColorSaturation > 1 {
		errs = append(errs, fmt.Errorf("colorSaturation must be within 0%%..100%% (got %s)", c.ColorSaturation))
	}
	if c.ColorBrightness < 0 || c.ColorBrightness > 1 {
		errs = append(errs, fmt.Errorf("colorBrightness must be within 0%%..100%% (got %s)", c.ColorBrightness))
	}
	if c.ColorAlpha < 0 || c.ColorAlpha > 1 {
		errs = append(errs, fmt.Errorf("colorAlpha must be within 0..1 (got %v)", c.ColorAlpha))
	}
	if c.HorizontalSpeed < 0 {
		errs = append(errs, fmt.Errorf("horizontalSpeed must not be negative (got %v)", c.HorizontalSpeed))
	}
	if c.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must not be negative (got %v)", c.Delay))
	}
	if c.Phase <= 0 {
		errs = append(errs, fmt.Errorf("phase must be positive (got %v)", c.Phase))
	}
	if c.RibbonCount < 0 {
		errs = append(errs, fmt.Errorf("ribbonCount must not be negative (got %d)", c.RibbonCount))
	}
	if c.StrokeSize < 0 {
		errs = append(errs, fmt.Errorf("strokeSize must not be negative (got %v)", c.StrokeSize))
	}
	if c.RibbonBlur < 0 {
		errs = append(errs, fmt.Errorf("ribbonBlur must not be negative (got %v)", c.RibbonBlur))
	}
	return errors.Join(errs...)
}

// LoadConfig decodes a JSON options object over base. Keys are the camelCase
// option names (colorSaturation, ribbonCount, ...); unknown keys are rejected.
func LoadConfig(r io.Reader, base Config) (Config, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	cfg := base
	if err := dec.Decode(&cfg); err != nil {
		return base, fmt.Errorf("decode ribbon options: %w", err)
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// VerticalPosition selects where new ribbons start on the Y axis.
type VerticalPosition int

const (
	VerticalCenter VerticalPosition = iota
	VerticalTop
	VerticalBottom
	VerticalRandom
)

func ParseVerticalPosition(s string) (VerticalPosition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "middle", "center":
		return VerticalCenter, nil
	case "top", "min":
		return VerticalTop, nil
	case "bottom", "max":
		return VerticalBottom, nil
	case "random":
		return VerticalRandom, nil
	}
	return VerticalCenter, fmt.Errorf("unknown vertical position %q (want top, center, bottom or random)", s)
}

func (v VerticalPosition) String() string {
	switch v {
	case VerticalTop:
		return "top"
	case VerticalBottom:
		return "bottom"
	case VerticalRandom:
		return "random"
	default:
		return "center"
	}
}

func (v VerticalPosition) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *VerticalPosition) UnmarshalText(text []byte) error {
	parsed, err := ParseVerticalPosition(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

type ColorKind int

const (
	// ColorRandom picks a random hue per ribbon.
	ColorRandom ColorKind = iota
	// ColorFixed starts every ribbon at the same hue.
	ColorFixed
	// ColorTricolor cycles white, blue and red across successive ribbons.
	ColorTricolor
)

// legacyTricolor is the hue value older configurations used to request
// tricolor mode.
const legacyTricolor = 667

// ColorMode is the singleColor option.
type ColorMode struct {
	Kind ColorKind
	Hue  float64
}

func ParseColorMode(s string) (ColorMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "off", "false", "random":
		return ColorMode{Kind: ColorRandom}, nil
	case "tricolor":
		return ColorMode{Kind: ColorTricolor}, nil
	}
	hue, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ColorMode{}, fmt.Errorf("singleColor must be off, tricolor or a hue (got %q)", s)
	}
	return hueMode(hue), nil
}

func hueMode(hue float64) ColorMode {
	if hue == legacyTricolor {
		return ColorMode{Kind: ColorTricolor}
	}
	if hue == 0 {
		// A zero hue is treated like singleColor: false.
		return ColorMode{Kind: ColorRandom}
	}
	return ColorMode{Kind: ColorFixed, Hue: hue}
}

func (m ColorMode) String() string {
	switch m.Kind {
	case ColorFixed:
		return strconv.FormatFloat(m.Hue, 'f', -1, 64)
	case ColorTricolor:
		return "tricolor"
	default:
		return "off"
	}
}

func (m ColorMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *ColorMode) UnmarshalText(text []byte) error {
	parsed, err := ParseColorMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalJSON accepts false, a hue number or a string.
func (m *ColorMode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "false", "null":
		*m = ColorMode{Kind: ColorRandom}
		return nil
	case "true":
		return errors.New("singleColor: true is not a hue")
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return m.UnmarshalText([]byte(s))
	}
	var hue float64
	if err := json.Unmarshal(data, &hue); err != nil {
		return fmt.Errorf("singleColor: %w", err)
	}
	*m = hueMode(hue)
	return nil
}

// Percent is a fraction in [0,1] written as "80%" in text form.
type Percent float64

func ParsePercent(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid percentage %q: %w", s, err)
		}
		return Percent(v / 100), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid percentage %q: %w", s, err)
	}
	return Percent(v), nil
}

func (p Percent) String() string {
	v := math.Round(float64(p)*100*1e4) / 1e4
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func (p Percent) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Percent) UnmarshalText(text []byte) error {
	parsed, err := ParsePercent(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return p.UnmarshalText([]byte(s))
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Percent(v)
	return nil
}
