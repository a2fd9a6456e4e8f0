package ribbon

import "math"

// Direction is the horizontal travel direction of a ribbon.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "right"
	}
	return "left"
}

// delayStep is subtracted from a section's delay on every frame until the
// section starts to fade in.
const delayStep = 0.5

// Section is one triangle of a ribbon. P1 and P2 are the trailing edge of the
// previous section, P3 is the new vertex.
type Section struct {
	P1, P2, P3 Point

	Color float64
	// Monochrome sections are painted white regardless of Color.
	Monochrome bool

	Delay float64
	Phase float64
	Alpha float64
	Dir   Direction
}

// Ribbon is a chain of sections in generation order, which is also the draw
// order.
type Ribbon []*Section

// Done reports whether the section has faded in and out completely.
func (s *Section) Done() bool {
	return s.Phase >= 1 && s.Alpha <= 0
}

// Advance moves the section forward by one frame and reports whether it was
// already done on entry. A section that becomes invisible during this call
// is reported done on the next one.
func (s *Section) Advance(cfg Config) bool {
	if s.Done() {
		return true
	}
	if s.Delay > 0 {
		s.Delay -= delayStep
		return false
	}

	s.Phase += cfg.Phase
	s.Alpha = math.Max(0, math.Min(math.Sin(s.Phase), 1))

	if cfg.AnimateSections {
		mod := math.Sin(1+s.Phase*math.Pi/2) * 0.1
		dx := mod
		if s.Dir == Left {
			dx = -mod
		}
		for _, p := range s.points() {
			p.Add(dx, mod)
		}
	}
	return false
}

func (s *Section) points() [3]*Point {
	return [3]*Point{&s.P1, &s.P2, &s.P3}
}

// Fill returns the color the section is painted with this frame.
func (s *Section) Fill(cfg Config) HSLA {
	if s.Monochrome {
		return HSLA{H: s.Color, S: 0, L: 1, A: s.Alpha}
	}
	return HSLA{H: s.Color, S: float64(cfg.ColorSaturation), L: float64(cfg.ColorBrightness), A: s.Alpha}
}

// Draw paints the section onto ctx, shifted vertically by the parallax
// offset.
func (s *Section) Draw(ctx Context, cfg Config, scrollY float64) {
	c := s.Fill(cfg)

	ctx.Save()
	defer ctx.Restore()

	if cfg.ParallaxAmount != 0 {
		ctx.Translate(0, scrollY*cfg.ParallaxAmount)
	}

	ctx.BeginPath()
	ctx.MoveTo(s.P1.X, s.P1.Y)
	ctx.LineTo(s.P2.X, s.P2.Y)
	ctx.LineTo(s.P3.X, s.P3.Y)
	ctx.ClosePath()

	ctx.SetShadow(cfg.RibbonBlur, c)
	ctx.Fill(c)

	if cfg.StrokeSize > 0 {
		ctx.Stroke(cfg.StrokeSize, c)
	}
}
