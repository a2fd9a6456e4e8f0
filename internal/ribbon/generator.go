package ribbon

import (
	"math"
	"math/rand/v2"
)

const (
	// HideMargin keeps new ribbons fully offscreen at creation.
	HideMargin = 400
	// maxSteps bounds the random walk of a single ribbon.
	maxSteps = 1000
	// maxStartDelay is the upper bound of the per-ribbon delay jitter.
	maxStartDelay = 4
	// verticalReach is the largest vertical step as a fraction of the height.
	verticalReach = 0.35
)

// tricolorHue describes one entry of the tricolor cycle.
type tricolorHue struct {
	hue   float64
	white bool
}

var tricolorCycle = []tricolorHue{
	{hue: 0, white: true},
	{hue: 240},
	{hue: 360},
}

// Generator builds ribbons by a bounded random walk across the surface.
// It is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand

	// tricolorIndex selects the hue of the next ribbon in tricolor mode.
	tricolorIndex int
}

// NewGenerator returns a generator drawing from r. A nil r uses a clock
// seeded source.
func NewGenerator(r *rand.Rand) *Generator {
	if r == nil {
		r = NewRand()
	}
	return &Generator{rnd: r}
}

// Direction picks the travel direction of a new ribbon. Right is chosen when
// round(U(1,9)) > 5, which happens 3.5 times in 8.
func (g *Generator) Direction() Direction {
	if math.Round(RandomInRange(g.rnd, 1, 9)) > 5 {
		return Right
	}
	return Left
}

// Generate builds one ribbon for a surface of the given size.
func (g *Generator) Generate(width, height float64, cfg Config) Ribbon {
	dir := g.Direction()

	minX := -float64(HideMargin)
	maxX := width + HideMargin
	startX := maxX
	if dir == Right {
		startX = minX
	}
	startY := math.Round(RandomInRange(g.rnd, 0, height))

	switch cfg.VerticalPosition {
	case VerticalTop:
		startY = HideMargin
	case VerticalCenter:
		startY = height / 2
	case VerticalBottom:
		startY = height - HideMargin
	}

	color, white := g.startColor(cfg.SingleColor)

	var ribbon Ribbon
	point1 := Point{X: startX, Y: startY}
	point2 := point1
	delay := g.rnd.Float64() * maxStartDelay

	for step := 0; step < maxSteps; step++ {
		moveX := math.Round((g.rnd.Float64() - 0.2) * cfg.HorizontalSpeed)
		moveY := math.Round((g.rnd.Float64() - 0.5) * (height * verticalReach))

		point3 := point2
		if dir == Right {
			point3.Add(moveX, moveY)
			if point2.X >= maxX {
				break
			}
		} else {
			point3.Subtract(moveX, moveY)
			if point2.X <= minX {
				break
			}
		}

		ribbon = append(ribbon, &Section{
			P1:         point1,
			P2:         point2,
			P3:         point3,
			Color:      color,
			Monochrome: white,
			Delay:      delay,
			Dir:        dir,
		})

		point1.Copy(point2)
		point2.Copy(point3)

		delay += cfg.Delay
		color += cfg.ColorCycleSpeed
	}

	if cfg.SingleColor.Kind == ColorTricolor {
		g.tricolorIndex++
	}
	return ribbon
}

func (g *Generator) startColor(mode ColorMode) (hue float64, white bool) {
	switch mode.Kind {
	case ColorTricolor:
		if g.tricolorIndex >= len(tricolorCycle) {
			g.tricolorIndex = 0
		}
		entry := tricolorCycle[g.tricolorIndex]
		return entry.hue, entry.white
	case ColorFixed:
		return mode.Hue, false
	default:
		return math.Round(RandomInRange(g.rnd, 0, 360)), false
	}
}
