package ribbon

import "math"

// Point is a mutable 2D coordinate. All methods modify the receiver and
// return it so calls can be chained.
type Point struct {
	X, Y float64
}

func NewPoint(x, y float64) *Point { return &Point{X: x, Y: y} }

func (p *Point) Set(x, y float64) *Point {
	p.X = x
	p.Y = y
	return p
}

func (p *Point) Copy(other Point) *Point {
	p.X = other.X
	p.Y = other.Y
	return p
}

// Multiply scales each axis. A zero factor leaves that axis unchanged.
func (p *Point) Multiply(sx, sy float64) *Point {
	p.X *= orOne(sx)
	p.Y *= orOne(sy)
	return p
}

// Divide divides each axis. A zero divisor leaves that axis unchanged.
func (p *Point) Divide(sx, sy float64) *Point {
	p.X /= orOne(sx)
	p.Y /= orOne(sy)
	return p
}

func (p *Point) Add(dx, dy float64) *Point {
	p.X += dx
	p.Y += dy
	return p
}

func (p *Point) Subtract(dx, dy float64) *Point {
	p.X -= dx
	p.Y -= dy
	return p
}

func (p *Point) ClampX(min, max float64) *Point {
	p.X = math.Max(min, math.Min(p.X, max))
	return p
}

func (p *Point) ClampY(min, max float64) *Point {
	p.Y = math.Max(min, math.Min(p.Y, max))
	return p
}

func (p *Point) FlipX() *Point {
	p.X *= -1
	return p
}

func (p *Point) FlipY() *Point {
	p.Y *= -1
	return p
}

func orOne(v float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return 1
	}
	return v
}
