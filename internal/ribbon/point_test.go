package ribbon

import (
	"math"
	"testing"
)

func TestPointIdentityOperations(t *testing.T) {
	points := []Point{{0, 0}, {1.5, -2}, {-400, 1200}, {math.MaxFloat32, -math.SmallestNonzeroFloat64}}
	for _, start := range points {
		p := start
		if got := *p.Add(0, 0); got != start {
			t.Errorf("Add(0,0) on %v = %v", start, got)
		}
		if got := *p.Subtract(0, 0); got != start {
			t.Errorf("Subtract(0,0) on %v = %v", start, got)
		}
		if got := *p.Multiply(0, 0); got != start {
			t.Errorf("Multiply(0,0) on %v = %v", start, got)
		}
		if got := *p.Divide(0, 0); got != start {
			t.Errorf("Divide(0,0) on %v = %v", start, got)
		}
		if got := p.FlipX().FlipX().X; got != start.X {
			t.Errorf("FlipX twice on %v = %v", start, got)
		}
		if got := p.FlipY().FlipY().Y; got != start.Y {
			t.Errorf("FlipY twice on %v = %v", start, got)
		}
	}
}

func TestPointPartialAxis(t *testing.T) {
	p := NewPoint(10, 20)
	p.Add(5, 0)
	if p.X != 15 || p.Y != 20 {
		t.Fatalf("Add(5,0) = %v", *p)
	}
	p.Multiply(2, 0)
	if p.X != 30 || p.Y != 20 {
		t.Fatalf("Multiply(2,0) = %v", *p)
	}
	p.Divide(0, 4)
	if p.X != 30 || p.Y != 5 {
		t.Fatalf("Divide(0,4) = %v", *p)
	}
}

func TestPointChaining(t *testing.T) {
	var p Point
	p.Set(1, 2).Add(3, 4).Multiply(2, 3).Subtract(1, 1).FlipY()
	if p.X != 7 || p.Y != -17 {
		t.Fatalf("chained result = %v, want {7 -17}", p)
	}

	var q Point
	q.Copy(p).Add(1, 1)
	if q.X != 8 || q.Y != -16 {
		t.Fatalf("copy then add = %v", q)
	}
	if p.X != 7 || p.Y != -17 {
		t.Fatalf("source changed after copy: %v", p)
	}
}

func TestPointClamp(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		min, max float64
		want     float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -50, 0, 10, 0},
		{"above", 50, 0, 10, 10},
		{"on lower bound", 0, 0, 10, 0},
		{"on upper bound", 10, 0, 10, 10},
		{"negative range", 3, -8, -2, -2},
		{"infinite input", math.Inf(1), -1, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Point{X: tt.x, Y: tt.x}
			p.ClampX(tt.min, tt.max).ClampY(tt.min, tt.max)
			if p.X != tt.want || p.Y != tt.want {
				t.Fatalf("clamp(%v, %v, %v) = %v, want %v", tt.x, tt.min, tt.max, p, tt.want)
			}
			if p.X < tt.min || p.X > tt.max {
				t.Fatalf("clamped x %v outside [%v, %v]", p.X, tt.min, tt.max)
			}
		})
	}
}
