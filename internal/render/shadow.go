package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
)

// shadowLayer paints a shape together with its blurred shadow on an
// offscreen HTML5-style canvas sized to the shape, then composites the
// result over the destination.
type shadowLayer struct {
	blur   float64
	shadow color.NRGBA
	fill   color.NRGBA
	// width strokes the path instead of filling it when positive.
	width float64
}

// margin is how far the shadow may reach past the shape's bounds.
func (l shadowLayer) margin() int {
	return int(math.Ceil(l.blur*2+l.width/2)) + 1
}

func (l shadowLayer) drawOnto(dst *image.RGBA, paths []subpath) {
	box := pathBounds(paths)
	if box.Empty() {
		return
	}
	m := l.margin()
	region := box.Inset(-m).Intersect(dst.Bounds().Inset(-m))
	if region.Empty() {
		return
	}

	backend := softwarebackend.New(region.Dx(), region.Dy())
	cv := canvas.New(backend)
	cv.Translate(-float64(region.Min.X), -float64(region.Min.Y))
	cv.SetShadowColor(l.shadow)
	cv.SetShadowBlur(l.blur)

	cv.BeginPath()
	for _, sp := range paths {
		if len(sp.pts) == 0 {
			continue
		}
		cv.MoveTo(sp.pts[0].X, sp.pts[0].Y)
		for _, p := range sp.pts[1:] {
			cv.LineTo(p.X, p.Y)
		}
		if sp.closed {
			cv.ClosePath()
		}
	}
	if l.width > 0 {
		cv.SetStrokeStyle(l.fill)
		cv.SetLineWidth(l.width)
		cv.Stroke()
	} else {
		cv.SetFillStyle(l.fill)
		cv.Fill()
	}

	draw.Draw(dst, region, backend.Image, image.Point{}, draw.Over)
}

func pathBounds(paths []subpath) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sp := range paths {
		for _, p := range sp.pts {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 0) || math.IsNaN(minX+minY+maxX+maxY) {
		return image.Rectangle{}
	}
	return image.Rect(
		coord(math.Floor(minX)), coord(math.Floor(minY)),
		coord(math.Ceil(maxX))+1, coord(math.Ceil(maxY))+1,
	)
}
