package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"

	"github.com/rook-computer/ribbons/internal/ribbon"
)

// Canvas is a software drawing context over an RGBA image. Paths, fills,
// strokes and the transform stack go through a gg context; shadowed
// shapes are painted by a shadowLayer and composited on top.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	// Background is painted by ClearRect. Nil clears to transparent.
	Background color.Color

	img   *image.RGBA
	dc    *gg.Context
	alpha float64
	state shadowState
	stack []shadowState
	// paths mirrors the gg path in device coordinates.
	paths []subpath
}

type subpath struct {
	pts    []gg.Point
	closed bool
}

type shadowState struct {
	blur  float64
	color ribbon.HSLA
}

func NewCanvas(width, height int) *Canvas {
	c := &Canvas{alpha: 1}
	c.reset(width, height)
	return c
}

func (c *Canvas) reset(width, height int) {
	c.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	c.dc = gg.NewContextForRGBA(c.img)
	c.dc.SetLineCapRound()
	c.dc.SetLineJoinRound()
	c.stack = c.stack[:0]
	c.paths = c.paths[:0]
}

func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (width, height int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the backing image when the size changes. The new image is
// cleared to the background and the transform is reset; global alpha and
// shadow settings are kept.
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if w, h := c.Size(); w == width && h == height {
		return
	}
	c.reset(width, height)
	c.ClearRect(0, 0, float64(width), float64(height))
}

func (c *Canvas) ClearRect(x, y, width, height float64) {
	x0, y0 := c.dc.TransformPoint(x, y)
	x1, y1 := c.dc.TransformPoint(x+width, y+height)
	r := image.Rect(
		coord(math.Floor(x0)), coord(math.Floor(y0)),
		coord(math.Ceil(x1)), coord(math.Ceil(y1)),
	).Intersect(c.img.Bounds())
	var bg color.Color = color.Transparent
	if c.Background != nil {
		bg = c.Background
	}
	draw.Draw(c.img, r, image.NewUniform(bg), image.Point{}, draw.Src)
}

func (c *Canvas) SetGlobalAlpha(alpha float64) { c.alpha = clamp01(alpha) }

func (c *Canvas) Save() {
	c.dc.Push()
	c.stack = append(c.stack, c.state)
}

// Restore pops the last saved state. Without a matching Save it does
// nothing.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.dc.Pop()
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

func (c *Canvas) Translate(dx, dy float64) { c.dc.Translate(dx, dy) }

func (c *Canvas) BeginPath() {
	c.dc.ClearPath()
	c.paths = c.paths[:0]
}

func (c *Canvas) MoveTo(x, y float64) {
	c.dc.MoveTo(x, y)
	c.paths = append(c.paths, subpath{pts: []gg.Point{c.device(x, y)}})
}

func (c *Canvas) LineTo(x, y float64) {
	if len(c.paths) == 0 {
		c.MoveTo(x, y)
		return
	}
	c.dc.LineTo(x, y)
	last := len(c.paths) - 1
	c.paths[last].pts = append(c.paths[last].pts, c.device(x, y))
}

func (c *Canvas) ClosePath() {
	c.dc.ClosePath()
	if len(c.paths) > 0 {
		c.paths[len(c.paths)-1].closed = true
	}
}

func (c *Canvas) SetShadow(blur float64, col ribbon.HSLA) {
	c.state = shadowState{blur: max(0, blur), color: col}
}

// Fill paints the interior of the current path. Paths without a subpath of
// at least three points have no interior and are skipped.
func (c *Canvas) Fill(col ribbon.HSLA) {
	if !c.hasArea() {
		return
	}
	c.paint(col, 0)
}

func (c *Canvas) Stroke(width float64, col ribbon.HSLA) {
	if width <= 0 || len(c.paths) == 0 {
		return
	}
	c.paint(col, width)
}

// paint fills the path, or strokes it when width is positive. The path is
// kept so a stroke can follow a fill.
func (c *Canvas) paint(col ribbon.HSLA, width float64) {
	fill := toNRGBA(col, c.alpha)
	if fill.A == 0 {
		return
	}
	if c.state.blur > 0 && c.state.color.A > 0 {
		shadow := toNRGBA(c.state.color, c.alpha)
		layer := shadowLayer{blur: c.state.blur, shadow: shadow, fill: fill, width: width}
		layer.drawOnto(c.img, c.paths)
		return
	}
	c.dc.SetColor(fill)
	if width > 0 {
		c.dc.SetLineWidth(width)
		c.dc.StrokePreserve()
		return
	}
	c.dc.FillPreserve()
}

func (c *Canvas) device(x, y float64) gg.Point {
	dx, dy := c.dc.TransformPoint(x, y)
	return gg.Point{X: dx, Y: dy}
}

func (c *Canvas) hasArea() bool {
	for _, sp := range c.paths {
		if len(sp.pts) >= 3 {
			return true
		}
	}
	return false
}

const maxCoord = 1 << 24

func coord(v float64) int {
	return int(math.Max(-maxCoord, math.Min(maxCoord, v)))
}
