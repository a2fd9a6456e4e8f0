package render

import "image/color"

// Global render configuration for colors and logical canvas.
var (
	// Foreground is used for captions drawn over the ribbons.
	Foreground = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Background = color.RGBA{R: 0x0B, G: 0x0B, B: 0x12, A: 0xFF}

	// Default logical canvas size; scaled to the framebuffer.
	CanvasWidth  = 1280
	CanvasHeight = 720
)

const (
	DefaultFPS = 60

	// Canvas pixels covered by one terminal cell. Each cell shows two
	// vertically stacked colors using a half block glyph.
	CellWidth  = 8
	CellHeight = 16
)
