package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/rook-computer/ribbons/internal/render/layout"
)

var captionFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

// Overlay draws a centered caption and a QR code badge in the bottom-right
// corner on top of each frame. The composed layer is cached per canvas size.
type Overlay struct {
	Caption     string
	CaptionSize float64 // points; 0 derives it from the canvas height
	QRPayload   string
	QRSize      int // pixels; 0 derives it from the canvas size
	Margin      int
	Color       color.Color

	Logger Logger

	layer *image.RGBA
}

func (o *Overlay) Empty() bool {
	return o == nil || (o.Caption == "" && o.QRPayload == "")
}

// Draw composites the overlay onto dst.
func (o *Overlay) Draw(dst *image.RGBA) {
	if o.Empty() {
		return
	}
	if o.layer == nil || o.layer.Bounds() != dst.Bounds() {
		layer, err := o.build(dst.Bounds())
		if err != nil {
			logErrorf(o.Logger, "overlay", "overlay incomplete: %v", err)
		}
		o.layer = layer
	}
	draw.Draw(dst, dst.Bounds(), o.layer, dst.Bounds().Min, draw.Over)
}

func (o *Overlay) build(bounds image.Rectangle) (*image.RGBA, error) {
	layer := image.NewRGBA(bounds)
	margin := o.Margin
	if margin <= 0 {
		margin = min(bounds.Dx(), bounds.Dy()) / 20
	}
	area := layout.Inset(bounds, margin)

	var errs []error
	if o.QRPayload != "" {
		if err := o.drawQRCode(layer, area); err != nil {
			errs = append(errs, fmt.Errorf("qr code: %w", err))
		}
	}
	if o.Caption != "" {
		if err := o.drawCaption(layer, area); err != nil {
			errs = append(errs, fmt.Errorf("caption: %w", err))
		}
	}
	return layer, errors.Join(errs...)
}

func (o *Overlay) drawQRCode(dst *image.RGBA, area image.Rectangle) error {
	size := o.QRSize
	if size <= 0 {
		size = min(area.Dx(), area.Dy()) / 4
	}
	size = min(size, layout.FitSquare(area).Dx())
	if size <= 0 {
		return nil
	}
	code, err := qrBadge(o.QRPayload, size)
	if err != nil || code == nil {
		return err
	}
	rect := layout.AnchorBottomRight(area, size, size)
	xdraw.NearestNeighbor.Scale(dst, rect, code, code.Bounds(), xdraw.Over, nil)
	return nil
}

func (o *Overlay) drawCaption(dst *image.RGBA, area image.Rectangle) error {
	ttf, err := captionFont()
	if err != nil {
		return err
	}
	size := o.CaptionSize
	if size <= 0 {
		size = max(8, float64(area.Dy())/12)
	}
	face := truetype.NewFace(ttf, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	defer face.Close()

	metrics := face.Metrics()
	width := font.MeasureString(face, o.Caption).Ceil()
	height := (metrics.Ascent + metrics.Descent).Ceil()
	box := layout.Center(area, width, height)
	baseline := box.Min.Y + metrics.Ascent.Ceil()

	fg := o.Color
	if fg == nil {
		fg = Foreground
	}
	offset := max(1, int(size/24))
	// Dark copy first so the caption stays readable over bright ribbons.
	if err := drawString(dst, ttf, size, o.Caption, box.Min.X+offset, baseline+offset, color.RGBA{A: 0xC0}); err != nil {
		return err
	}
	return drawString(dst, ttf, size, o.Caption, box.Min.X, baseline, fg)
}

func drawString(dst *image.RGBA, ttf *truetype.Font, size float64, text string, x, baseline int, fg color.Color) error {
	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(dst.Bounds())
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(fg))
	_, err := ctx.DrawString(text, freetype.Pt(x, baseline))
	return err
}
