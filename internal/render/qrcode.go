package render

import (
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"
)

// qrBadge renders payload as a square QR code of sizePx pixels with dark
// modules on a Foreground-colored quiet zone, so it stays scannable on top
// of the ribbons. An empty payload yields (nil, nil).
func qrBadge(payload string, sizePx int) (image.Image, error) {
	if payload == "" || sizePx <= 0 {
		return nil, nil
	}

	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	code.ForegroundColor = color.RGBA{A: 0xFF}
	code.BackgroundColor = Foreground
	return code.Image(sizePx), nil
}
