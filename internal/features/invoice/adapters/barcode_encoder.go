package adapter

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// renderScale is the pixel density relative to the target size in points.
const renderScale = 3

// Code128Encoder draws CODE128 bars with the encoded text centered beneath.
type Code128Encoder struct {
	// Caption toggles the human-readable line under the bars.
	Caption bool
}

// NewCode128Encoder creates an encoder that prints the caption.
func NewCode128Encoder() *Code128Encoder {
	return &Code128Encoder{Caption: true}
}

// Encode renders text into a PNG of (width x height) * renderScale pixels.
func (e *Code128Encoder) Encode(text string, width, height float64) ([]byte, error) {
	if text == "" {
		return nil, errors.New("barcode text is empty")
	}

	w := int(math.Round(width * renderScale))
	h := int(math.Round(height * renderScale))
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("invalid barcode size %.1fx%.1f", width, height)
	}

	bc, err := code128.Encode(text)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %q as code128", text)
	}

	canvas := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)

	barsHeight := h
	if e.Caption {
		captionHeight := basicfont.Face7x13.Height * renderScale
		barsHeight = h - captionHeight - renderScale
		if barsHeight > 0 {
			drawCaption(canvas, text, barsHeight+renderScale)
		} else {
			barsHeight = h
		}
	}

	scaled, err := barcode.Scale(bc, w, barsHeight)
	if err != nil {
		return nil, errors.Wrap(err, "scale barcode")
	}
	draw.Draw(canvas, image.Rect(0, 0, w, barsHeight), scaled, scaled.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, errors.Wrap(err, "encode barcode png")
	}
	return buf.Bytes(), nil
}

// drawCaption renders text at 1x with the bitmap face and scales it up so
// the glyphs stay crisp.
func drawCaption(dst *image.Gray, text string, top int) {
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Ceil()
	if textWidth <= 0 {
		return
	}

	small := image.NewGray(image.Rect(0, 0, textWidth, face.Height))
	draw.Draw(small, small.Bounds(), image.White, image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(text)

	scaledWidth := textWidth * renderScale
	left := (dst.Bounds().Dx() - scaledWidth) / 2
	target := image.Rect(left, top, left+scaledWidth, top+face.Height*renderScale)
	xdraw.NearestNeighbor.Scale(dst, target, small, small.Bounds(), xdraw.Src, nil)
}
