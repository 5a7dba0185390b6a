package overlay

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Padding is the caption's distance from the bottom edge and the backing
// plate's margin around the text, both in pixels.
const Padding = 10

var plateColor = color.NRGBA{A: 128}

func NewCompositor(fonts *FontResolver) *Compositor {
	return &Compositor{fonts: fonts}
}

// Compositor draws a caption centered near the bottom of an image, over a
// semi-transparent backing plate sized to the measured text.
type Compositor struct {
	fonts *FontResolver
}

// Compose returns a new image of the same size as src with the caption
// drawn on. Captions wider than the image are not wrapped or clamped; the
// plate just runs past the edges and gets clipped by the draw.
func (c *Compositor) Compose(src image.Image, caption string) *image.NRGBA {
	face := c.fonts.Resolve()

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	box, _ := font.BoundString(face, caption)
	textWidth := (box.Max.X - box.Min.X).Ceil()
	textHeight := (box.Max.Y - box.Min.Y).Ceil()

	x := (b.Dx() - textWidth) / 2
	y := b.Dy() - textHeight - Padding

	plate := image.Rect(x-Padding, y-Padding, x+textWidth+Padding, y+textHeight+Padding)
	draw.Draw(dst, plate, image.NewUniform(plateColor), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		// Dot is a baseline origin; shift it so the glyph box's top-left
		// lands on (x, y).
		Dot: fixed.Point26_6{
			X: fixed.I(x) - box.Min.X,
			Y: fixed.I(y) - box.Min.Y,
		},
	}
	d.DrawString(caption)

	return dst
}
