package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	hudText     = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	hudBackdrop = color.NRGBA{A: 160}
)

const hudPad = 3

// DrawHUD writes lines of text in the top-left corner over a translucent
// backdrop.
func DrawHUD(img draw.Image, lines ...string) {
	if len(lines) == 0 {
		return
	}
	face := basicfont.Face7x13
	lineH := face.Metrics().Height.Ceil()

	width := 0
	for _, l := range lines {
		if adv := font.MeasureString(face, l).Ceil(); adv > width {
			width = adv
		}
	}

	b := img.Bounds()
	box := image.Rect(0, 0, width+2*hudPad, len(lines)*lineH+2*hudPad).Add(b.Min)
	draw.Draw(img, box.Intersect(b), image.NewUniform(hudBackdrop), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(hudText),
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(b.Min.X+hudPad, b.Min.Y+hudPad+face.Ascent+i*lineH)
		d.DrawString(l)
	}
}
