package raster

import (
	"image"
	"math"
)

// Background is the default clear color.
var Background = [3]uint8{13, 13, 20}

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // 1/w per pixel, len = W*H, cleared to -inf; greater is closer
	Clear  [3]uint8  // color of the last Reset, fog blends toward it
}

// NewFrameBuffer allocates a buffer cleared to Background.
func NewFrameBuffer(w, h int) *FrameBuffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	n := w * h
	fb := &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   make([]float64, n),
	}
	fb.Reset(Background)
	return fb
}

// Reset fills the color buffer with rgb at full alpha and clears depth.
func (fb *FrameBuffer) Reset(rgb [3]uint8) {
	fb.Clear = rgb
	for i := 0; i < len(fb.Color); i += 4 {
		fb.Color[i] = rgb[0]
		fb.Color[i+1] = rgb[1]
		fb.Color[i+2] = rgb[2]
		fb.Color[i+3] = 255
	}
	neg := math.Inf(-1)
	for i := range fb.ZBuf {
		fb.ZBuf[i] = neg
	}
}

// At returns the RGBA of pixel (x, y).
func (fb *FrameBuffer) At(x, y int) [4]uint8 {
	i := (y*fb.Width + x) * 4
	return [4]uint8{fb.Color[i], fb.Color[i+1], fb.Color[i+2], fb.Color[i+3]}
}

// Image copies the color buffer into a new NRGBA image.
func (fb *FrameBuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
