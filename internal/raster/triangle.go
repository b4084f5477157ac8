package raster

import (
	"math"

	"github.com/aquilax/go-perlin"

	"sector-renderer/internal/mesh"
)

// screenVertex is a projected vertex. Attributes are premultiplied by 1/w
// so they interpolate linearly in screen space.
type screenVertex struct {
	x, y    float64
	invW    float64
	r, g, b float64
	u, v    float64
}

// toScreen performs the perspective divide and viewport transform. Pixel
// centers sit at half-integer coordinates; y grows downward.
func toScreen(c clipVertex, w, h int) screenVertex {
	iw := 1 / c.w
	return screenVertex{
		x:    (c.x*iw*0.5 + 0.5) * float64(w),
		y:    (0.5 - c.y*iw*0.5) * float64(h),
		invW: iw,
		r:    c.r * iw,
		g:    c.g * iw,
		b:    c.b * iw,
		u:    c.u * iw,
		v:    c.v * iw,
	}
}

// rasterizeTriangle fills one projected triangle with z-buffering and
// perspective-correct attributes. Both windings are drawn.
//
// This is the hot path; nothing allocates in the pixel loop.
func rasterizeTriangle(fb *FrameBuffer, v0, v1, v2 screenVertex, surf mesh.Surface, sh *Shading, noise *perlin.Perlin) {
	x0, y0 := v0.x, v0.y
	x1, y1 := v1.x, v1.y
	x2, y2 := v2.x, v2.y

	// Bounding box over pixel centers
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2) - 0.5))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2) - 0.5))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2) - 0.5))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2) - 0.5))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-12 && det < 1e-12 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -1e-9 || w1 < -1e-9 || w2 < -1e-9 {
				continue
			}

			iw := w0*v0.invW + w1*v1.invW + w2*v2.invW
			zIdx := rowOff + sx
			if iw <= fb.ZBuf[zIdx] {
				continue
			}
			fb.ZBuf[zIdx] = iw

			depth := 1 / iw
			r := (w0*v0.r + w1*v1.r + w2*v2.r) * depth
			g := (w0*v0.g + w1*v1.g + w2*v2.g) * depth
			b := (w0*v0.b + w1*v1.b + w2*v2.b) * depth
			u := (w0*v0.u + w1*v1.u + w2*v2.u) * depth
			v := (w0*v0.v + w1*v1.v + w2*v2.v) * depth

			p := sh.grain(noise, Pattern(surf, u, v, sh.Checker), u, v)
			cr, cg, cb := sh.shade(r, g, b, p, depth, fb.Clear)

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = cr
			fb.Color[pxIdx+1] = cg
			fb.Color[pxIdx+2] = cb
			fb.Color[pxIdx+3] = 255
		}
	}
}
