package postprocess

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"sector-renderer/internal/level"
	"sector-renderer/internal/mathutil"
)

// Minimap colors and stroke width.
var (
	MinimapSolid  = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	MinimapPortal = color.NRGBA{R: 220, G: 60, B: 60, A: 255}
	MinimapPlayer = color.NRGBA{R: 255, G: 220, B: 0, A: 255}
)

const (
	minimapStroke = 1.5
	minimapPad    = 4
)

// DrawMinimap draws a top-down plan of m into r with the player as an arrow
// at pos facing yaw. World +y points down the screen, so yaw 0 points up.
func DrawMinimap(dst draw.Image, r image.Rectangle, m *level.Map, pos mathutil.Vec2, yaw float64) {
	if m == nil || m.NumVertices() == 0 || r.Dx() <= 2*minimapPad || r.Dy() <= 2*minimapPad {
		return
	}

	lo := m.Vertex(0)
	hi := lo
	for i := 1; i < m.NumVertices(); i++ {
		v := m.Vertex(i)
		lo = mathutil.V2(math.Min(lo[0], v[0]), math.Min(lo[1], v[1]))
		hi = mathutil.V2(math.Max(hi[0], v[0]), math.Max(hi[1], v[1]))
	}
	span := hi.Sub(lo)
	availX := float64(r.Dx() - 2*minimapPad)
	availY := float64(r.Dy() - 2*minimapPad)
	scale := math.Min(availX/math.Max(span[0], 1e-6), availY/math.Max(span[1], 1e-6))
	offX := minimapPad + (availX-span[0]*scale)/2
	offY := minimapPad + (availY-span[1]*scale)/2

	project := func(p mathutil.Vec2) mathutil.Vec2 {
		return mathutil.V2(offX+(p[0]-lo[0])*scale, offY+(p[1]-lo[1])*scale)
	}

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	for _, portal := range []bool{false, true} {
		z.Reset(r.Dx(), r.Dy())
		for i := 0; i < m.NumLines(); i++ {
			if m.Line(i).TwoSided() != portal {
				continue
			}
			a, b := m.LineSegment(i)
			stroke(z, project(a), project(b), minimapStroke)
		}
		c := MinimapSolid
		if portal {
			c = MinimapPortal
		}
		z.Draw(dst, r, image.NewUniform(c), image.Point{})
	}

	// Arrow: forward is (sin yaw, -cos yaw) in world and on screen.
	c := project(pos)
	f := mathutil.V2(math.Sin(yaw), -math.Cos(yaw))
	side := f.PerpLeft()
	tip := c.Add(f.Scale(5))
	left := c.Sub(f.Scale(3)).Add(side.Scale(3))
	right := c.Sub(f.Scale(3)).Sub(side.Scale(3))

	z.Reset(r.Dx(), r.Dy())
	z.MoveTo(float32(tip[0]), float32(tip[1]))
	z.LineTo(float32(left[0]), float32(left[1]))
	z.LineTo(float32(right[0]), float32(right[1]))
	z.ClosePath()
	z.Draw(dst, r, image.NewUniform(MinimapPlayer), image.Point{})
}

// stroke adds a w-wide quad from a to b to the rasterizer path.
func stroke(z *vector.Rasterizer, a, b mathutil.Vec2, w float64) {
	d := b.Sub(a).Normalize()
	if d == (mathutil.Vec2{}) {
		return
	}
	n := d.PerpLeft().Scale(w / 2)
	p0, p1 := a.Add(n), b.Add(n)
	p2, p3 := b.Sub(n), a.Sub(n)
	z.MoveTo(float32(p0[0]), float32(p0[1]))
	z.LineTo(float32(p1[0]), float32(p1[1]))
	z.LineTo(float32(p2[0]), float32(p2[1]))
	z.LineTo(float32(p3[0]), float32(p3[1]))
	z.ClosePath()
}
