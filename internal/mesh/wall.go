package mesh

import "sector-renderer/internal/level"

// SpanEpsilon is the minimum height of a step or lintel quad.
const SpanEpsilon = 1e-4

// WallMesh holds the wall quads of every linedef.
type WallMesh struct {
	Buffer
}

// Build emits one quad per one-sided linedef spanning the front sector, and
// up to two quads per two-sided linedef: the step between the two floors
// and the lintel between the two ceilings. Previous geometry is always
// discarded.
func (wm *WallMesh) Build(m *level.Map) error {
	wm.Reset()
	if m == nil || m.NumLines() <= 0 {
		return ErrEmptyMap
	}

	// worst case is two quads per line
	wm.Verts = make([]Vertex, 0, m.NumLines()*2*6)

	for i := 0; i < m.NumLines(); i++ {
		l := m.Line(i)
		p0, p1 := m.LineSegment(i)
		seg := wallSegment{
			x0: float32(p0[0]), z0: float32(p0[1]),
			x1: float32(p1[0]), z1: float32(p1[1]),
			u0: 0, u1: float32(p0.Dist(p1)),
		}

		front := m.Sector(l.Front)
		light := float32(front.Light)

		if !l.TwoSided() {
			wm.addSegment(seg, front.FloorH, front.CeilH, WallColor, light)
			continue
		}

		back := m.Sector(l.Back)

		lowBot, lowTop := minmax(front.FloorH, back.FloorH)
		if lowTop-lowBot > SpanEpsilon {
			wm.addSegment(seg, lowBot, lowTop, StepColor, light)
		}

		upBot, upTop := minmax(front.CeilH, back.CeilH)
		if upTop-upBot > SpanEpsilon {
			wm.addSegment(seg, upBot, upTop, LintelColor, light)
		}
	}
	return nil
}

type wallSegment struct {
	x0, z0, x1, z1 float32
	u0, u1         float32
}

func (wm *WallMesh) addSegment(s wallSegment, bottom, top float64, color [3]float32, light float32) {
	y0, y1 := float32(bottom), float32(top)
	a := Vertex{Pos: [3]float32{s.x0, y0, s.z0}, Color: color, UV: [2]float32{s.u0, y0}, Light: light}
	b := Vertex{Pos: [3]float32{s.x1, y0, s.z1}, Color: color, UV: [2]float32{s.u1, y0}, Light: light}
	c := Vertex{Pos: [3]float32{s.x1, y1, s.z1}, Color: color, UV: [2]float32{s.u1, y1}, Light: light}
	d := Vertex{Pos: [3]float32{s.x0, y1, s.z0}, Color: color, UV: [2]float32{s.u0, y1}, Light: light}
	wm.pushQuad(a, b, c, d)
}

func minmax(a, b float64) (lo, hi float64) {
	if a < b {
		return a, b
	}
	return b, a
}
