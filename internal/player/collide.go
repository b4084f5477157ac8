package player

import (
	"sector-renderer/internal/geom"
	"sector-renderer/internal/level"
	"sector-renderer/internal/mathutil"
)

// collideAndSlide pushes pos out of every solid linedef of the current
// sector it penetrates, one line at a time in table order. Pushes are not
// solved jointly, so in tight corners a later push can undo part of an
// earlier one.
func (p *Player) collideAndSlide(m *level.Map, oldPos, pos mathutil.Vec2) mathutil.Vec2 {
	r := p.Radius
	for i := 0; i < m.NumLines(); i++ {
		if !m.Line(i).Touches(p.Sector) || !p.Solid(m, i) {
			continue
		}

		a, b := m.LineSegment(i)
		cp := geom.ClosestPointOnSegment(pos, a, b)
		d := pos.Sub(cp)
		dist2 := d.Len2()
		if dist2 >= r*r {
			continue
		}

		var n mathutil.Vec2
		if dist := d.Len(); dist > geom.Eps {
			n = d.Scale(1 / dist)
		} else {
			n = pushNormal(oldPos, a, b)
		}
		pos = cp.Add(n.Scale(r))
	}
	return pos
}

// pushNormal is the fallback direction for a position lying exactly on the
// segment: the segment's perpendicular, on the side the player came from.
func pushNormal(from, a, b mathutil.Vec2) mathutil.Vec2 {
	n := b.Sub(a).Normalize().PerpLeft()
	if n == (mathutil.Vec2{}) {
		// zero-length wall; any unit direction will do
		return mathutil.V2(1, 0)
	}
	if geom.SignedDistanceToSegment(from, a, b) < 0 {
		n = n.Scale(-1)
	}
	return n
}

// updateSector moves the player into the sector across the first touching
// portal that the motion from→to crosses and that the player fits through.
func (p *Player) updateSector(m *level.Map, from, to mathutil.Vec2) {
	for i := 0; i < m.NumLines(); i++ {
		l := m.Line(i)
		if !l.TwoSided() || !l.Touches(p.Sector) {
			continue
		}

		a, b := m.LineSegment(i)
		if !geom.SegmentsIntersect(from, to, a, b) {
			continue
		}
		// Ending exactly on the portal line is not a crossing yet.
		if side := farSide(m, i, p.Sector); side != 0 && side*geom.SignedDistanceToSegment(to, a, b) <= 0 {
			continue
		}

		if m.PortalPassable(i, p.Height) {
			p.Sector = l.Other(p.Sector)
			return
		}
	}
}

// farSide is the sign SignedDistanceToSegment takes beyond line i as seen
// from sector s, judged by the centroid of the sector loop. Zero when the
// loop is empty or the centroid lies on the line.
func farSide(m *level.Map, i, s int) float64 {
	n := len(m.Sector(s).Loop)
	if n == 0 {
		return 0
	}
	var c mathutil.Vec2
	for k := 0; k < n; k++ {
		c = c.Add(m.LoopVertex(s, k))
	}
	c = c.Scale(1 / float64(n))

	a, b := m.LineSegment(i)
	switch d := geom.SignedDistanceToSegment(c, a, b); {
	case d > geom.Eps:
		return -1
	case d < -geom.Eps:
		return 1
	}
	return 0
}
