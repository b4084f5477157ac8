// Package geom holds the 2D segment queries used by collision and portal
// crossing. All functions are pure.
package geom

import (
	"math"

	"sector-renderer/internal/mathutil"
)

// Eps is the tolerance below which lengths, squared lengths and cross
// products are treated as zero.
const Eps = 1e-6

// ClosestPointOnSegment projects p onto [a,b], clamped to the segment.
// A degenerate segment (|b-a|² <= Eps) yields a.
func ClosestPointOnSegment(p, a, b mathutil.Vec2) mathutil.Vec2 {
	ab := b.Sub(a)
	ab2 := ab.Dot(ab)
	if ab2 <= Eps {
		return a
	}

	t := p.Sub(a).Dot(ab) / ab2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return a.Add(ab.Scale(t))
}

// SignedDistanceToSegment returns the perpendicular distance from p to the
// line through a and b, positive when p lies left of a→b. Zero for a
// degenerate segment.
func SignedDistanceToSegment(p, a, b mathutil.Vec2) float64 {
	ab := b.Sub(a)
	l := ab.Len()
	if l <= Eps {
		return 0
	}
	return ab.Cross(p.Sub(a)) / l
}

// SegmentsIntersect reports whether [p0,p1] and [q0,q1] intersect, endpoints
// included. Parallel and collinear pairs never intersect, even when they
// overlap.
func SegmentsIntersect(p0, p1, q0, q1 mathutil.Vec2) bool {
	r := p1.Sub(p0)
	s := q1.Sub(q0)
	rxs := r.Cross(s)
	if math.Abs(rxs) <= Eps {
		return false
	}

	qp := q0.Sub(p0)
	t := qp.Cross(s) / rxs
	u := qp.Cross(r) / rxs
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// DistanceToSegment is the unsigned distance from p to the closest point of [a,b].
func DistanceToSegment(p, a, b mathutil.Vec2) float64 {
	return p.Dist(ClosestPointOnSegment(p, a, b))
}
