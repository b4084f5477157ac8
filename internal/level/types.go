// Package level holds the sector/portal world map: vertices, linedefs and
// sectors in flat index-addressed tables. A Map is immutable after New; a
// different level means building a new Map.
package level

import "sector-renderer/internal/mathutil"

// NoSector is the back-sector sentinel of a one-sided linedef. Any negative
// value is treated the same way.
const NoSector = -1

// Vertex is a point on the ground plane.
type Vertex = mathutil.Vec2

// Linedef is a directed wall edge V0→V1. Front is always a valid sector;
// Back is negative for an exterior solid wall.
type Linedef struct {
	V0    int
	V1    int
	Front int
	Back  int
}

// TwoSided reports whether the linedef has a back sector (portal candidate).
func (l Linedef) TwoSided() bool {
	return l.Back >= 0
}

// Touches reports whether sector s is on either side of the linedef.
func (l Linedef) Touches(s int) bool {
	return l.Front == s || (l.Back >= 0 && l.Back == s)
}

// Other returns the sector across the linedef as seen from s, or NoSector.
func (l Linedef) Other(s int) int {
	switch {
	case l.Back < 0:
		return NoSector
	case l.Front == s:
		return l.Back
	case l.Back == s:
		return l.Front
	}
	return NoSector
}

// Sector is a convex floor/ceiling region. Loop lists the perimeter vertex
// indices in a single winding order; the mesh builder fan-triangulates it
// from Loop[0] and does not check convexity.
type Sector struct {
	FloorH float64
	CeilH  float64
	Light  float64 // brightness multiplier, nominally [0,1], not clamped
	Loop   []int
}

// Height is the floor-to-ceiling span of the sector.
func (s Sector) Height() float64 {
	return s.CeilH - s.FloorH
}
