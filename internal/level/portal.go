package level

// BoundaryKind tags how a linedef behaves for an actor on one side of it.
type BoundaryKind int

const (
	Solid BoundaryKind = iota
	Portal
)

func (k BoundaryKind) String() string {
	switch k {
	case Solid:
		return "solid"
	case Portal:
		return "portal"
	default:
		return "unknown"
	}
}

// Boundary is the classification of a linedef seen from a sector: either a
// solid wall or a portal into Other. Passability of a portal is not part of
// it; it depends on the actor and is computed with Passable.
type Boundary struct {
	Kind  BoundaryKind
	Other int
}

// Boundary classifies line i as seen from sector from.
func (m *Map) Boundary(i, from int) Boundary {
	l := m.lines[i]
	if !l.TwoSided() {
		return Boundary{Kind: Solid, Other: NoSector}
	}
	return Boundary{Kind: Portal, Other: l.Other(from)}
}

// Clearance is the vertical gap at the seam between two sectors:
// min(ceilings) - max(floors).
func Clearance(a, b Sector) float64 {
	floor := a.FloorH
	if b.FloorH > floor {
		floor = b.FloorH
	}
	ceil := a.CeilH
	if b.CeilH < ceil {
		ceil = b.CeilH
	}
	return ceil - floor
}

// Passable reports whether an actor of the given height fits through the
// seam between a and b. Symmetric in a and b.
func Passable(a, b Sector, height float64) bool {
	return Clearance(a, b) >= height
}

// PortalPassable applies Passable to the two sectors of line i. One-sided
// lines are never passable.
func (m *Map) PortalPassable(i int, height float64) bool {
	l := m.lines[i]
	if !l.TwoSided() {
		return false
	}
	return Passable(m.sectors[l.Front], m.sectors[l.Back], height)
}
