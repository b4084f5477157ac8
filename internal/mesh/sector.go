package mesh

import "sector-renderer/internal/level"

// SectorMesh holds the floor and ceiling triangles of every sector.
type SectorMesh struct {
	Buffer
}

// Build fan-triangulates every sector loop from its first vertex, once at
// the floor and once, with reversed winding, at the ceiling. Loops shorter
// than three vertices are skipped. Previous geometry is always discarded.
// Non-convex loops produce overlapping triangles; convexity is not checked.
func (sm *SectorMesh) Build(m *level.Map) error {
	sm.Reset()
	if m == nil || m.NumSectors() <= 0 {
		return ErrEmptyMap
	}

	total := 0
	for s := 0; s < m.NumSectors(); s++ {
		if n := len(m.Sector(s).Loop); n >= 3 {
			total += (n - 2) * 2 * 3
		}
	}
	sm.Verts = make([]Vertex, 0, total)

	for s := 0; s < m.NumSectors(); s++ {
		sec := m.Sector(s)
		n := len(sec.Loop)
		if n < 3 {
			continue
		}

		light := float32(sec.Light)
		floor := float32(sec.FloorH)
		ceil := float32(sec.CeilH)
		p0 := m.LoopVertex(s, 0)

		for i := 1; i < n-1; i++ {
			p1 := m.LoopVertex(s, i)
			p2 := m.LoopVertex(s, i+1)

			f0 := planeVertex(p0, floor, FloorColor, light)
			f1 := planeVertex(p1, floor, FloorColor, light)
			f2 := planeVertex(p2, floor, FloorColor, light)

			c0 := planeVertex(p0, ceil, CeilingColor, light)
			c1 := planeVertex(p1, ceil, CeilingColor, light)
			c2 := planeVertex(p2, ceil, CeilingColor, light)

			sm.pushTri(f0, f1, f2)
			sm.pushTri(c2, c1, c0)
		}
	}
	return nil
}

func planeVertex(p level.Vertex, h float32, color [3]float32, light float32) Vertex {
	x, z := float32(p[0]), float32(p[1])
	return Vertex{
		Pos:   [3]float32{x, h, z},
		Color: color,
		UV:    [2]float32{x, z},
		Light: light,
	}
}
