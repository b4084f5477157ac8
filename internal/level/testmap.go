package level

import "sector-renderer/internal/mathutil"

// BuildTestMap returns the two-room test level: sector 0 is the square
// (0,0)-(4,4), sector 1 the square (4,0)-(8,4) with a half-unit step up,
// joined by portal linedef 1 along x=4.
func BuildTestMap() (*Map, error) {
	verts := []Vertex{
		mathutil.V2(0, 0),
		mathutil.V2(4, 0),
		mathutil.V2(4, 4),
		mathutil.V2(0, 4),
		mathutil.V2(8, 0),
		mathutil.V2(8, 4),
	}

	sectors := []Sector{
		{FloorH: 0, CeilH: 3, Light: 1.0, Loop: []int{0, 1, 2, 3}},
		{FloorH: 0.5, CeilH: 3, Light: 0.8, Loop: []int{1, 4, 5, 2}},
	}

	lines := []Linedef{
		{V0: 0, V1: 1, Front: 0, Back: NoSector},
		{V0: 1, V1: 2, Front: 0, Back: 1}, // portal
		{V0: 2, V1: 3, Front: 0, Back: NoSector},
		{V0: 3, V1: 0, Front: 0, Back: NoSector},

		{V0: 1, V1: 4, Front: 1, Back: NoSector},
		{V0: 4, V1: 5, Front: 1, Back: NoSector},
		{V0: 5, V1: 2, Front: 1, Back: NoSector},
	}

	return New(verts, lines, sectors)
}
