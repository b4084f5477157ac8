package raster

import (
	"math"

	"sector-renderer/internal/mesh"
)

// Pattern returns the procedural brightness factor for a surface at
// texture coordinate (u, v). Floors and steps get a unit checkerboard,
// walls and lintels a half-height brick course, ceilings stay flat.
func Pattern(surf mesh.Surface, u, v, dark float64) float64 {
	switch surf {
	case mesh.SurfaceFloor, mesh.SurfaceStep:
		if checker(u, v) {
			return dark
		}
	case mesh.SurfaceWall, mesh.SurfaceLintel:
		row := math.Floor(v * 2)
		if int64(row)&1 != 0 {
			u += 0.5
		}
		if checker(u, row) {
			return dark
		}
	}
	return 1
}

func checker(u, v float64) bool {
	return (int64(math.Floor(u))+int64(math.Floor(v)))&1 != 0
}
