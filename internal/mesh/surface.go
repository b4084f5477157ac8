package mesh

// Surface identifies which procedural pattern a vertex color selects.
type Surface int

const (
	SurfaceUnknown Surface = iota
	SurfaceFloor
	SurfaceCeiling
	SurfaceWall
	SurfaceStep
	SurfaceLintel
)

var (
	FloorColor   = [3]float32{0.2, 0.8, 0.2}
	CeilingColor = [3]float32{0.2, 0.2, 0.8}
	WallColor    = [3]float32{0.8, 0.8, 0.8}
	StepColor    = [3]float32{0.7, 0.5, 0.2}
	LintelColor  = [3]float32{0.2, 0.6, 0.8}
)

func (s Surface) String() string {
	switch s {
	case SurfaceFloor:
		return "floor"
	case SurfaceCeiling:
		return "ceiling"
	case SurfaceWall:
		return "wall"
	case SurfaceStep:
		return "step"
	case SurfaceLintel:
		return "lintel"
	default:
		return "unknown"
	}
}

// SurfaceOf maps a vertex color back to its surface.
func SurfaceOf(c [3]float32) Surface {
	switch c {
	case FloorColor:
		return SurfaceFloor
	case CeilingColor:
		return SurfaceCeiling
	case WallColor:
		return SurfaceWall
	case StepColor:
		return SurfaceStep
	case LintelColor:
		return SurfaceLintel
	}
	return SurfaceUnknown
}
