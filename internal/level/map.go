package level

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"math"

	"sector-renderer/internal/mathutil"
)

var (
	// ErrAlloc is returned when a table of the requested size cannot be allocated.
	ErrAlloc = errors.New("level: table allocation failed")
	// ErrInvalid is wrapped by every Validate failure.
	ErrInvalid = errors.New("level: invalid map")
)

// maxTable bounds a single table so that a corrupt size fails cleanly
// instead of exhausting memory.
const maxTable = math.MaxInt32

// Map owns the vertex, linedef and sector tables of one level snapshot.
// It has no mutation API; it is safe for concurrent readers.
type Map struct {
	verts   []Vertex
	lines   []Linedef
	sectors []Sector
}

// New copies the three tables into a new Map. Geometric consistency is the
// caller's responsibility; see Validate for an opt-in check.
func New(verts []Vertex, lines []Linedef, sectors []Sector) (*Map, error) {
	m := &Map{}
	if err := m.alloc(len(verts), len(lines), len(sectors)); err != nil {
		return nil, err
	}
	copy(m.verts, verts)
	copy(m.lines, lines)
	for i, s := range sectors {
		s.Loop = append([]int(nil), s.Loop...)
		m.sectors[i] = s
	}
	return m, nil
}

func (m *Map) alloc(vcount, lcount, scount int) error {
	for _, n := range [...]int{vcount, lcount, scount} {
		if n < 0 || n > maxTable {
			return fmt.Errorf("%w: size %d", ErrAlloc, n)
		}
	}
	m.verts = make([]Vertex, vcount)
	m.lines = make([]Linedef, lcount)
	m.sectors = make([]Sector, scount)
	return nil
}

// Release drops all tables. Safe on a nil or already released map.
func (m *Map) Release() {
	if m == nil {
		return
	}
	m.verts = nil
	m.lines = nil
	m.sectors = nil
}

// Empty reports whether the map has no sectors and no linedefs.
func (m *Map) Empty() bool {
	return m == nil || (len(m.sectors) == 0 && len(m.lines) == 0)
}

func (m *Map) NumVertices() int { return len(m.verts) }
func (m *Map) NumLines() int    { return len(m.lines) }
func (m *Map) NumSectors() int  { return len(m.sectors) }

func (m *Map) Vertex(i int) Vertex { return m.verts[i] }
func (m *Map) Line(i int) Linedef  { return m.lines[i] }
func (m *Map) Sector(i int) Sector { return m.sectors[i] }

// LineSegment returns the endpoints of line i.
func (m *Map) LineSegment(i int) (a, b mathutil.Vec2) {
	l := m.lines[i]
	return m.verts[l.V0], m.verts[l.V1]
}

// LoopVertex returns the k-th perimeter vertex of sector s.
func (m *Map) LoopVertex(s, k int) Vertex {
	return m.verts[m.sectors[s].Loop[k]]
}

// Lines yields every linedef with its index, in table order.
func (m *Map) Lines() iter.Seq2[int, Linedef] {
	return func(yield func(int, Linedef) bool) {
		for i, l := range m.lines {
			if !yield(i, l) {
				return
			}
		}
	}
}

// LinesTouching returns the indices of linedefs with sector s on either
// side, in table order.
func (m *Map) LinesTouching(s int) []int {
	var out []int
	for i, l := range m.lines {
		if l.Touches(s) {
			out = append(out, i)
		}
	}
	return out
}

// Validate checks the index invariants of the tables. It is never called by
// New.
func (m *Map) Validate() error {
	nv, ns := len(m.verts), len(m.sectors)
	for i, l := range m.lines {
		if l.V0 < 0 || l.V0 >= nv || l.V1 < 0 || l.V1 >= nv {
			return fmt.Errorf("%w: line %d vertex out of range (%d, %d)", ErrInvalid, i, l.V0, l.V1)
		}
		if l.Front < 0 || l.Front >= ns {
			return fmt.Errorf("%w: line %d front sector %d out of range", ErrInvalid, i, l.Front)
		}
		if l.Back >= ns {
			return fmt.Errorf("%w: line %d back sector %d out of range", ErrInvalid, i, l.Back)
		}
		if l.Back == l.Front {
			return fmt.Errorf("%w: line %d front and back are both sector %d", ErrInvalid, i, l.Front)
		}
	}
	for i, s := range m.sectors {
		for _, vi := range s.Loop {
			if vi < 0 || vi >= nv {
				return fmt.Errorf("%w: sector %d loop vertex %d out of range", ErrInvalid, i, vi)
			}
		}
		if len(s.Loop) >= 3 && s.CeilH <= s.FloorH {
			return fmt.Errorf("%w: sector %d ceiling %.2f not above floor %.2f", ErrInvalid, i, s.CeilH, s.FloorH)
		}
	}
	return nil
}

// Describe writes a human-readable dump of the tables.
func (m *Map) Describe(w io.Writer) {
	if m == nil {
		return
	}
	fmt.Fprintf(w, "Map:\n")
	fmt.Fprintf(w, "  verts: %d\n", len(m.verts))
	for i, v := range m.verts {
		fmt.Fprintf(w, "    v%d = (%.2f, %.2f)\n", i, v[0], v[1])
	}
	fmt.Fprintf(w, "  sectors: %d\n", len(m.sectors))
	for i, s := range m.sectors {
		fmt.Fprintf(w, "    s%d floor=%.2f ceil=%.2f light=%.2f loop=%v\n", i, s.FloorH, s.CeilH, s.Light, s.Loop)
	}
	fmt.Fprintf(w, "  lines: %d\n", len(m.lines))
	for i, l := range m.lines {
		fmt.Fprintf(w, "    l%d v%d->v%d front=%d back=%d\n", i, l.V0, l.V1, l.Front, l.Back)
	}
}
