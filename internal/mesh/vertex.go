// Package mesh turns a level.Map into flat triangle lists ready for GPU
// upload: one list for sector floors and ceilings, one for walls.
package mesh

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrEmptyMap is returned by Build when there is nothing to triangulate.
var ErrEmptyMap = errors.New("mesh: nil or empty map")

// Vertex is one interleaved vertex: position, color, texcoord, light.
type Vertex struct {
	Pos   [3]float32
	Color [3]float32
	UV    [2]float32
	Light float32
}

// Attribute describes one vertex attribute in the interleaved layout.
type Attribute struct {
	Name       string
	Location   int
	Components int
	Offset     int // in floats
}

// FloatsPerVertex is the interleaved stride in floats.
const FloatsPerVertex = 9

// Stride is the interleaved stride in bytes.
const Stride = FloatsPerVertex * 4

// Layout is the attribute recipe shared by every mesh this package emits.
var Layout = [...]Attribute{
	{Name: "position", Location: 0, Components: 3, Offset: 0},
	{Name: "color", Location: 1, Components: 3, Offset: 3},
	{Name: "texcoord", Location: 2, Components: 2, Offset: 6},
	{Name: "light", Location: 3, Components: 1, Offset: 8},
}

// AppendFloats appends the interleaved floats of v to dst.
func (v Vertex) AppendFloats(dst []float32) []float32 {
	return append(dst,
		v.Pos[0], v.Pos[1], v.Pos[2],
		v.Color[0], v.Color[1], v.Color[2],
		v.UV[0], v.UV[1],
		v.Light,
	)
}

// Buffer is a flat triangle list.
type Buffer struct {
	Verts []Vertex
}

// Count is the number of emitted vertices.
func (b *Buffer) Count() int {
	return len(b.Verts)
}

// Triangles is Count/3.
func (b *Buffer) Triangles() int {
	return len(b.Verts) / 3
}

// Reset discards all geometry.
func (b *Buffer) Reset() {
	b.Verts = nil
}

// Floats returns the interleaved vertex data.
func (b *Buffer) Floats() []float32 {
	out := make([]float32, 0, len(b.Verts)*FloatsPerVertex)
	for _, v := range b.Verts {
		out = v.AppendFloats(out)
	}
	return out
}

// Bytes returns the interleaved data as little-endian float32, the upload
// format of the rendering side.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, len(b.Verts)*Stride)
	for _, f := range b.Floats() {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(f))
	}
	return out
}

func (b *Buffer) pushTri(a, c, d Vertex) {
	b.Verts = append(b.Verts, a, c, d)
}

func (b *Buffer) pushQuad(a, c, d, e Vertex) {
	b.pushTri(a, c, d)
	b.pushTri(a, d, e)
}
