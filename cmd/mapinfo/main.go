package main

import (
	"flag"
	"fmt"
	"os"

	"sector-renderer/internal/level"
	"sector-renderer/internal/mesh"
)

func main() {
	height := flag.Float64("height", 1.6, "Actor height used for the portal table")
	dump := flag.Int("dump", 0, "Print the first N vertices of each mesh")
	flag.Parse()

	m, err := level.BuildTestMap()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer m.Release()

	m.Describe(os.Stdout)
	if err := m.Validate(); err != nil {
		fmt.Printf("Validate: %v\n", err)
	} else {
		fmt.Println("Validate: ok")
	}

	fmt.Printf("\nPortals (height %.2f):\n", *height)
	for i, l := range m.Lines() {
		if !l.TwoSided() {
			continue
		}
		c := level.Clearance(m.Sector(l.Front), m.Sector(l.Back))
		fmt.Printf("  line %d: %d <-> %d, clearance %.2f, passable %v\n",
			i, l.Front, l.Back, c, m.PortalPassable(i, *height))
	}

	var sm mesh.SectorMesh
	var wm mesh.WallMesh
	if err := sm.Build(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := wm.Build(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nMeshes:")
	printMesh("sector", &sm.Buffer, *dump)
	printMesh("wall", &wm.Buffer, *dump)

	fmt.Println("\nLayout:")
	for _, a := range mesh.Layout {
		fmt.Printf("  %d %-8s %d floats at offset %d\n", a.Location, a.Name, a.Components, a.Offset)
	}
	fmt.Printf("  stride %d bytes\n", mesh.Stride)
}

func printMesh(name string, b *mesh.Buffer, dump int) {
	bySurface := map[mesh.Surface]int{}
	for i := 0; i+2 < len(b.Verts); i += 3 {
		bySurface[mesh.SurfaceOf(b.Verts[i].Color)]++
	}
	fmt.Printf("  %s: %d vertices, %d triangles, %d bytes\n", name, b.Count(), b.Triangles(), len(b.Bytes()))
	for s := mesh.SurfaceFloor; s <= mesh.SurfaceLintel; s++ {
		if n := bySurface[s]; n > 0 {
			fmt.Printf("    %-8s %d triangles\n", s, n)
		}
	}

	if dump > len(b.Verts) {
		dump = len(b.Verts)
	}
	for i, v := range b.Verts[:dump] {
		fmt.Printf("    [%d] pos %v color %v uv %v light %.2f\n", i, v.Pos, v.Color, v.UV, v.Light)
	}
}
