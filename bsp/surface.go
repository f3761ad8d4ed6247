// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"quakemarks/math/vec"
)

type SurfaceKind byte

const (
	SurfaceFace SurfaceKind = iota
	SurfaceMesh
	SurfaceTerrain
)

func (k SurfaceKind) String() string {
	switch k {
	case SurfaceFace:
		return "face"
	case SurfaceMesh:
		return "mesh"
	case SurfaceTerrain:
		return "terrain"
	}
	return "unknown"
}

// shader surface flags
const (
	SurfNoImpact = 1 << 4 // don't make missile explosions
	SurfNoMarks  = 1 << 5 // don't leave missile marks
)

// shader content flags
const (
	ContentsFog = 1 << 6
)

// Face is a planar polygon split into triangles.
type Face struct {
	Plane   Plane
	Points  []vec.Vec3
	Indexes []int // triangle list, len is a multiple of 3
}

type DrawVert struct {
	XYZ    vec.Vec3
	Normal vec.Vec3
}

// Mesh is the control grid of a curved bezier surface.
type Mesh struct {
	Width  int
	Height int
	Verts  []DrawVert // Width*Height, row major
}

// Vert returns the control vertex in row m and column n.
func (g *Mesh) Vert(m, n int) *DrawVert {
	return &g.Verts[m*g.Width+n]
}

type Surface struct {
	Flags    int
	Contents int

	kind    SurfaceKind
	face    *Face
	mesh    *Mesh
	terrain *TerrainPatch

	// visitation stamp of the last mark query that saw this surface
	markCount int
}

func NewFaceSurface(f *Face) *Surface {
	return &Surface{kind: SurfaceFace, face: f}
}

func NewMeshSurface(g *Mesh) *Surface {
	return &Surface{kind: SurfaceMesh, mesh: g}
}

func NewTerrainSurface(t *TerrainPatch) *Surface {
	return &Surface{kind: SurfaceTerrain, terrain: t}
}

func (s *Surface) Kind() SurfaceKind {
	return s.kind
}

func (s *Surface) Face() (*Face, bool) {
	return s.face, s.kind == SurfaceFace
}

func (s *Surface) Mesh() (*Mesh, bool) {
	return s.mesh, s.kind == SurfaceMesh
}

func (s *Surface) Terrain() (*TerrainPatch, bool) {
	return s.terrain, s.kind == SurfaceTerrain
}

// Visit stamps the surface with token and reports whether it was
// already stamped with the same token.
func (s *Surface) Visit(token int) (seen bool) {
	seen = s.markCount == token
	s.markCount = token
	return seen
}

// Visited reports whether the surface carries token.
func (s *Surface) Visited(token int) bool {
	return s.markCount == token
}
