// SPDX-License-Identifier: GPL-2.0-or-later

package marks

import (
	"quakemarks/bsp"
	"quakemarks/math/vec"
)

const (
	// mesh triangles, empirically tuned
	meshFirstCutoff  = -0.1
	meshSecondCutoff = -0.05

	// the caps get pushed out while clipping terrain to cover the
	// height range of a patch
	terrainNearBias = 96
	terrainFarBias  = 108

	// square types without the first or second triangle, per diagonal
	terrainOddNoFirst   = 3
	terrainOddNoSecond  = 6
	terrainEvenNoFirst  = 5
	terrainEvenNoSecond = 4
)

type tessellator struct {
	cfg   *Config
	world *bsp.World
	vol   *Volume
	dir   vec.Vec3
	asm   *assembler
	stats *Stats
	clip  *[2]Winding
	// skip all terrain patches
	skipTerrain bool
}

// process tessellates and clips all surfaces until the fragment buffer
// is full.
func (t *tessellator) process(surfaces []*bsp.Surface) {
	for _, s := range surfaces {
		if t.surface(s) {
			return
		}
	}
}

func (t *tessellator) surface(s *bsp.Surface) (full bool) {
	switch s.Kind() {
	case bsp.SurfaceFace:
		f, _ := s.Face()
		return t.face(f)
	case bsp.SurfaceMesh:
		g, _ := s.Mesh()
		return t.mesh(g)
	case bsp.SurfaceTerrain:
		if t.skipTerrain {
			return false
		}
		p, _ := s.Terrain()
		return t.terrain(p)
	}
	return false
}

func (t *tessellator) face(f *bsp.Face) bool {
	// check the normal of this face
	if vec.Dot(f.Plane.Normal, t.dir) > faceMarkCutoff {
		return false
	}
	in := &t.clip[0]
	for k := 0; k+2 < len(f.Indexes); k += 3 {
		for j := 0; j < 3; j++ {
			v := f.Points[f.Indexes[k+j]]
			in.Points[j] = vec.MA(v, t.cfg.MarkerOffset, f.Plane.Normal)
		}
		in.N = 3
		t.addFragments()
		if t.asm.full() {
			return true
		}
	}
	return false
}

// mesh triangulates the full control grid, LOD is not taken into account.
func (t *tessellator) mesh(g *bsp.Mesh) bool {
	for m := 0; m < g.Height-1; m++ {
		for n := 0; n < g.Width-1; n++ {
			corner := g.Vert(m, n)
			across := g.Vert(m+1, n)
			adjacent := g.Vert(m, n+1)
			diagonal := g.Vert(m+1, n+1)
			if t.meshTriangle(corner, across, adjacent, meshFirstCutoff) {
				return true
			}
			if t.meshTriangle(adjacent, across, diagonal, meshSecondCutoff) {
				return true
			}
		}
	}
	return false
}

func (t *tessellator) meshTriangle(a, b, c *bsp.DrawVert, cutoff float32) bool {
	in := &t.clip[0]
	// the offset goes along the vertex normals so neighbours still fit
	in.Points[0] = vec.MA(a.XYZ, t.cfg.MarkerOffset, a.Normal)
	in.Points[1] = vec.MA(b.XYZ, t.cfg.MarkerOffset, b.Normal)
	in.Points[2] = vec.MA(c.XYZ, t.cfg.MarkerOffset, c.Normal)
	in.N = 3

	v1 := vec.Sub(in.Points[0], in.Points[1])
	v2 := vec.Sub(in.Points[2], in.Points[1])
	normal := vec.Cross(v1, v2).Normalize()
	if vec.Dot(normal, t.dir) >= cutoff {
		return false
	}
	t.addFragments()
	return t.asm.full()
}

func (t *tessellator) terrain(p *bsp.TerrainPatch) (full bool) {
	near, far := t.vol.NearCap(), t.vol.FarCap()
	nearDist, farDist := near.Dist, far.Dist
	near.Dist -= terrainNearBias
	far.Dist -= terrainFarBias
	defer func() {
		near.Dist = nearDist
		far.Dist = farDist
	}()

	// Skip the patch only when a single plane has all eight corners
	// behind it. Corners outside different planes can still enclose
	// part of the volume, as a patch larger than the decal does.
	corners := p.Bounds()
	for i := range t.vol.Slice() {
		plane := &t.vol.Planes[i]
		inside := false
		for _, c := range corners {
			if plane.Distance(c) > 0 {
				inside = true
				break
			}
		}
		if !inside {
			return false
		}
	}

	first := t.asm.fragments
	defer func() {
		t.asm.setIndex(first, p.Index+1)
	}()

	for i := 0; i < bsp.TerrainCells; i++ {
		for j := 0; j < bsp.TerrainCells; j++ {
			typ := t.world.TerrainSquareType(p.Index, i, j)
			if typ == 0 {
				continue
			}
			v0 := p.Corner(i, j)
			v1 := p.Corner(i+1, j)
			v2 := p.Corner(i+1, j+1)
			v3 := p.Corner(i, j+1)

			if (i+j)&1 != 0 {
				if typ != terrainOddNoFirst && t.terrainTriangle(v0, v3, v1) {
					return true
				}
				if typ != terrainOddNoSecond && t.terrainTriangle(v2, v1, v3) {
					return true
				}
			} else {
				if typ != terrainEvenNoFirst && t.terrainTriangle(v3, v2, v0) {
					return true
				}
				if typ != terrainEvenNoSecond && t.terrainTriangle(v1, v0, v2) {
					return true
				}
			}
		}
	}
	return false
}

func (t *tessellator) terrainTriangle(a, b, c vec.Vec3) bool {
	t.clip[0].Set(a, b, c)
	t.addFragments()
	return t.asm.full()
}

// addFragments chops the triangle in clip[0] by all planes of the volume
// and adds what is left.
func (t *tessellator) addFragments() {
	ping := 0
	for i := range t.vol.Slice() {
		if !ChopBehindPlane(&t.clip[ping], &t.clip[ping^1], &t.vol.Planes[i], ClipEpsilon) {
			t.stats.ClipOverflows++
		}
		ping ^= 1
		if t.clip[ping].N == 0 {
			// completely clipped away
			return
		}
	}
	t.asm.add(t.clip[ping].Slice())
}
