// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"quakemarks/math/vec"
)

const (
	TerrainPatchSize  = 512 // world units covered by one patch along x and y
	TerrainCells      = 8   // cells per side
	TerrainCellSize   = TerrainPatchSize / TerrainCells
	TerrainSamples    = TerrainCells + 1
	TerrainMaxHeight  = 255 * 2
	terrainHeightUnit = 2
)

// TerrainPatch is a 512x512 heightfield. Heights are bytes in units of
// two world units above Z0, sampled on a 9x9 grid with x the fast axis.
type TerrainPatch struct {
	X0, Y0, Z0 float32
	Heightmap  [TerrainSamples * TerrainSamples]byte
	// Index is the position in World.TerrainPatches
	Index int
}

// Height returns the world z of the sample at x index i and y index j.
func (t *TerrainPatch) Height(i, j int) float32 {
	return float32(int(t.Heightmap[j*TerrainSamples+i])*terrainHeightUnit) + t.Z0
}

// Corner returns the world position of the sample at x index i and y index j.
func (t *TerrainPatch) Corner(i, j int) vec.Vec3 {
	return vec.Vec3{
		float32(i*TerrainCellSize) + t.X0,
		float32(j*TerrainCellSize) + t.Y0,
		t.Height(i, j),
	}
}

// Bounds returns the eight corners of the box that can hold the patch.
func (t *TerrainPatch) Bounds() [8]vec.Vec3 {
	var b [8]vec.Vec3
	for k := 0; k < 8; k++ {
		x, y, z := t.X0, t.Y0, t.Z0
		if k&1 != 0 {
			x += TerrainPatchSize
		}
		if k&2 != 0 {
			y += TerrainPatchSize
		}
		if k&4 != 0 {
			z += TerrainMaxHeight
		}
		b[k] = vec.Vec3{x, y, z}
	}
	return b
}

// TerrainSquareTyper answers which triangles of a terrain cell exist.
// 0 means the cell is empty.
type TerrainSquareTyper interface {
	TerrainSquareType(patch, i, j int) int
}

// TerrainSquareFunc adapts a function to TerrainSquareTyper.
type TerrainSquareFunc func(patch, i, j int) int

func (f TerrainSquareFunc) TerrainSquareType(patch, i, j int) int {
	return f(patch, i, j)
}

// FullTerrain reports every cell as a full square.
var FullTerrain = TerrainSquareFunc(func(_, _, _ int) int { return 1 })
