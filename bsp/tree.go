// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"quakemarks/math/vec"
)

// Node is an inner node of the tree. A child >= 0 is an index into
// Tree.Nodes, a child < 0 references Tree.Leafs[-1-child].
type Node struct {
	Plane    int
	Children [2]int
}

type Leaf struct {
	MarkSurfaces []int // indices into World.Surfaces
}

// Tree is the arena owning all nodes, leafs and planes. The root is
// Nodes[0], or Leafs[0] if there are no nodes.
type Tree struct {
	Planes []Plane
	Nodes  []Node
	Leafs  []Leaf
}

// LeafRef returns the child value referencing leaf i.
func LeafRef(i int) int {
	return -1 - i
}

// Root returns the child value of the root.
func (t *Tree) Root() int {
	if len(t.Nodes) == 0 {
		return LeafRef(0)
	}
	return 0
}

// SubModel is an inline brush model, it has a plain list of surfaces
// instead of a tree.
type SubModel struct {
	Mins         vec.Vec3
	Maxs         vec.Vec3
	FirstSurface int
	NumSurfaces  int
}

type World struct {
	ID             uuid.UUID
	Tree           Tree
	Surfaces       []*Surface
	TerrainPatches []*TerrainPatch
	SubModels      []*SubModel
	SquareTypes    TerrainSquareTyper

	markToken int
}

func NewWorld() *World {
	return &World{
		ID:          uuid.Must(uuid.NewV7()),
		SquareTypes: FullTerrain,
	}
}

// NextMarkToken returns a token no earlier call returned. Every mark
// query on w stamps its surfaces with a fresh token, see Surface.Visit.
func (w *World) NextMarkToken() int {
	w.markToken++
	return w.markToken
}

// AddSurface appends s and returns its index. Terrain patches also get
// registered in TerrainPatches.
func (w *World) AddSurface(s *Surface) int {
	if t, ok := s.Terrain(); ok {
		t.Index = len(w.TerrainPatches)
		w.TerrainPatches = append(w.TerrainPatches, t)
	}
	w.Surfaces = append(w.Surfaces, s)
	return len(w.Surfaces) - 1
}

// SubModelSurfaces returns the surfaces of sub model i.
func (w *World) SubModelSurfaces(i int) ([]*Surface, error) {
	if i < 0 || i >= len(w.SubModels) {
		return nil, errors.Errorf("bad sub model %d", i)
	}
	m := w.SubModels[i]
	if m.FirstSurface < 0 || m.FirstSurface+m.NumSurfaces > len(w.Surfaces) {
		return nil, errors.Errorf("sub model %d surfaces out of range", i)
	}
	return w.Surfaces[m.FirstSurface : m.FirstSurface+m.NumSurfaces], nil
}

func (w *World) TerrainSquareType(patch, i, j int) int {
	if w.SquareTypes == nil {
		return 0
	}
	return w.SquareTypes.TerrainSquareType(patch, i, j)
}
