// SPDX-License-Identifier: GPL-2.0-or-later

package marks

import (
	"quakemarks/bsp"
	"quakemarks/math/vec"
)

const (
	MaxMarkSurfaces = 64
	// faces closer to parallel with the projection are not marked
	faceMarkCutoff = -0.5
	// bounded by the tree depth, grows if needed
	stackHint = 64
)

// Query is one box query for mark surfaces. Surfaces get collected into
// List up to its capacity.
type Query struct {
	Mins, Maxs vec.Vec3
	Dir        vec.Vec3
	// Token stamps visited surfaces, a surface carrying it already is
	// not collected again.
	Token int
	List  []*bsp.Surface
	// Truncated is set when a surface did not fit into List.
	Truncated bool
}

func (q *Query) full() bool {
	return len(q.List) >= cap(q.List)
}

// markFace reports whether the face plane goes through the box and the
// face is oriented against the projection.
func (q *Query) markFace(f *bsp.Face) bool {
	switch f.Plane.BoxOnPlaneSide(q.Mins, q.Maxs) {
	case bsp.SideFront, bsp.SideBack:
		return false
	}
	// don't add faces that make sharp angles with the projection direction
	return vec.Dot(f.Plane.Normal, q.Dir) <= faceMarkCutoff
}

func (q *Query) add(s *bsp.Surface, accept bool) {
	if !accept {
		s.Visit(q.Token)
		return
	}
	// the surface may have already been added if it spans multiple leafs
	if s.Visit(q.Token) {
		return
	}
	q.List = append(q.List, s)
}

// BoxSurfaces collects the world surfaces of all leafs touching the box.
func (q *Query) BoxSurfaces(tree *bsp.Tree, surfaces []*bsp.Surface) {
	if len(tree.Leafs) == 0 {
		return
	}
	stack := make([]int, 0, stackHint)
	stack = append(stack, tree.Root())
	for len(stack) > 0 {
		num := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// follow single children in a loop
		for num >= 0 {
			node := &tree.Nodes[num]
			switch tree.Planes[node.Plane].BoxOnPlaneSide(q.Mins, q.Maxs) {
			case bsp.SideFront:
				num = node.Children[0]
			case bsp.SideBack:
				num = node.Children[1]
			default:
				stack = append(stack, node.Children[1])
				num = node.Children[0]
			}
		}

		if !q.addLeaf(&tree.Leafs[-1-num], surfaces) {
			return
		}
	}
}

func (q *Query) addLeaf(leaf *bsp.Leaf, surfaces []*bsp.Surface) bool {
	for _, si := range leaf.MarkSurfaces {
		if q.full() {
			q.Truncated = true
			return false
		}
		s := surfaces[si]
		if s.Flags&(bsp.SurfNoImpact|bsp.SurfNoMarks) != 0 {
			q.add(s, false)
			continue
		}
		switch s.Kind() {
		case bsp.SurfaceFace:
			f, _ := s.Face()
			q.add(s, q.markFace(f))
		default:
			q.add(s, true)
		}
	}
	return true
}

// SubModelSurfaces collects from the plain surface list of an inline
// model. Fog and curved meshes are never marked there.
func (q *Query) SubModelSurfaces(surfaces []*bsp.Surface) {
	for _, s := range surfaces {
		if q.full() {
			q.Truncated = true
			return
		}
		if s.Flags&(bsp.SurfNoImpact|bsp.SurfNoMarks) != 0 || s.Contents&bsp.ContentsFog != 0 {
			q.add(s, false)
			continue
		}
		switch s.Kind() {
		case bsp.SurfaceFace:
			f, _ := s.Face()
			q.add(s, q.markFace(f))
		case bsp.SurfaceMesh:
			q.add(s, false)
		default:
			q.add(s, true)
		}
	}
}
