// SPDX-License-Identifier: GPL-2.0-or-later

package marks

import (
	"quakemarks/math/vec"
)

// Fragment is one clipped polygon, its points are
// Buffers.Points[FirstPoint:FirstPoint+NumPoints].
type Fragment struct {
	FirstPoint int
	NumPoints  int
	// Index is 0 or the terrain patch index + 1 the fragment was cut from
	Index int
}

// Buffers are caller owned output storage. The lengths of the slices
// are the capacities.
type Buffers struct {
	Points    []vec.Vec3
	Fragments []Fragment
}

func NewBuffers(maxPoints, maxFragments int) Buffers {
	return Buffers{
		Points:    make([]vec.Vec3, maxPoints),
		Fragments: make([]Fragment, maxFragments),
	}
}

// FragmentPoints returns the points of f.
func (b *Buffers) FragmentPoints(f Fragment) []vec.Vec3 {
	return b.Points[f.FirstPoint : f.FirstPoint+f.NumPoints]
}

// Stats reports the soft failures of one mark call.
type Stats struct {
	Surfaces             int // candidate surfaces after the box query
	SurfaceListTruncated bool
	ClipOverflows        int // clips refused because of the winding capacity
	DroppedFragments     int // fragments that did not fit into the point buffer
	FragmentsFull        bool
	Points               int
}

type assembler struct {
	buf       Buffers
	points    int
	fragments int
	stats     *Stats
}

func (a *assembler) full() bool {
	return a.fragments >= len(a.buf.Fragments)
}

// add appends one fragment. It is dropped if there is not enough
// space for all of its points.
func (a *assembler) add(pts []vec.Vec3) {
	if a.full() {
		a.stats.FragmentsFull = true
		return
	}
	if len(pts)+a.points > len(a.buf.Points) {
		a.stats.DroppedFragments++
		return
	}
	a.buf.Fragments[a.fragments] = Fragment{
		FirstPoint: a.points,
		NumPoints:  len(pts),
	}
	copy(a.buf.Points[a.points:], pts)
	a.points += len(pts)
	a.fragments++
	if a.full() {
		a.stats.FragmentsFull = true
	}
}

// setIndex stamps all fragments added since first.
func (a *assembler) setIndex(first, index int) {
	for i := first; i < a.fragments; i++ {
		a.buf.Fragments[i].Index = index
	}
}
