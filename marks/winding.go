// SPDX-License-Identifier: GPL-2.0-or-later

package marks

import (
	"quakemarks/bsp"
	"quakemarks/math/vec"
)

const (
	MaxVertsOnPoly = 64
	// ClipEpsilon is the on-plane band used by the fragment pipeline
	ClipEpsilon = 0.5
)

type side byte

const (
	sideFront side = iota
	sideBack
	sideOn
)

// Winding is a convex polygon with a fixed capacity of MaxVertsOnPoly
// points.
type Winding struct {
	Points [MaxVertsOnPoly]vec.Vec3
	N      int
}

func (w *Winding) Slice() []vec.Vec3 {
	return w.Points[:w.N]
}

// Set replaces the points of w. Points beyond the capacity are dropped,
// in which case Set returns false.
func (w *Winding) Set(pts ...vec.Vec3) bool {
	w.N = copy(w.Points[:], pts)
	return w.N == len(pts)
}

// ChopBehindPlane writes the part of in which lies in front of p
// (within epsilon) to out. in and out must not be the same winding.
// It returns false if the clip was refused because the result could
// overflow the capacity, out is empty in that case.
func ChopBehindPlane(in, out *Winding, p *bsp.Plane, epsilon float32) bool {
	var (
		dists  [MaxVertsOnPoly + 1]float32
		sides  [MaxVertsOnPoly + 1]side
		counts [3]int
	)
	out.N = 0

	// don't clip if it might overflow
	if in.N >= MaxVertsOnPoly-2 {
		return false
	}

	// determine sides for each point
	n := in.N
	for i := 0; i < n; i++ {
		d := p.Distance(in.Points[i])
		dists[i] = d
		switch {
		case d > epsilon:
			sides[i] = sideFront
		case d < -epsilon:
			sides[i] = sideBack
		default:
			sides[i] = sideOn
		}
		counts[sides[i]]++
	}
	sides[n] = sides[0]
	dists[n] = dists[0]

	// nothing behind, this includes a winding lying on the plane
	if counts[sideBack] == 0 {
		out.N = copy(out.Points[:], in.Points[:n])
		return true
	}
	if counts[sideFront] == 0 {
		return true
	}

	for i := 0; i < n; i++ {
		p1 := in.Points[i]

		if sides[i] == sideOn {
			out.Points[out.N] = p1
			out.N++
			continue
		}
		if sides[i] == sideFront {
			out.Points[out.N] = p1
			out.N++
		}
		if sides[i+1] == sideOn || sides[i+1] == sides[i] {
			continue
		}

		// generate a split point
		p2 := in.Points[(i+1)%n]
		var frac float32
		if d := dists[i] - dists[i+1]; d != 0 {
			frac = dists[i] / d
		}
		out.Points[out.N] = vec.Lerp(p1, p2, frac)
		out.N++
	}
	return true
}
