// SPDX-License-Identifier: GPL-2.0-or-later

package marks

import (
	"quakemarks/bsp"
	"quakemarks/math"
	"quakemarks/math/vec"
)

const (
	maxFrontPush = 32
	minBackPush  = 20
	// distance the query box reaches back against the projection
	pullBack = 20
)

// Volume is the prism swept by the decal along the projection: one side
// plane per decal edge followed by the near and the far cap. Front of
// every plane is inside.
type Volume struct {
	Planes [MaxVertsOnPoly + 2]bsp.Plane
	N      int
}

func (v *Volume) Slice() []bsp.Plane {
	return v.Planes[:v.N]
}

// NearCap faces along the projection direction.
func (v *Volume) NearCap() *bsp.Plane {
	return &v.Planes[v.N-2]
}

// FarCap faces against the projection direction.
func (v *Volume) FarCap() *bsp.Plane {
	return &v.Planes[v.N-1]
}

// Contains reports whether p is in front of all planes.
func (v *Volume) Contains(p vec.Vec3) bool {
	for i := range v.Slice() {
		if v.Planes[i].Distance(p) <= 0 {
			return false
		}
	}
	return true
}

// Build fills v for the decal points, at most MaxVertsOnPoly are used.
// points must not be empty. dir is the normalized projection.
func (v *Volume) Build(points []vec.Vec3, projection, dir vec.Vec3, frontPush, backPush float32) {
	if len(points) > MaxVertsOnPoly {
		points = points[:MaxVertsOnPoly]
	}
	n := len(points)
	back := projection.Inverse()
	for i := 0; i < n; i++ {
		edge := vec.Sub(points[(i+1)%n], points[i])
		normal := vec.Cross(edge, back).Normalize()
		v.Planes[i] = bsp.NewPlane(normal, vec.Dot(normal, points[i]))
	}
	// add near and far clipping planes for projection
	v.Planes[n] = bsp.NewPlane(dir, vec.Dot(dir, points[0])-frontPush)
	far := dir.Inverse()
	v.Planes[n+1] = bsp.NewPlane(far, vec.Dot(far, points[0])-backPush)
	v.N = n + 2
}

// WorldPush derives the cap offsets from the query box: the extent of
// the box perpendicular to dir limits the front push to 32 and gives
// a back push of at least 20.
func WorldPush(mins, maxs, dir vec.Vec3) (front, back float32) {
	d := vec.Sub(maxs, mins)
	reach := vec.MA(d, -vec.Dot(d, dir), dir).Length()
	front = math.Clamp(0, reach, maxFrontPush)
	back = reach
	if reach < minBackPush {
		back = minBackPush
	}
	return front, back
}

// SubModelPush are the fixed cap offsets for inline models.
func SubModelPush() (front, back float32) {
	return maxFrontPush, minBackPush
}
