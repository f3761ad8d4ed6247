// SPDX-License-Identifier: GPL-2.0-or-later

package marks

import (
	"quakemarks/math"
	"quakemarks/math/vec"
)

// ImpactPolygon returns the square decal of the given radius centered at
// origin on a surface with normal dir, rotated by orientation degrees,
// and the projection pushing it into the surface. The points are wound
// so that the volume sides face inwards.
func ImpactPolygon(origin, dir vec.Vec3, orientation, radius float32) ([4]vec.Vec3, vec.Vec3) {
	axis0 := dir.Normalize()
	perp := vec.Perpendicular(axis0)
	axis2 := vec.RotateAroundAxis(perp, axis0, math.AngleMod(orientation))
	axis1 := vec.Cross(axis0, axis2)

	var pts [4]vec.Vec3
	pts[0] = vec.MA(vec.MA(origin, -radius, axis1), -radius, axis2)
	pts[1] = vec.MA(vec.MA(origin, radius, axis1), -radius, axis2)
	pts[2] = vec.MA(vec.MA(origin, radius, axis1), radius, axis2)
	pts[3] = vec.MA(vec.MA(origin, -radius, axis1), radius, axis2)
	return pts, vec.Scale(-20, axis0)
}
