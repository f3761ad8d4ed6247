// SPDX-License-Identifier: GPL-2.0-or-later

package vec

import (
	"github.com/chewxy/math32"
)

type Vec3 [3]float32

// Length returns the length of the vector
func (v Vec3) Length() float32 {
	return math32.Sqrt(Dot(v, v))
}

// Add returns a + b
func Add(a, b Vec3) Vec3 {
	return Vec3{
		a[0] + b[0],
		a[1] + b[1],
		a[2] + b[2],
	}
}

// Sub returns a - b
func Sub(a, b Vec3) Vec3 {
	return Vec3{
		a[0] - b[0],
		a[1] - b[1],
		a[2] - b[2],
	}
}

// Scale returns the vector v multiplied by the skalar s
func Scale(s float32, v Vec3) Vec3 {
	return Vec3{
		v[0] * s,
		v[1] * s,
		v[2] * s,
	}
}

// MA returns a + s*b
func MA(a Vec3, s float32, b Vec3) Vec3 {
	return Vec3{
		a[0] + s*b[0],
		a[1] + s*b[1],
		a[2] + s*b[2],
	}
}

// Inverse returns -v
func (v Vec3) Inverse() Vec3 {
	return Vec3{-v[0], -v[1], -v[2]}
}

// Normalize returns the normalized vector
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Scale(1/l, v)
}

// Dot returns a dot b
func Dot(a, b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns a cross b
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Lerp computes a weighted average between two points
func Lerp(a, b Vec3, frac float32) Vec3 {
	return Vec3{
		a[0] + frac*(b[0]-a[0]),
		a[1] + frac*(b[1]-a[1]),
		a[2] + frac*(b[2]-a[2]),
	}
}

// ClearBounds returns an inverted box that any point expands.
func ClearBounds() (mins, maxs Vec3) {
	const big = 99999
	return Vec3{big, big, big}, Vec3{-big, -big, -big}
}

// AddPointToBounds grows mins/maxs to contain p.
func AddPointToBounds(p Vec3, mins, maxs *Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < mins[i] {
			mins[i] = p[i]
		}
		if p[i] > maxs[i] {
			maxs[i] = p[i]
		}
	}
}

func AngleVectors(angles Vec3) (forward, right, up Vec3) {
	deg := math32.Pi * 2 / 360
	sp, cp := math32.Sincos(angles[0] * deg) // PITCH
	sy, cy := math32.Sincos(angles[1] * deg) // YAW
	sr, cr := math32.Sincos(angles[2] * deg) // ROLL

	forward = Vec3{cp * cy, cp * sy, -sp}
	right = Vec3{
		(-1*sr*sp*cy + -1*cr*-sy),
		(-1*sr*sp*sy + -1*cr*cy),
		-1 * sr * cp,
	}
	up = Vec3{
		(cr*sp*cy + -sr*-sy),
		(cr*sp*sy + -sr*cy),
		cr * cp,
	}
	return
}

// AngleVectorsLeft is AngleVectors with a left instead of a right vector,
// giving a right handed forward/left/up frame.
func AngleVectorsLeft(angles Vec3) (forward, left, up Vec3) {
	forward, right, up := AngleVectors(angles)
	return forward, right.Inverse(), up
}

// Perpendicular returns a unit vector perpendicular to the unit vector src.
func Perpendicular(src Vec3) Vec3 {
	// project the axis src is least aligned with onto the plane of src
	pos := 0
	minelem := float32(1)
	for i := 0; i < 3; i++ {
		if a := math32.Abs(src[i]); a < minelem {
			pos = i
			minelem = a
		}
	}
	var t Vec3
	t[pos] = 1
	d := Dot(t, src)
	return MA(t, -d, src).Normalize()
}

// RotateAroundAxis rotates p around the unit vector axis by degrees.
func RotateAroundAxis(p, axis Vec3, degrees float32) Vec3 {
	s, c := math32.Sincos(degrees * math32.Pi / 180)
	// Rodrigues: p*c + (axis x p)*s + axis*(axis.p)*(1-c)
	r := Scale(c, p)
	r = MA(r, s, Cross(axis, p))
	return MA(r, Dot(axis, p)*(1-c), axis)
}
