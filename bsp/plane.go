// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"log/slog"
	"os"
	"runtime/debug"

	"quakemarks/math/vec"
)

const (
	PlaneX    = 0
	PlaneY    = 1
	PlaneZ    = 2
	PlaneAnyX = 3
	PlaneAnyY = 4
	PlaneAnyZ = 5
)

// Results of BoxOnPlaneSide
const (
	SideFront = 1
	SideBack  = 2
	SideCross = 3
)

type Plane struct {
	Normal   vec.Vec3
	Dist     float32
	Type     byte
	SignBits byte
}

// NewPlane returns a plane with Type and SignBits derived from normal.
func NewPlane(normal vec.Vec3, dist float32) Plane {
	p := Plane{
		Normal: normal,
		Dist:   dist,
		Type:   planeType(normal),
	}
	for i := 0; i < 3; i++ {
		if normal[i] < 0 {
			p.SignBits |= 1 << i
		}
	}
	return p
}

func planeType(n vec.Vec3) byte {
	switch {
	case n[0] == 1 || n[0] == -1:
		if n[1] == 0 && n[2] == 0 {
			return PlaneX
		}
	case n[1] == 1 || n[1] == -1:
		if n[0] == 0 && n[2] == 0 {
			return PlaneY
		}
	case n[2] == 1 || n[2] == -1:
		if n[0] == 0 && n[1] == 0 {
			return PlaneZ
		}
	}
	ax, ay, az := abs(n[0]), abs(n[1]), abs(n[2])
	if ax >= ay && ax >= az {
		return PlaneAnyX
	}
	if ay >= ax && ay >= az {
		return PlaneAnyY
	}
	return PlaneAnyZ
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// Distance returns the signed distance of p to the plane.
func (p *Plane) Distance(v vec.Vec3) float32 {
	return vec.Dot(v, p.Normal) - p.Dist
}

func (p *Plane) BoxOnPlaneSide(mins, maxs vec.Vec3) int {
	if p.Type < 3 {
		// only exact axial planes take this path, the sign of the
		// normal decides which side is front
		t := int(p.Type)
		if p.Normal[t] > 0 {
			if p.Dist <= mins[t] {
				return SideFront
			}
			if p.Dist >= maxs[t] {
				return SideBack
			}
			return SideCross
		}
		if p.Dist <= -maxs[t] {
			return SideFront
		}
		if p.Dist >= -mins[t] {
			return SideBack
		}
		return SideCross
	}
	d1, d2 := func() (float32, float32) {
		n := p.Normal
		switch p.SignBits {
		case 0:
			d1 := n[0]*maxs[0] + n[1]*maxs[1] + n[2]*maxs[2]
			d2 := n[0]*mins[0] + n[1]*mins[1] + n[2]*mins[2]
			return d1, d2
		case 1:
			d1 := n[0]*mins[0] + n[1]*maxs[1] + n[2]*maxs[2]
			d2 := n[0]*maxs[0] + n[1]*mins[1] + n[2]*mins[2]
			return d1, d2
		case 2:
			d1 := n[0]*maxs[0] + n[1]*mins[1] + n[2]*maxs[2]
			d2 := n[0]*mins[0] + n[1]*maxs[1] + n[2]*mins[2]
			return d1, d2
		case 3:
			d1 := n[0]*mins[0] + n[1]*mins[1] + n[2]*maxs[2]
			d2 := n[0]*maxs[0] + n[1]*maxs[1] + n[2]*mins[2]
			return d1, d2
		case 4:
			d1 := n[0]*maxs[0] + n[1]*maxs[1] + n[2]*mins[2]
			d2 := n[0]*mins[0] + n[1]*mins[1] + n[2]*maxs[2]
			return d1, d2
		case 5:
			d1 := n[0]*mins[0] + n[1]*maxs[1] + n[2]*mins[2]
			d2 := n[0]*maxs[0] + n[1]*mins[1] + n[2]*maxs[2]
			return d1, d2
		case 6:
			d1 := n[0]*maxs[0] + n[1]*mins[1] + n[2]*mins[2]
			d2 := n[0]*mins[0] + n[1]*maxs[1] + n[2]*maxs[2]
			return d1, d2
		case 7:
			d1 := n[0]*mins[0] + n[1]*mins[1] + n[2]*mins[2]
			d2 := n[0]*maxs[0] + n[1]*maxs[1] + n[2]*maxs[2]
			return d1, d2
		default:
			debug.PrintStack()
			slog.Error("BoxOnPlaneSide: Bad signbits", slog.Int("signbits", int(p.SignBits)))
			os.Exit(1)
			return 0, 0
		}
	}()
	sides := 0
	if d1 >= p.Dist {
		sides = SideFront
	}
	if d2 < p.Dist {
		sides |= SideBack
	}
	return sides
}
