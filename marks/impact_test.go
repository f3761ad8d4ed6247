// SPDX-License-Identifier: GPL-2.0-or-later

package marks

import (
	"testing"

	"github.com/chewxy/math32"

	"quakemarks/bsp"
	"quakemarks/math/vec"
)

func TestImpactPolygonUnrotated(t *testing.T) {
	pts, projection := ImpactPolygon(vec.Vec3{}, vec.Vec3{0, 0, 1}, 0, 8)
	for i, want := range decalSquare(0, 8) {
		if !nearVec(pts[i], want) {
			t.Errorf("point %d = %v, want %v", i, pts[i], want)
		}
	}
	if !nearVec(projection, vec.Vec3{0, 0, -20}) {
		t.Errorf("projection = %v", projection)
	}
}

func TestImpactPolygon(t *testing.T) {
	for _, tc := range []struct {
		origin, normal vec.Vec3
		orientation    float32
	}{
		{vec.Vec3{0, 0, 0}, vec.Vec3{0, 0, 1}, 30},
		{vec.Vec3{10, -4, 7}, vec.Vec3{0, 0, -1}, 90},
		{vec.Vec3{0, 0, 0}, vec.Vec3{1, 1, 0}, 45},
		{vec.Vec3{-3, 2, 1}, vec.Vec3{0.2, -0.3, 0.9}, 400},
	} {
		const radius = 12
		pts, projection := ImpactPolygon(tc.origin, tc.normal, tc.orientation, radius)
		n := tc.normal.Normalize()
		if !nearVec(projection, vec.Scale(-20, n)) {
			t.Errorf("%v: projection = %v", tc.normal, projection)
		}
		for i, p := range pts {
			d := vec.Sub(p, tc.origin)
			if math32.Abs(vec.Dot(d, n)) > testEpsilon {
				t.Errorf("%v: point %d off the surface plane", tc.normal, i)
			}
			if math32.Abs(d.Length()-radius*math32.Sqrt2) > testEpsilon {
				t.Errorf("%v: point %d at distance %v", tc.normal, i, d.Length())
			}
			next := pts[(i+1)%len(pts)]
			if l := vec.Sub(next, p).Length(); math32.Abs(l-2*radius) > testEpsilon {
				t.Errorf("%v: edge %d has length %v", tc.normal, i, l)
			}
			// wound clockwise seen from the front
			e1 := vec.Sub(next, p)
			e2 := vec.Sub(pts[(i+2)%len(pts)], next)
			if vec.Dot(vec.Cross(e1, e2), n) >= 0 {
				t.Errorf("%v: corner %d wound the wrong way", tc.normal, i)
			}
		}
	}
}

func TestImpactMarks(t *testing.T) {
	w := leafWorld(bsp.NewFaceSurface(floorTriangle(0)))
	m := New(w, DefaultConfig())
	for _, orientation := range []float32{0, 45, 170} {
		buf := NewBuffers(256, 16)
		pts, projection := ImpactPolygon(vec.Vec3{5, 5, 0}, vec.Vec3{0, 0, 1}, orientation, 10)
		n, _ := m.MarkFragments(pts[:], projection, 100, buf)
		if n != 1 {
			t.Errorf("orientation %v: MarkFragments = %d, want 1", orientation, n)
			continue
		}
		got := buf.FragmentPoints(buf.Fragments[0])
		if len(got) != 4 {
			t.Errorf("orientation %v: %d points, want 4", orientation, len(got))
		}
		for _, p := range pts {
			if !containsNear(got, p) {
				t.Errorf("orientation %v: corner %v missing from %v", orientation, p, got)
			}
		}
	}
}
