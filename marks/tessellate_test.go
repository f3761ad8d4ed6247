// SPDX-License-Identifier: GPL-2.0-or-later

package marks

import (
	"testing"

	"quakemarks/bsp"
	"quakemarks/math/vec"
)

func shifted(points []vec.Vec3, d vec.Vec3) []vec.Vec3 {
	for i := range points {
		points[i] = vec.Add(points[i], d)
	}
	return points
}

func TestMeshFragments(t *testing.T) {
	for _, tc := range []struct {
		name    string
		flipped bool
		want    int
	}{
		{"facing", false, 2},
		{"flipped", true, 0},
	} {
		w := leafWorld(bsp.NewMeshSurface(flatMesh(2, 2, 0, tc.flipped)))
		m := New(w, DefaultConfig())
		buf := NewBuffers(256, 16)
		n, stats := m.MarkFragments(decalSquare(10, 4), vec.Vec3{0, 0, -20}, 16, buf)
		if n != tc.want {
			t.Errorf("%s: MarkFragments = %d, want %d", tc.name, n, tc.want)
		}
		if stats.Surfaces != 1 {
			t.Errorf("%s: %d surfaces, want 1", tc.name, stats.Surfaces)
		}
		checkInside(t, &buf, n, 4, 0)
		for _, f := range buf.Fragments[:n] {
			if f.Index != 0 {
				t.Errorf("%s: mesh fragment with index %d", tc.name, f.Index)
			}
		}
	}
}

func TestMarkerOffset(t *testing.T) {
	w := leafWorld(
		bsp.NewFaceSurface(floorTriangle(0)),
		bsp.NewMeshSurface(flatMesh(2, 2, 0, false)),
	)
	cfg := DefaultConfig()
	cfg.MarkerOffset = 1
	m := New(w, cfg)
	buf := NewBuffers(256, 16)
	n, _ := m.MarkFragments(decalSquare(10, 4), vec.Vec3{0, 0, -20}, 16, buf)
	if n != 3 {
		t.Fatalf("MarkFragments = %d, want 3", n)
	}
	checkInside(t, &buf, n, 4, 1)
}

func TestTerrainSquareTypes(t *testing.T) {
	for _, tc := range []struct {
		name   string
		center vec.Vec3
		i, j   int
		typ    int
		want   int
		// the kept triangle, 0 if both or none
		side func(p vec.Vec3) bool
	}{
		{"even full", vec.Vec3{32, 32, 10}, 4, 4, 1, 2, nil},
		{"even empty", vec.Vec3{32, 32, 10}, 4, 4, 0, 0, nil},
		{"even no first", vec.Vec3{32, 32, 10}, 4, 4, 5, 1, func(p vec.Vec3) bool {
			return p[1] <= p[0]+ClipEpsilon
		}},
		{"even no second", vec.Vec3{32, 32, 10}, 4, 4, 4, 1, func(p vec.Vec3) bool {
			return p[1] >= p[0]-ClipEpsilon
		}},
		{"even keeps odd types", vec.Vec3{32, 32, 10}, 4, 4, 3, 2, nil},
		{"odd full", vec.Vec3{96, 32, 10}, 5, 4, 1, 2, nil},
		{"odd no first", vec.Vec3{96, 32, 10}, 5, 4, 3, 1, func(p vec.Vec3) bool {
			return p[0]+p[1] >= 128-ClipEpsilon
		}},
		{"odd no second", vec.Vec3{96, 32, 10}, 5, 4, 6, 1, func(p vec.Vec3) bool {
			return p[0]+p[1] <= 128+ClipEpsilon
		}},
		{"odd keeps even types", vec.Vec3{96, 32, 10}, 5, 4, 5, 2, nil},
	} {
		patch := flatTerrain(0)
		w := leafWorld(bsp.NewTerrainSurface(patch))
		w.SquareTypes = bsp.TerrainSquareFunc(func(p, i, j int) int {
			if p == patch.Index && i == tc.i && j == tc.j {
				return tc.typ
			}
			return 0
		})
		m := New(w, DefaultConfig())
		buf := NewBuffers(256, 16)
		points := shifted(decalSquare(0, 8), tc.center)
		n, _ := m.MarkFragments(points, vec.Vec3{0, 0, -20}, 256, buf)
		if n != tc.want {
			t.Errorf("%s: MarkFragments = %d, want %d", tc.name, n, tc.want)
			continue
		}
		for _, f := range buf.Fragments[:n] {
			if f.Index != patch.Index+1 {
				t.Errorf("%s: fragment index %d", tc.name, f.Index)
			}
			for _, p := range buf.FragmentPoints(f) {
				if p[2] != 0 {
					t.Errorf("%s: point %v off the terrain", tc.name, p)
				}
				if tc.side != nil && !tc.side(p) {
					t.Errorf("%s: point %v on the skipped triangle", tc.name, p)
				}
			}
		}
	}
}

func TestTerrainHeights(t *testing.T) {
	patch := flatTerrain(-40)
	for k := range patch.Heightmap {
		patch.Heightmap[k] = 10
	}
	w := leafWorld(bsp.NewTerrainSurface(patch))
	m := New(w, DefaultConfig())
	buf := NewBuffers(1024, 64)
	n, _ := m.MarkFragments(decalSquare(0, 16), vec.Vec3{0, 0, -20}, 256, buf)
	if n == 0 {
		t.Fatalf("no fragments on raised terrain")
	}
	checkInside(t, &buf, n, 16, -20)
}

func TestTerrainOutsideVolume(t *testing.T) {
	patch := flatTerrain(0)
	patch.X0, patch.Y0 = 1024, 1024
	w := leafWorld(bsp.NewTerrainSurface(patch))
	m := New(w, DefaultConfig())
	buf := NewBuffers(256, 16)
	n, stats := m.MarkFragments(decalSquare(10, 16), vec.Vec3{0, 0, -20}, 256, buf)
	if n != 0 {
		t.Errorf("MarkFragments = %d, want 0", n)
	}
	if stats.Points != 0 {
		t.Errorf("%d points written", stats.Points)
	}
}

func TestTerrainStopsWhenFull(t *testing.T) {
	w := leafWorld(bsp.NewTerrainSurface(flatTerrain(0)))
	m := New(w, DefaultConfig())
	buf := NewBuffers(256, 1)
	n, stats := m.MarkFragments(shifted(decalSquare(0, 8), vec.Vec3{32, 32, 10}), vec.Vec3{0, 0, -20}, 256, buf)
	if n != 1 || !stats.FragmentsFull {
		t.Errorf("MarkFragments = %d, full %v", n, stats.FragmentsFull)
	}
	if buf.Fragments[0].Index != 1 {
		t.Errorf("fragment index %d, want 1", buf.Fragments[0].Index)
	}
}

func TestAssembler(t *testing.T) {
	var stats Stats
	a := assembler{buf: NewBuffers(7, 3), stats: &stats}
	tri := []vec.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	quad := []vec.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}

	a.add(tri)
	a.add(quad)
	if a.fragments != 2 || a.points != 7 {
		t.Fatalf("assembler at %d fragments, %d points", a.fragments, a.points)
	}
	if f := a.buf.Fragments[1]; f.FirstPoint != 3 || f.NumPoints != 4 {
		t.Errorf("second fragment = %+v", f)
	}
	if got := a.buf.FragmentPoints(a.buf.Fragments[1]); got[2] != quad[2] {
		t.Errorf("points not copied: %v", got)
	}

	a.add(tri)
	if a.fragments != 2 || stats.DroppedFragments != 1 {
		t.Errorf("fragment beyond the point capacity: %d fragments, %d dropped", a.fragments, stats.DroppedFragments)
	}
	if a.full() || stats.FragmentsFull {
		t.Errorf("assembler full too early")
	}

	a.setIndex(1, 5)
	if a.buf.Fragments[0].Index != 0 || a.buf.Fragments[1].Index != 5 {
		t.Errorf("setIndex stamped %+v", a.buf.Fragments[:2])
	}
}

func TestAssemblerFull(t *testing.T) {
	var stats Stats
	a := assembler{buf: NewBuffers(64, 1), stats: &stats}
	a.add([]vec.Vec3{{}, {}, {}})
	if !a.full() || !stats.FragmentsFull {
		t.Errorf("single fragment buffer not reported full")
	}
	a.add([]vec.Vec3{{}, {}, {}})
	if a.fragments != 1 || a.points != 3 {
		t.Errorf("full assembler still adds: %d fragments", a.fragments)
	}
}
