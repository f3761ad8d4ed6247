// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"quakemarks/bsp"
	"quakemarks/cbuf"
	cmdl "quakemarks/commandline"
	"quakemarks/cvars"
	"quakemarks/marks"
	"quakemarks/math/vec"
	"quakemarks/metrics"
	"quakemarks/snapshot"
)

// demoWorld is a floor split at x = 0 with a curved mesh patch on the
// front side, a terrain patch below the back side and a platform as
// inline model.
func demoWorld() *bsp.World {
	w := bsp.NewWorld()
	floor := w.AddSurface(bsp.NewFaceSurface(&bsp.Face{
		Plane: bsp.NewPlane(vec.Vec3{0, 0, 1}, 0),
		Points: []vec.Vec3{
			{-256, -256, 0},
			{256, -256, 0},
			{256, 256, 0},
			{-256, 256, 0},
		},
		Indexes: []int{0, 1, 2, 0, 2, 3},
	}))

	g := &bsp.Mesh{Width: 5, Height: 3, Verts: make([]bsp.DrawVert, 15)}
	for m := 0; m < g.Height; m++ {
		for n := 0; n < g.Width; n++ {
			x := float32(n * 8)
			// a shallow bump along y
			z := float32(1 - (m-1)*(m-1))
			*g.Vert(m, n) = bsp.DrawVert{
				XYZ:    vec.Vec3{x, float32(m*8 - 8), z},
				Normal: vec.Vec3{0, 0, 1},
			}
		}
	}
	mesh := w.AddSurface(bsp.NewMeshSurface(g))

	patch := &bsp.TerrainPatch{X0: -512, Y0: -256, Z0: -2}
	for j := 0; j < bsp.TerrainSamples; j++ {
		for i := 0; i < bsp.TerrainSamples; i++ {
			patch.Heightmap[j*bsp.TerrainSamples+i] = byte(i % 2)
		}
	}
	terrain := w.AddSurface(bsp.NewTerrainSurface(patch))

	w.Tree = bsp.Tree{
		Planes: []bsp.Plane{bsp.NewPlane(vec.Vec3{1, 0, 0}, 0)},
		Nodes:  []bsp.Node{{Plane: 0, Children: [2]int{bsp.LeafRef(0), bsp.LeafRef(1)}}},
		Leafs: []bsp.Leaf{
			{MarkSurfaces: []int{floor, mesh}},
			{MarkSurfaces: []int{floor, terrain}},
		},
	}

	top := w.AddSurface(bsp.NewFaceSurface(&bsp.Face{
		Plane: bsp.NewPlane(vec.Vec3{0, 0, 1}, 0),
		Points: []vec.Vec3{
			{-64, -64, 0},
			{64, -64, 0},
			{64, 64, 0},
			{-64, 64, 0},
		},
		Indexes: []int{0, 1, 2, 0, 2, 3},
	}))
	w.SubModels = []*bsp.SubModel{{
		Mins:         vec.Vec3{-64, -64, -16},
		Maxs:         vec.Vec3{64, 64, 0},
		FirstSurface: top,
		NumSurfaces:  1,
	}}
	return w
}

func runScript(name string) error {
	text, err := os.ReadFile(name)
	if err != nil {
		return errors.Wrap(err, "failed to read script")
	}
	var c cbuf.CommandBuffer
	c.SetCommandExecutors([]cbuf.Efunc{cbuf.Cvars})
	c.AddText(string(text))
	for c.Pending() {
		if err := c.Execute(); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	flag.Parse()
	if name := cmdl.Exec(); name != "" {
		if err := runScript(name); err != nil {
			slog.Error("exec", slog.Any("error", err))
			os.Exit(1)
		}
	}
	// -set wins over the script
	cmdl.ApplyCvars()

	level := slog.LevelInfo
	if cvars.MarkDebug.Bool() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	w := demoWorld()
	m := marks.New(w, marks.ConfigFromCvars())
	buf := marks.NewBuffers(1024, 128)

	r := cmdl.Radius()
	var (
		points     [4]vec.Vec3
		projection vec.Vec3
		n          int
		stats      marks.Stats
	)
	if cmdl.SubModel() {
		// the platform floats 32 units up, yawed by 30 degrees
		origin := vec.Vec3{0, 0, 32}
		points, projection = marks.ImpactPolygon(vec.Vec3{4, 4, 32}, vec.Vec3{0, 0, 1}, cmdl.Orientation(), r)
		n, stats = m.MarkFragmentsForSubModel(cmdl.SubModelNum(), vec.Vec3{0, 30, 0}, origin, points[:], projection, r*r, buf)
		metrics.Observe(metrics.PathSubModel, n, stats)
	} else {
		// on the split, touching all surfaces
		points, projection = marks.ImpactPolygon(vec.Vec3{0, 0, 0}, vec.Vec3{0, 0, 1}, cmdl.Orientation(), r)
		n, stats = m.MarkFragments(points[:], projection, r*r, buf)
		metrics.Observe(metrics.PathWorld, n, stats)
	}

	slog.Info("marked",
		slog.String("world", w.ID.String()),
		slog.Int("fragments", n),
		slog.Int("surfaces", stats.Surfaces),
		slog.Int("points", stats.Points))
	if cmdl.Verbose() {
		for i, f := range buf.Fragments[:n] {
			slog.Info("fragment",
				slog.Int("n", i),
				slog.Int("index", f.Index),
				slog.Any("points", buf.FragmentPoints(f)))
		}
	}

	if name := cmdl.Output(); name != "" {
		rec := snapshot.Capture(w, points[:], projection, r*r, buf, n)
		if err := snapshot.WriteFile(name, &rec); err != nil {
			slog.Error("snapshot", slog.Any("error", err))
			os.Exit(1)
		}
	}

	if addr := cmdl.MetricsAddress(); addr != "" {
		var admin http.ServeMux
		admin.Handle("/metrics", promhttp.Handler())
		slog.Info("serving metrics", slog.String("address", addr))
		if err := http.ListenAndServe(addr, &admin); err != nil {
			slog.Error("metrics", slog.Any("error", err))
			os.Exit(1)
		}
	}
}
