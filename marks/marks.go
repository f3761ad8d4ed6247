// SPDX-License-Identifier: GPL-2.0-or-later

// Package marks projects decal polygons onto world geometry and returns
// the clipped fragments for mark rendering.
package marks

import (
	"log/slog"

	"quakemarks/bsp"
	"quakemarks/cvars"
	"quakemarks/math/vec"
)

type Config struct {
	// terrain is not marked by decals with a radius up to this
	MinMarkRadius float32
	// distance the triangles get lifted along their normals
	MarkerOffset float32
	// capacity of the surface list of one query
	MaxSurfaces int
	// log soft failures
	Debug bool
}

func DefaultConfig() Config {
	return Config{
		MinMarkRadius: 8,
		MarkerOffset:  0,
		MaxSurfaces:   MaxMarkSurfaces,
	}
}

// ConfigFromCvars reads the current values of the mark cvars.
func ConfigFromCvars() Config {
	c := DefaultConfig()
	c.MinMarkRadius = cvars.TerrainMinMarkRadius.Value()
	c.MarkerOffset = cvars.MarkerOffset.Value()
	c.Debug = cvars.MarkDebug.Bool()
	return c
}

// Marker computes mark fragments on one world. A Marker is not safe for
// concurrent use. Markers on the same world may be used in turn, they
// draw their tokens from the world.
type Marker struct {
	world *bsp.World
	cfg   Config

	// token of the last call, from bsp.World.NextMarkToken
	viewCount int

	vol      Volume
	clip     [2]Winding
	surfaces []*bsp.Surface
	points   [MaxVertsOnPoly]vec.Vec3
}

func New(world *bsp.World, cfg Config) *Marker {
	if cfg.MaxSurfaces <= 0 {
		cfg.MaxSurfaces = MaxMarkSurfaces
	}
	return &Marker{
		world:    world,
		cfg:      cfg,
		surfaces: make([]*bsp.Surface, 0, cfg.MaxSurfaces),
	}
}

func (m *Marker) Config() Config {
	return m.cfg
}

// Token returns the visitation token of the last call.
func (m *Marker) Token() int {
	return m.viewCount
}

func clampPoints(points []vec.Vec3) []vec.Vec3 {
	if len(points) > MaxVertsOnPoly {
		return points[:MaxVertsOnPoly]
	}
	return points
}

// queryBox covers the points, the points moved by the projection and the
// points pulled back 20 units to also get the leafs in front of the hit
// surface.
func queryBox(points []vec.Vec3, projection, dir vec.Vec3) (mins, maxs vec.Vec3) {
	mins, maxs = vec.ClearBounds()
	for _, p := range points {
		vec.AddPointToBounds(p, &mins, &maxs)
		vec.AddPointToBounds(vec.Add(p, projection), &mins, &maxs)
		vec.AddPointToBounds(vec.MA(p, -pullBack, dir), &mins, &maxs)
	}
	return mins, maxs
}

// MarkFragments projects the decal points along projection onto the world
// and writes the fragments to buf. It returns the number of fragments.
// radiusSquared is only used to skip terrain for small decals.
func (m *Marker) MarkFragments(points []vec.Vec3, projection vec.Vec3, radiusSquared float32, buf Buffers) (int, Stats) {
	// fresh token for double check prevention
	m.viewCount = m.world.NextMarkToken()

	points = clampPoints(points)
	if len(points) < 3 {
		return 0, Stats{}
	}
	dir := projection.Normalize()
	mins, maxs := queryBox(points, projection, dir)
	front, back := WorldPush(mins, maxs, dir)
	m.vol.Build(points, projection, dir, front, back)

	q := Query{
		Mins:  mins,
		Maxs:  maxs,
		Dir:   dir,
		Token: m.viewCount,
		List:  m.surfaces[:0],
	}
	q.BoxSurfaces(&m.world.Tree, m.world.Surfaces)
	return m.tessellate(&q, dir, radiusSquared, buf)
}

// MarkFragmentsForSubModel is MarkFragments against the inline model
// model placed at origin with angles. Points and projection are given in
// world space, the fragments are in model space.
func (m *Marker) MarkFragmentsForSubModel(model int, angles, origin vec.Vec3, points []vec.Vec3, projection vec.Vec3, radiusSquared float32, buf Buffers) (int, Stats) {
	m.viewCount = m.world.NextMarkToken()

	surfaces, err := m.world.SubModelSurfaces(model)
	if err != nil {
		slog.Warn("MarkFragmentsForSubModel", slog.Any("error", err))
		return 0, Stats{}
	}
	points = clampPoints(points)
	if len(points) < 3 {
		return 0, Stats{}
	}

	local := m.points[:len(points)]
	if angles != (vec.Vec3{}) {
		forward, left, up := vec.AngleVectorsLeft(angles)
		toLocal := func(v vec.Vec3) vec.Vec3 {
			return vec.Vec3{vec.Dot(forward, v), vec.Dot(left, v), vec.Dot(up, v)}
		}
		for i, p := range points {
			local[i] = toLocal(vec.Sub(p, origin))
		}
		projection = toLocal(projection)
	} else {
		for i, p := range points {
			local[i] = vec.Sub(p, origin)
		}
	}

	dir := projection.Normalize()
	mins, maxs := queryBox(local, projection, dir)
	front, back := SubModelPush()
	m.vol.Build(local, projection, dir, front, back)

	q := Query{
		Mins:  mins,
		Maxs:  maxs,
		Dir:   dir,
		Token: m.viewCount,
		List:  m.surfaces[:0],
	}
	q.SubModelSurfaces(surfaces)
	return m.tessellate(&q, dir, radiusSquared, buf)
}

func (m *Marker) tessellate(q *Query, dir vec.Vec3, radiusSquared float32, buf Buffers) (int, Stats) {
	stats := Stats{
		Surfaces:             len(q.List),
		SurfaceListTruncated: q.Truncated,
	}
	if len(q.List) == 0 {
		return 0, stats
	}
	asm := assembler{buf: buf, stats: &stats}
	t := tessellator{
		cfg:         &m.cfg,
		world:       m.world,
		vol:         &m.vol,
		dir:         dir,
		asm:         &asm,
		stats:       &stats,
		clip:        &m.clip,
		skipTerrain: m.cfg.MinMarkRadius*m.cfg.MinMarkRadius >= radiusSquared,
	}
	t.process(q.List)
	stats.Points = asm.points

	if m.cfg.Debug && (stats.SurfaceListTruncated || stats.ClipOverflows > 0 || stats.DroppedFragments > 0 || stats.FragmentsFull) {
		slog.Debug("mark fragments",
			slog.String("world", m.world.ID.String()),
			slog.Int("token", q.Token),
			slog.Int("surfaces", stats.Surfaces),
			slog.Bool("truncated", stats.SurfaceListTruncated),
			slog.Int("clipOverflows", stats.ClipOverflows),
			slog.Int("dropped", stats.DroppedFragments),
			slog.Int("fragments", asm.fragments),
			slog.Int("points", asm.points))
	}
	return asm.fragments, stats
}
