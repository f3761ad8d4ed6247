// SPDX-License-Identifier: GPL-2.0-or-later

// Package snapshot records mark calls for replay. A Record holds the
// input decal and the produced fragments in protobuf wire format so
// runs can be compared bit for bit.
package snapshot

import (
	"math"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"

	"quakemarks/bsp"
	"quakemarks/marks"
	"quakemarks/math/vec"
)

const (
	fieldWorld          protowire.Number = 1
	fieldPoints         protowire.Number = 2
	fieldProjection     protowire.Number = 3
	fieldRadiusSquared  protowire.Number = 4
	fieldFragment       protowire.Number = 5
	fieldFragmentPoints protowire.Number = 6

	fieldFirstPoint protowire.Number = 1
	fieldNumPoints  protowire.Number = 2
	fieldIndex      protowire.Number = 3
)

type Record struct {
	World          uuid.UUID
	Points         []vec.Vec3
	Projection     vec.Vec3
	RadiusSquared  float32
	Fragments      []marks.Fragment
	FragmentPoints []vec.Vec3
}

// Capture builds the record of a call that returned n fragments in buf.
// Fragment points are renumbered to be contiguous from 0.
func Capture(world *bsp.World, points []vec.Vec3, projection vec.Vec3, radiusSquared float32, buf marks.Buffers, n int) Record {
	r := Record{
		World:         world.ID,
		Points:        append([]vec.Vec3(nil), points...),
		Projection:    projection,
		RadiusSquared: radiusSquared,
	}
	for _, f := range buf.Fragments[:n] {
		pts := buf.FragmentPoints(f)
		r.Fragments = append(r.Fragments, marks.Fragment{
			FirstPoint: len(r.FragmentPoints),
			NumPoints:  len(pts),
			Index:      f.Index,
		})
		r.FragmentPoints = append(r.FragmentPoints, pts...)
	}
	return r
}

// Equal reports whether both records are bit identical.
func (r *Record) Equal(o *Record) bool {
	if r.World != o.World ||
		!sameBits(r.Projection, o.Projection) ||
		math.Float32bits(r.RadiusSquared) != math.Float32bits(o.RadiusSquared) ||
		len(r.Points) != len(o.Points) ||
		len(r.Fragments) != len(o.Fragments) ||
		len(r.FragmentPoints) != len(o.FragmentPoints) {
		return false
	}
	for i := range r.Points {
		if !sameBits(r.Points[i], o.Points[i]) {
			return false
		}
	}
	for i := range r.Fragments {
		if r.Fragments[i] != o.Fragments[i] {
			return false
		}
	}
	for i := range r.FragmentPoints {
		if !sameBits(r.FragmentPoints[i], o.FragmentPoints[i]) {
			return false
		}
	}
	return true
}

func sameBits(a, b vec.Vec3) bool {
	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return false
		}
	}
	return true
}

func appendVecs(b []byte, num protowire.Number, vs ...vec.Vec3) []byte {
	if len(vs) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	b = protowire.AppendVarint(b, uint64(len(vs)*3*4))
	for _, v := range vs {
		for _, f := range v {
			b = protowire.AppendFixed32(b, math.Float32bits(f))
		}
	}
	return b
}

func Encode(r *Record) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldWorld, protowire.BytesType)
	b = protowire.AppendBytes(b, r.World[:])
	b = appendVecs(b, fieldPoints, r.Points...)
	b = appendVecs(b, fieldProjection, r.Projection)
	b = protowire.AppendTag(b, fieldRadiusSquared, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, math.Float32bits(r.RadiusSquared))
	for _, f := range r.Fragments {
		var m []byte
		m = protowire.AppendTag(m, fieldFirstPoint, protowire.VarintType)
		m = protowire.AppendVarint(m, uint64(f.FirstPoint))
		m = protowire.AppendTag(m, fieldNumPoints, protowire.VarintType)
		m = protowire.AppendVarint(m, uint64(f.NumPoints))
		m = protowire.AppendTag(m, fieldIndex, protowire.VarintType)
		m = protowire.AppendVarint(m, uint64(f.Index))
		b = protowire.AppendTag(b, fieldFragment, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
	}
	b = appendVecs(b, fieldFragmentPoints, r.FragmentPoints...)
	return b
}

func consumeVecs(v []byte) ([]vec.Vec3, error) {
	if len(v)%12 != 0 {
		return nil, errors.Errorf("packed vectors of %d bytes", len(v))
	}
	out := make([]vec.Vec3, 0, len(v)/12)
	for len(v) > 0 {
		var p vec.Vec3
		for i := range p {
			f, n := protowire.ConsumeFixed32(v)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			p[i] = math.Float32frombits(f)
			v = v[n:]
		}
		out = append(out, p)
	}
	return out, nil
}

func consumeFragment(v []byte) (marks.Fragment, error) {
	var f marks.Fragment
	for len(v) > 0 {
		num, typ, n := protowire.ConsumeTag(v)
		if n < 0 {
			return f, protowire.ParseError(n)
		}
		v = v[n:]
		if typ != protowire.VarintType {
			n = protowire.ConsumeFieldValue(num, typ, v)
			if n < 0 {
				return f, protowire.ParseError(n)
			}
			v = v[n:]
			continue
		}
		x, n := protowire.ConsumeVarint(v)
		if n < 0 {
			return f, protowire.ParseError(n)
		}
		v = v[n:]
		if x > math.MaxInt32 {
			return f, errors.Errorf("field %d value %d out of range", num, x)
		}
		switch num {
		case fieldFirstPoint:
			f.FirstPoint = int(x)
		case fieldNumPoints:
			f.NumPoints = int(x)
		case fieldIndex:
			f.Index = int(x)
		}
	}
	return f, nil
}

// Decode parses an encoded record. Unknown fields are skipped.
func Decode(b []byte) (Record, error) {
	var r Record
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return r, errors.Wrap(protowire.ParseError(n), "bad tag")
		}
		b = b[n:]
		switch {
		case num == fieldRadiusSquared && typ == protowire.Fixed32Type:
			x, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return r, errors.Wrap(protowire.ParseError(n), "bad radius")
			}
			r.RadiusSquared = math.Float32frombits(x)
			b = b[n:]
			continue
		case typ != protowire.BytesType:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return r, errors.Wrapf(protowire.ParseError(n), "bad field %d", num)
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return r, errors.Wrapf(protowire.ParseError(n), "bad field %d", num)
		}
		b = b[n:]
		switch num {
		case fieldWorld:
			id, err := uuid.FromBytes(v)
			if err != nil {
				return r, errors.Wrap(err, "bad world id")
			}
			r.World = id
		case fieldPoints:
			pts, err := consumeVecs(v)
			if err != nil {
				return r, errors.Wrap(err, "bad points")
			}
			r.Points = append(r.Points, pts...)
		case fieldProjection:
			pts, err := consumeVecs(v)
			if err != nil {
				return r, errors.Wrap(err, "bad projection")
			}
			if len(pts) != 1 {
				return r, errors.Errorf("projection with %d vectors", len(pts))
			}
			r.Projection = pts[0]
		case fieldFragment:
			f, err := consumeFragment(v)
			if err != nil {
				return r, errors.Wrap(err, "bad fragment")
			}
			r.Fragments = append(r.Fragments, f)
		case fieldFragmentPoints:
			pts, err := consumeVecs(v)
			if err != nil {
				return r, errors.Wrap(err, "bad fragment points")
			}
			r.FragmentPoints = append(r.FragmentPoints, pts...)
		}
	}
	for i, f := range r.Fragments {
		if f.NumPoints > len(r.FragmentPoints) || f.FirstPoint > len(r.FragmentPoints)-f.NumPoints {
			return r, errors.Errorf("fragment %d out of range", i)
		}
	}
	return r, nil
}

func WriteFile(name string, r *Record) error {
	if err := os.WriteFile(name, Encode(r), 0660); err != nil {
		return errors.Wrap(err, "failed to write snapshot")
	}
	return nil
}

func ReadFile(name string) (Record, error) {
	in, err := os.ReadFile(name)
	if err != nil {
		return Record{}, errors.Wrap(err, "failed to read snapshot")
	}
	r, err := Decode(in)
	if err != nil {
		return Record{}, errors.Wrap(err, "failed to decode snapshot")
	}
	return r, nil
}
