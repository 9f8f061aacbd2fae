// Package glyphs holds the static geometry of the three extruded glyphs
// "D", "A" and "0".
//
// The geometry is a flat, non-indexed triangle list: one float array of
// positions and one of normals, three components per vertex. Each glyph is a
// contiguous range of it, made of quads ("faces") of two triangles each.
package glyphs

import (
	"errors"
	"fmt"
)

// VerticesPerFace is the number of vertices a face contributes.
const VerticesPerFace = 6

// Depth is the extrusion thickness. Glyphs span z in [-Depth/2, Depth/2].
const Depth = 30

var ErrMalformed = errors.New("glyphs: malformed geometry")

// Range is one glyph's span of the vertex list.
type Range struct {
	Name  string
	Faces int
	First int // first vertex
	Count int // vertex count
}

// End returns the vertex index one past the range.
func (r Range) End() int { return r.First + r.Count }

// Set is the complete geometry of all glyphs.
type Set struct {
	Positions []float32
	Normals   []float32
	Ranges    []Range
}

// VertexCount returns the number of vertices in the set.
func (s *Set) VertexCount() int { return len(s.Positions) / 3 }

// Range returns the range of a glyph by name.
func (s *Set) Range(name string) (Range, bool) {
	for _, r := range s.Ranges {
		if r.Name == name {
			return r, true
		}
	}
	return Range{}, false
}

// Validate checks that positions and normals agree in length and that the
// ranges tile the vertex list in order, each a whole number of triangles.
func (s *Set) Validate() error {
	if len(s.Positions)%3 != 0 || len(s.Positions) != len(s.Normals) {
		return fmt.Errorf("%w: %d positions, %d normals", ErrMalformed, len(s.Positions), len(s.Normals))
	}
	next := 0
	for _, r := range s.Ranges {
		if r.First != next || r.Count%3 != 0 || r.Count != r.Faces*VerticesPerFace {
			return fmt.Errorf("%w: range %q [%d,%d) with %d faces", ErrMalformed, r.Name, r.First, r.End(), r.Faces)
		}
		next = r.End()
	}
	if next != s.VertexCount() {
		return fmt.Errorf("%w: ranges cover %d of %d vertices", ErrMalformed, next, s.VertexCount())
	}
	return nil
}

// Glyph names in draw order.
const (
	NameD    = "D"
	NameA    = "A"
	NameZero = "0"
)

// Layout offsets in world units. Profiles are authored from a (0,0) corner
// and 150 units tall.
const (
	offsetD    = -180
	offsetA    = -50
	offsetZero = 80
	baseline   = -40
)

// Build returns the geometry of D, A and 0, in that order.
func Build() *Set {
	b := &builder{}
	s := &Set{}
	for _, g := range []struct {
		name string
		fn   func(*builder)
	}{
		{NameD, buildD},
		{NameA, buildA},
		{NameZero, buildZero},
	} {
		first, faces := b.vertices(), b.faces
		g.fn(b)
		s.Ranges = append(s.Ranges, Range{
			Name:  g.name,
			Faces: b.faces - faces,
			First: first,
			Count: b.vertices() - first,
		})
	}
	s.Positions = b.pos
	s.Normals = b.nrm
	return s
}

func buildD(b *builder) {
	b.origin = pt{offsetD, baseline}
	outer := []pt{{0, 0}, {60, 0}, {100, 40}, {100, 110}, {60, 150}, {0, 150}}
	inner := []pt{{30, 30}, {50, 30}, {70, 50}, {70, 100}, {50, 120}, {30, 120}}
	b.band(outer, inner, false)

	// Stem band, split at mid-height.
	stem := [][4]pt{
		{{0, 150}, {0, 75}, {30, 75}, {30, 120}},
		{{0, 75}, {0, 0}, {30, 30}, {30, 75}},
	}
	for _, q := range stem {
		b.caps(q)
	}
	b.walls(outer, true)
	b.walls(inner, false)
}

func buildA(b *builder) {
	b.origin = pt{offsetA, baseline}
	b.prism([]pt{{0, 0}, {26, 0}, {56, 135}, {36, 135}}, nil)
	b.prism([]pt{{74, 0}, {100, 0}, {64, 135}, {44, 135}}, nil)
	// Apex cap sits on the legs, so it has no underside.
	b.prism([]pt{{34, 135}, {66, 135}, {66, 150}, {34, 150}}, []bool{false, true, true, true})
	// Crossbar ends are buried in the legs.
	b.prism([]pt{{30, 50}, {70, 50}, {70, 70}, {30, 70}}, []bool{true, false, true, false})
}

func buildZero(b *builder) {
	b.origin = pt{offsetZero, baseline}
	outer := []pt{{0, 0}, {80, 0}, {80, 150}, {0, 150}}
	inner := []pt{{25, 25}, {55, 25}, {55, 125}, {25, 125}}
	b.band(outer, inner, true)
	b.walls(outer, true)
	b.walls(inner, false)
}
