package glyphs

import "glyphlight/gl3d"

type pt struct{ x, y float32 }

// builder appends faces to a triangle list. Profiles are authored in the XY
// plane and extruded along Z.
type builder struct {
	origin pt
	pos    []float32
	nrm    []float32
	faces  int
}

const halfDepth = float32(Depth) / 2

func (b *builder) vertices() int { return len(b.pos) / 3 }

func (b *builder) at(p pt, z float32) gl3d.Vec3 {
	return gl3d.V3(p.x+b.origin.x, p.y+b.origin.y, z)
}

// quad appends the planar quad q as triangles (0,1,2) and (0,2,3), reversing
// the corner order when needed so both wind counter-clockwise seen from the
// side n points to.
func (b *builder) quad(q [4]gl3d.Vec3, n gl3d.Vec3) {
	n = gl3d.Normalize(n)
	if gl3d.Dot(gl3d.Cross(q[1].Sub(q[0]), q[2].Sub(q[0])), n) < 0 {
		q[1], q[3] = q[3], q[1]
	}
	for _, i := range [...]int{0, 1, 2, 0, 2, 3} {
		b.pos = append(b.pos, q[i].X, q[i].Y, q[i].Z)
		b.nrm = append(b.nrm, n.X, n.Y, n.Z)
	}
	b.faces++
}

// caps appends the front (+Z) and back (-Z) faces of a convex profile quad.
func (b *builder) caps(q [4]pt) {
	for _, z := range [...]float32{halfDepth, -halfDepth} {
		b.quad([4]gl3d.Vec3{b.at(q[0], z), b.at(q[1], z), b.at(q[2], z), b.at(q[3], z)}, gl3d.V3(0, 0, z))
	}
}

// band appends the caps of the ring between two loops of equal length, one
// quad per edge. An open band skips the closing edge.
func (b *builder) band(outer, inner []pt, closed bool) {
	n := len(outer)
	last := n - 1
	if closed {
		last = n
	}
	for i := 0; i < last; i++ {
		j := (i + 1) % n
		b.caps([4]pt{outer[i], outer[j], inner[j], inner[i]})
	}
}

// walls appends the side faces of a counter-clockwise loop. Outer walls face
// away from the loop interior, hole walls face into it.
func (b *builder) walls(loop []pt, outer bool) {
	for i := range loop {
		b.wall(loop[i], loop[(i+1)%len(loop)], outer)
	}
}

func (b *builder) wall(p, q pt, outer bool) {
	n := gl3d.V3(q.y-p.y, p.x-q.x, 0)
	if !outer {
		n = n.Mul(-1)
	}
	b.quad([4]gl3d.Vec3{
		b.at(p, halfDepth), b.at(q, halfDepth),
		b.at(q, -halfDepth), b.at(p, -halfDepth),
	}, n)
}

// prism appends a solid extruded from a convex counter-clockwise quad. mask
// selects which walls to emit (wall i runs from loop[i] to loop[i+1]); nil
// emits all of them.
func (b *builder) prism(loop []pt, mask []bool) {
	b.caps([4]pt(loop))
	for i := range loop {
		if mask == nil || mask[i] {
			b.wall(loop[i], loop[(i+1)%len(loop)], true)
		}
	}
}
