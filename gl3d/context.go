package gl3d

import (
	"errors"
	"fmt"
)

var (
	ErrNoTarget        = errors.New("gl3d: no drawable target")
	ErrNoProgram       = errors.New("gl3d: no program in use")
	ErrInvalidLocation = errors.New("gl3d: invalid location")
	ErrAttribDisabled  = errors.New("gl3d: attribute not enabled")
	ErrRange           = errors.New("gl3d: draw range exceeds buffer")
)

// Capability is a toggleable pipeline stage.
type Capability uint8

const (
	CullFace Capability = 1 << iota
	DepthTest
)

// ClearMask selects the buffers cleared by Clear.
type ClearMask uint8

const (
	ColorBufferBit ClearMask = 1 << iota
	DepthBufferBit
)

// Primitive is the primitive type of a draw.
type Primitive uint8

const (
	Triangles Primitive = iota
)

// PolygonMode selects how triangles are rasterized.
type PolygonMode uint8

const (
	PolygonFill PolygonMode = iota
	PolygonLine
)

// Buffer is a vertex buffer of float components.
type Buffer struct {
	data []float32
}

// Data replaces the buffer contents with a copy of v.
func (b *Buffer) Data(v []float32) {
	b.data = append(b.data[:0], v...)
}

// Len returns the number of floats stored.
func (b *Buffer) Len() int { return len(b.data) }

type attribBinding struct {
	buf     *Buffer
	size    int
	enabled bool
}

// DrawCall records one DrawArrays call since the last color clear.
type DrawCall struct {
	Mode      Primitive
	First     int
	Count     int
	Triangles int // rasterized
	Culled    int // rejected by face culling
	Clipped   int // behind the camera or outside the guard band
}

// Viewport is a pixel rectangle of the target.
type Viewport struct {
	X, Y, W, H int
}

const maxAttribs = 8

// Context is the state machine all drawing goes through. It is not safe for
// concurrent use.
type Context struct {
	target Target

	viewport    Viewport
	clearColor  Color
	caps        Capability
	polygonMode PolygonMode
	program     *Program
	attribs     [maxAttribs]attribBinding

	depthBuf []float32
	depthW   int
	depthH   int

	calls []DrawCall
	attrs []Vec3
}

// NewContext creates a context drawing into t. It fails with ErrNoTarget when
// t is nil or has no pixels.
func NewContext(t Target) (*Context, error) {
	if t == nil {
		return nil, ErrNoTarget
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrNoTarget, w, h)
	}
	return &Context{
		target:     t,
		viewport:   Viewport{W: w, H: h},
		clearColor: RGBA(0, 0, 0, 0),
	}, nil
}

// SetTarget redirects drawing, e.g. after the backing surface was resized.
func (c *Context) SetTarget(t Target) error {
	if t == nil {
		return ErrNoTarget
	}
	c.target = t
	return nil
}

func (c *Context) Target() Target { return c.target }

func (c *Context) Viewport(x, y, w, h int) {
	c.viewport = Viewport{X: x, Y: y, W: w, H: h}
}

func (c *Context) ClearColor(col Color) { c.clearColor = col }

func (c *Context) Enable(cp Capability)  { c.caps |= cp }
func (c *Context) Disable(cp Capability) { c.caps &^= cp }

func (c *Context) IsEnabled(cp Capability) bool { return c.caps&cp == cp }

func (c *Context) SetPolygonMode(m PolygonMode) { c.polygonMode = m }

// Clear clears the selected buffers. Clearing color also resets the draw
// call log.
func (c *Context) Clear(mask ClearMask) {
	w, h := c.target.Size()
	if mask&ColorBufferBit != 0 {
		c.target.Clear(c.clearColor)
		c.calls = c.calls[:0]
	}
	if mask&DepthBufferBit != 0 {
		c.resetDepth(w, h)
	}
}

func (c *Context) resetDepth(w, h int) {
	if w <= 0 || h <= 0 {
		c.depthBuf = nil
		return
	}
	n := w * h
	if cap(c.depthBuf) < n {
		c.depthBuf = make([]float32, n)
	} else {
		c.depthBuf = c.depthBuf[:n]
	}
	c.depthW, c.depthH = w, h
	for i := range c.depthBuf {
		c.depthBuf[i] = 1
	}
}

func (c *Context) CreateBuffer() *Buffer { return &Buffer{} }

func (c *Context) UseProgram(p *Program) { c.program = p }

// VertexAttribPointer binds buf to attribute slot loc with size components
// per vertex (1..3; missing components read as zero).
func (c *Context) VertexAttribPointer(loc int, buf *Buffer, size int) error {
	if loc < 0 || loc >= maxAttribs || buf == nil || size < 1 || size > 3 {
		return fmt.Errorf("%w: attribute %d", ErrInvalidLocation, loc)
	}
	c.attribs[loc].buf = buf
	c.attribs[loc].size = size
	return nil
}

func (c *Context) EnableVertexAttribArray(loc int) error {
	if loc < 0 || loc >= maxAttribs {
		return fmt.Errorf("%w: attribute %d", ErrInvalidLocation, loc)
	}
	c.attribs[loc].enabled = true
	return nil
}

func (c *Context) UniformMatrix4fv(loc int, m Mat4) error {
	if c.program == nil {
		return ErrNoProgram
	}
	return c.program.uniforms.set(loc, UniformMat4, m)
}

func (c *Context) Uniform4fv(loc int, v Vec4) error {
	if c.program == nil {
		return ErrNoProgram
	}
	return c.program.uniforms.set(loc, UniformVec4, Mat4{v.X, v.Y, v.Z, v.W})
}

func (c *Context) Uniform3fv(loc int, v Vec3) error {
	if c.program == nil {
		return ErrNoProgram
	}
	return c.program.uniforms.set(loc, UniformVec3, Mat4{v.X, v.Y, v.Z})
}

// Calls returns the draw calls issued since the last color clear.
func (c *Context) Calls() []DrawCall {
	out := make([]DrawCall, len(c.calls))
	copy(out, c.calls)
	return out
}

// DrawArrays draws count vertices starting at first from the enabled
// attribute buffers. A trailing partial triangle is ignored.
func (c *Context) DrawArrays(mode Primitive, first, count int) error {
	p := c.program
	if p == nil {
		return ErrNoProgram
	}
	if first < 0 || count < 0 {
		return fmt.Errorf("%w: first=%d count=%d", ErrRange, first, count)
	}
	for i, name := range p.vs.Attributes {
		b := c.attribs[i]
		if !b.enabled || b.buf == nil {
			return fmt.Errorf("%w: %q", ErrAttribDisabled, name)
		}
		if (first+count)*b.size > len(b.buf.data) {
			return fmt.Errorf("%w: %q has %d vertices, need %d", ErrRange, name, len(b.buf.data)/b.size, first+count)
		}
	}

	w, h := c.target.Size()
	if c.caps&DepthTest != 0 && (len(c.depthBuf) != w*h || c.depthW != w) {
		c.resetDepth(w, h)
	}

	call := DrawCall{Mode: mode, First: first, Count: count}
	nattr := len(p.vs.Attributes)
	if cap(c.attrs) < nattr*3 {
		c.attrs = make([]Vec3, nattr*3)
	}
	attrs := c.attrs[:nattr*3]

	for v := first; v+2 < first+count; v += 3 {
		var tri [3]shadedVertex
		for k := 0; k < 3; k++ {
			in := attrs[k*nattr : (k+1)*nattr]
			for i := range in {
				in[i] = c.fetch(i, v+k)
			}
			tri[k].clip, tri[k].varying = p.vs.Main(&p.uniforms, in)
		}
		switch c.rasterTriangle(p, tri) {
		case triDrawn:
			call.Triangles++
		case triCulled:
			call.Culled++
		case triClipped:
			call.Clipped++
		}
	}

	c.calls = append(c.calls, call)
	return nil
}

func (c *Context) fetch(loc, vertex int) Vec3 {
	b := c.attribs[loc]
	off := vertex * b.size
	var out [3]Scalar
	copy(out[:b.size], b.buf.data[off:off+b.size])
	return Vec3{out[0], out[1], out[2]}
}
