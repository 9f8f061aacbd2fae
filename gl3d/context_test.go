package gl3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx    *Context
	target *RGB565Target
	prog   *Program
	pos    *Buffer
	normal *Buffer
}

func newFixture(t *testing.T, w, h int) *fixture {
	t.Helper()
	tgt := &RGB565Target{Buf: make([]byte, w*h*2), Stride: w * 2, W: w, H: h}
	ctx, err := NewContext(tgt)
	require.NoError(t, err)
	prog, err := NewDirectionalLightProgram()
	require.NoError(t, err)

	f := &fixture{ctx: ctx, target: tgt, prog: prog, pos: ctx.CreateBuffer(), normal: ctx.CreateBuffer()}
	ctx.UseProgram(prog)
	require.NoError(t, ctx.VertexAttribPointer(prog.AttribLocation(AttribPosition), f.pos, 3))
	require.NoError(t, ctx.EnableVertexAttribArray(prog.AttribLocation(AttribPosition)))
	require.NoError(t, ctx.VertexAttribPointer(prog.AttribLocation(AttribNormal), f.normal, 3))
	require.NoError(t, ctx.EnableVertexAttribArray(prog.AttribLocation(AttribNormal)))

	require.NoError(t, ctx.UniformMatrix4fv(prog.UniformLocation(UniformWorldViewProjection), Mat4Identity()))
	require.NoError(t, ctx.UniformMatrix4fv(prog.UniformLocation(UniformWorld), Mat4Identity()))
	require.NoError(t, ctx.Uniform3fv(prog.UniformLocation(UniformReverseLightDirection), V3(0, 0, 1)))
	f.setColor(t, V4(1, 0, 0, 1))

	ctx.ClearColor(RGB(255, 255, 255))
	ctx.Clear(ColorBufferBit | DepthBufferBit)
	return f
}

func (f *fixture) setColor(t *testing.T, c Vec4) {
	t.Helper()
	require.NoError(t, f.ctx.Uniform4fv(f.prog.UniformLocation(UniformColor), c))
}

// load fills the buffers with triangles at depth z facing +Z.
func (f *fixture) load(tris ...[3]Vec3) {
	var pos, nrm []float32
	for _, tri := range tris {
		for _, v := range tri {
			pos = append(pos, v.X, v.Y, v.Z)
			nrm = append(nrm, 0, 0, 1)
		}
	}
	f.pos.Data(pos)
	f.normal.Data(nrm)
}

func ccw(z Scalar) [3]Vec3 { return [3]Vec3{V3(-1, -1, z), V3(1, -1, z), V3(0, 1, z)} }
func cw(z Scalar) [3]Vec3  { return [3]Vec3{V3(-1, -1, z), V3(0, 1, z), V3(1, -1, z)} }

func TestNewContextNoTarget(t *testing.T) {
	_, err := NewContext(nil)
	require.ErrorIs(t, err, ErrNoTarget)

	_, err = NewContext(&RGB565Target{})
	require.ErrorIs(t, err, ErrNoTarget)
}

func TestDrawArraysNoProgram(t *testing.T) {
	ctx, err := NewContext(&RGB565Target{Buf: make([]byte, 8), Stride: 4, W: 2, H: 2})
	require.NoError(t, err)
	require.ErrorIs(t, ctx.DrawArrays(Triangles, 0, 3), ErrNoProgram)
	require.ErrorIs(t, ctx.Uniform3fv(0, Vec3{}), ErrNoProgram)
}

func TestDrawArraysRange(t *testing.T) {
	f := newFixture(t, 8, 8)
	f.load(ccw(0))
	require.ErrorIs(t, f.ctx.DrawArrays(Triangles, 0, 6), ErrRange)
	require.ErrorIs(t, f.ctx.DrawArrays(Triangles, -1, 3), ErrRange)
}

func TestDrawFrontFaceLit(t *testing.T) {
	f := newFixture(t, 8, 8)
	f.ctx.Enable(CullFace | DepthTest)
	f.load(ccw(0))
	require.NoError(t, f.ctx.DrawArrays(Triangles, 0, 3))

	assert.Equal(t, RGB(255, 0, 0), f.target.At(4, 4))
	calls := f.ctx.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].Triangles)
	assert.Equal(t, 0, calls[0].Culled)
}

func TestCullFaceDropsClockwise(t *testing.T) {
	f := newFixture(t, 8, 8)
	f.ctx.Enable(CullFace)
	f.load(cw(0))
	require.NoError(t, f.ctx.DrawArrays(Triangles, 0, 3))
	assert.Equal(t, RGB(255, 255, 255), f.target.At(4, 4))
	assert.Equal(t, 1, f.ctx.Calls()[0].Culled)

	f.ctx.Disable(CullFace)
	require.NoError(t, f.ctx.DrawArrays(Triangles, 0, 3))
	assert.Equal(t, RGB(255, 0, 0), f.target.At(4, 4))
}

func TestDepthTestKeepsNearest(t *testing.T) {
	f := newFixture(t, 8, 8)
	f.ctx.Enable(DepthTest)
	f.load(ccw(-0.5), ccw(0.5))

	// Near first, then far: far must lose.
	f.setColor(t, V4(0, 1, 0, 1))
	require.NoError(t, f.ctx.DrawArrays(Triangles, 0, 3))
	f.setColor(t, V4(1, 0, 0, 1))
	require.NoError(t, f.ctx.DrawArrays(Triangles, 3, 3))
	assert.Equal(t, RGB(0, 255, 0), f.target.At(4, 4))

	f.ctx.Disable(DepthTest)
	require.NoError(t, f.ctx.DrawArrays(Triangles, 3, 3))
	assert.Equal(t, RGB(255, 0, 0), f.target.At(4, 4))
}

func TestClearResetsCallLog(t *testing.T) {
	f := newFixture(t, 8, 8)
	f.load(ccw(0))
	require.NoError(t, f.ctx.DrawArrays(Triangles, 0, 3))
	require.Len(t, f.ctx.Calls(), 1)
	f.ctx.Clear(ColorBufferBit)
	assert.Empty(t, f.ctx.Calls())
}

func TestGuardBandRejectsHugeCoordinates(t *testing.T) {
	for _, mode := range []PolygonMode{PolygonFill, PolygonLine} {
		f := newFixture(t, 8, 8)
		f.ctx.SetPolygonMode(mode)
		wvp := Mat4Identity()
		wvp[0] = 1e12
		require.NoError(t, f.ctx.UniformMatrix4fv(f.prog.UniformLocation(UniformWorldViewProjection), wvp))
		f.load(ccw(0))
		require.NoError(t, f.ctx.DrawArrays(Triangles, 0, 3))
		require.Len(t, f.ctx.Calls(), 1)
		assert.Equal(t, 1, f.ctx.Calls()[0].Clipped, "mode %d", mode)
		assert.Equal(t, RGB(255, 255, 255), f.target.At(4, 4))
	}
}

func TestBehindCameraClipped(t *testing.T) {
	f := newFixture(t, 8, 8)
	f.load(ccw(0))
	// w = -1 for every vertex.
	wvp := Mat4Identity()
	wvp[15] = -1
	require.NoError(t, f.ctx.UniformMatrix4fv(f.prog.UniformLocation(UniformWorldViewProjection), wvp))
	require.NoError(t, f.ctx.DrawArrays(Triangles, 0, 3))
	assert.Equal(t, 1, f.ctx.Calls()[0].Clipped)
	assert.Equal(t, RGB(255, 255, 255), f.target.At(4, 4))
}

func TestPolygonLineDrawsEdgesOnly(t *testing.T) {
	f := newFixture(t, 16, 16)
	f.ctx.SetPolygonMode(PolygonLine)
	f.load(ccw(0))
	require.NoError(t, f.ctx.DrawArrays(Triangles, 0, 3))
	assert.Equal(t, RGB(255, 0, 0), f.target.At(0, 15))
	assert.Equal(t, RGB(255, 255, 255), f.target.At(8, 10))
}

func TestUniformTypeMismatch(t *testing.T) {
	f := newFixture(t, 4, 4)
	err := f.ctx.Uniform3fv(f.prog.UniformLocation(UniformWorld), V3(1, 2, 3))
	require.ErrorIs(t, err, ErrUniformConflict)
	require.ErrorIs(t, f.ctx.Uniform3fv(99, Vec3{}), ErrInvalidLocation)
}
