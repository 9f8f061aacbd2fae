package scene

import (
	"bytes"
	"fmt"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphlight/gl3d"
	"glyphlight/glyphs"
)

func testAnimation() Animation {
	return Animation{Speed: 0.01, Step: 0.005, MinSpeed: 0.001, AutoRotate: true}
}

func defaultCamera() Camera {
	return Camera{
		Eye:    gl3d.V3(80, -500, 550),
		Target: gl3d.V3(0, 35, 0),
		Up:     gl3d.V3(0, 1, 0),
		FOVDeg: 60,
		Near:   1,
		Far:    2000,
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 1, -1, 45, 90, -360, 360, 1234.5678, 1e-9, -7e5} {
		assert.InDelta(t, x, RadToDeg(DegToRad(x)), 1e-9*math.Max(1, math.Abs(x)))
	}
	assert.InDelta(t, math.Pi, DegToRad(180), 1e-12)
}

func TestControllerSpeedFloor(t *testing.T) {
	s := &State{Speed: 0.01}
	c := NewController(s, SpeedLimits{Step: 0.005, Min: 0.001}, nil)

	for range 3 {
		c.SlowDown()
	}
	assert.Equal(t, 0.001, s.Speed, "0.01 minus three steps stops at the floor")

	c.SpeedUp()
	c.SpeedUp()
	assert.InDelta(t, 0.011, s.Speed, 1e-12)
	for range 10 {
		c.SlowDown()
	}
	assert.Equal(t, 0.001, s.Speed)
}

func TestControllerPauseAndLogs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := &State{}
	c := NewController(s, SpeedLimits{Step: 0.005, Min: 0.001}, log)

	c.TogglePause()
	assert.True(t, s.Paused)
	c.TogglePause()
	assert.False(t, s.Paused)
	assert.Contains(t, buf.String(), "animation paused")
	assert.Contains(t, buf.String(), "animation resumed")
}

func TestResetIsNoOp(t *testing.T) {
	s := &State{Angle: 1.25, Speed: 0.02, AutoRotate: true, Paused: true}
	before := *s
	NewController(s, SpeedLimits{Step: 0.005, Min: 0.001}, nil).Reset()
	assert.Equal(t, before, *s)
}

func TestBindings(t *testing.T) {
	b := DefaultBindings()
	require.NoError(t, b.Validate())
	assert.Equal(t, ActionTogglePause, b.Lookup(' '))
	assert.Equal(t, ActionSpeedUp, b.Lookup('+'))
	assert.Equal(t, ActionSlowDown, b.Lookup('-'))
	assert.Equal(t, ActionReset, b.Lookup('r'))
	assert.Equal(t, ActionNone, b.Lookup('x'))
	assert.Equal(t, ActionNone, b.Lookup(0))

	b.SlowDown = '+'
	assert.Error(t, b.Validate())
	b = DefaultBindings()
	b.Reset = 0
	assert.Error(t, b.Validate())
}

func TestLoopFrameLocked(t *testing.T) {
	anim := testAnimation()
	anim.FrameLocked = true
	l := NewLoop(anim, nil)
	for i := 0; i < 3; i++ {
		l.Tick(time.Second)
	}
	assert.InDelta(t, 0.03, l.State().Angle, 1e-12)
	assert.Equal(t, uint64(3), l.Ticks())
}

func TestLoopDeltaTime(t *testing.T) {
	l := NewLoop(testAnimation(), nil)
	l.Tick(50 * time.Millisecond)
	assert.InDelta(t, 0.03, l.State().Angle, 1e-12)

	// At 20 Hz the angle covers the same ground per second as at 40 Hz.
	l20 := NewLoop(testAnimation(), nil)
	l40 := NewLoop(testAnimation(), nil)
	for range 20 {
		l20.Tick(50 * time.Millisecond)
	}
	for range 40 {
		l40.Tick(25 * time.Millisecond)
	}
	assert.InDelta(t, 0.6, l20.State().Angle, 1e-9)
	assert.InDelta(t, l40.State().Angle, l20.State().Angle, 1e-9)

	// 30 Hz and 60 Hz agree up to the nanosecond truncation of their periods.
	l30 := NewLoop(testAnimation(), nil)
	l60 := NewLoop(testAnimation(), nil)
	for range 30 {
		l30.Tick(time.Second / 30)
	}
	for range 60 {
		l60.Tick(time.Second / 60)
	}
	assert.InDelta(t, l60.State().Angle, l30.State().Angle, 1e-7)

	// Steps faster than the clock resolution measure zero and do not advance.
	l0 := NewLoop(testAnimation(), nil)
	l0.Tick(0)
	assert.Zero(t, l0.State().Angle)
	l0.TickFrame()
	assert.InDelta(t, 0.01, l0.State().Angle, 1e-12)
}

func TestLoopPauseAndResume(t *testing.T) {
	l := NewLoop(testAnimation(), nil)
	l.TickFrame()
	frozen := l.State().Angle
	require.InDelta(t, 0.01, frozen, 1e-12)

	l.Queue(ActionTogglePause)
	l.TickFrame()
	assert.Equal(t, frozen, l.State().Angle, "pause applies before the advance")
	for range 5 {
		l.Tick(time.Second)
	}
	assert.Equal(t, frozen, l.State().Angle)

	l.Queue(ActionTogglePause)
	l.TickFrame()
	assert.InDelta(t, frozen+0.01, l.State().Angle, 1e-12, "resumes from the frozen angle")
}

func TestLoopManual(t *testing.T) {
	anim := testAnimation()
	anim.AutoRotate = false
	m := NewLoop(anim, nil)
	m.TickFrame()
	assert.Zero(t, m.State().Angle)
}

func TestLoopSpeedKeysApplyBeforeAdvance(t *testing.T) {
	l := NewLoop(testAnimation(), nil)
	l.Queue(ActionSpeedUp)
	assert.InDelta(t, 0.015, l.TickFrame().Angle, 1e-12)

	l.Queue(ActionSlowDown)
	l.Queue(ActionSlowDown)
	assert.InDelta(t, 0.02, l.TickFrame().Angle, 1e-12)
}

func TestLoopSliderWinsOverAdvance(t *testing.T) {
	l := NewLoop(testAnimation(), nil)
	l.QueueRotation(DegToRad(90))
	s := l.TickFrame()
	assert.InDelta(t, math.Pi/2, s.Angle, 1e-12)

	l.QueueRotation(1)
	l.QueueRotation(2)
	l.Queue(ActionSpeedUp)
	assert.Equal(t, 2.0, l.TickFrame().Angle, "slider write is applied last")

	l.Queue(ActionNone)
	l.Queue(ActionSpeedUp)
	assert.InDelta(t, 0.02, l.TickFrame().Speed, 1e-12)
}

func TestBuildFrameDeterministic(t *testing.T) {
	a := BuildFrame(defaultCamera(), 1, 0)
	b := BuildFrame(defaultCamera(), 1, 0)
	assert.Equal(t, a, b)
	assert.Equal(t, gl3d.Mat4Identity(), a.World)
	assert.Equal(t, a.ViewProjection, a.WorldViewProjection)

	id := gl3d.Mat4Mul(a.Camera, a.View)
	want := gl3d.Mat4Identity()
	for i := range id {
		assert.InDelta(t, want[i], id[i], 5e-3, "element %d", i)
	}
}

func TestBuildFrameTargetAtCentre(t *testing.T) {
	cam := defaultCamera()
	for _, angle := range []float64{0, 1, -2.5} {
		f := BuildFrame(cam, 16.0/9, angle)
		// The target lies on the rotation axis, so rotation does not move it.
		p := gl3d.Mat4MulV4(f.WorldViewProjection, gl3d.V4(cam.Target.X, cam.Target.Y, cam.Target.Z, 1))
		require.Greater(t, p.W, float32(0))
		assert.InDelta(t, 0, p.X/p.W, 1e-3)
		assert.InDelta(t, 0, p.Y/p.W, 1e-3)
		assert.Greater(t, p.Z/p.W, float32(-1))
		assert.Less(t, p.Z/p.W, float32(1))
	}
}

// recorder wraps a context and logs the calls the draw sequence makes.
type recorder struct {
	*gl3d.Context
	log []string
}

func (r *recorder) Uniform4fv(loc int, v gl3d.Vec4) error {
	r.log = append(r.log, fmt.Sprintf("color %v", v))
	return r.Context.Uniform4fv(loc, v)
}

func (r *recorder) DrawArrays(mode gl3d.Primitive, first, count int) error {
	r.log = append(r.log, fmt.Sprintf("draw %d %d", first, count))
	return r.Context.DrawArrays(mode, first, count)
}

func newTestRenderer(t *testing.T, w, h int) (*Renderer, *recorder, *gl3d.RGB565Target) {
	t.Helper()
	tgt := &gl3d.RGB565Target{Buf: make([]byte, w*h*2), Stride: w * 2, W: w, H: h}
	ctx, err := gl3d.NewContext(tgt)
	require.NoError(t, err)
	prog, err := gl3d.NewDirectionalLightProgram()
	require.NoError(t, err)

	set := glyphs.Build()
	colors := []gl3d.Vec4{gl3d.V4(1, 0.2, 0.2, 1), gl3d.V4(0.2, 1, 0.2, 1), gl3d.V4(0.2, 0.2, 1, 1)}
	var items []Item
	for i, r := range set.Ranges {
		items = append(items, Item{Range: r, Color: colors[i]})
	}
	rec := &recorder{Context: ctx}
	r, err := NewRenderer(rec, prog, set, RenderConfig{
		Camera:     defaultCamera(),
		Light:      Light{Direction: gl3d.V3(0.5, 0.7, 1), Color: gl3d.V4(0.2, 1, 0.2, 1)},
		Background: gl3d.RGB(255, 255, 255),
		Items:      items,
	})
	require.NoError(t, err)
	return r, rec, tgt
}

func TestRendererDrawSequence(t *testing.T) {
	r, rec, tgt := newTestRenderer(t, 96, 96)
	_, err := r.Draw(rec, 96, 96, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"color {0.2 1 0.2 1}",
		"color {1 0.2 0.2 1}",
		"draw 0 156",
		"color {0.2 1 0.2 1}",
		"draw 156 126",
		"color {0.2 0.2 1 1}",
		"draw 282 96",
	}, rec.log)

	calls := rec.Calls()
	require.Len(t, calls, 3)
	drawn := 0
	for _, c := range calls {
		drawn += c.Triangles
		assert.Positive(t, c.Culled, "closed solids always have hidden faces")
	}
	assert.Positive(t, drawn)
	assert.True(t, rec.IsEnabled(gl3d.CullFace|gl3d.DepthTest))

	// Something other than the background was drawn.
	painted := 0
	for y := 0; y < 96; y++ {
		for x := 0; x < 96; x++ {
			if tgt.At(x, y) != gl3d.RGB(255, 255, 255) {
				painted++
			}
		}
	}
	assert.Positive(t, painted)
}

func TestNewRendererMissingSlot(t *testing.T) {
	vs, fs := gl3d.DirectionalLightShaders()
	fs.Uniforms = fs.Uniforms[:1]
	prog, err := gl3d.LinkProgram(vs, fs)
	require.NoError(t, err)

	tgt := &gl3d.RGB565Target{Buf: make([]byte, 8), Stride: 4, W: 2, H: 2}
	ctx, err := gl3d.NewContext(tgt)
	require.NoError(t, err)
	_, err = NewRenderer(ctx, prog, glyphs.Build(), RenderConfig{})
	require.ErrorIs(t, err, ErrMissingSlot)
}
