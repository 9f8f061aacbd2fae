package scene

import (
	"errors"
	"fmt"

	"glyphlight/gl3d"
	"glyphlight/glyphs"
)

var ErrMissingSlot = errors.New("scene: program slot not found")

// Device is the part of a graphics context the draw sequence uses.
// *gl3d.Context implements it.
type Device interface {
	CreateBuffer() *gl3d.Buffer
	Viewport(x, y, w, h int)
	ClearColor(c gl3d.Color)
	Clear(mask gl3d.ClearMask)
	Enable(c gl3d.Capability)
	UseProgram(p *gl3d.Program)
	VertexAttribPointer(loc int, buf *gl3d.Buffer, size int) error
	EnableVertexAttribArray(loc int) error
	UniformMatrix4fv(loc int, m gl3d.Mat4) error
	Uniform4fv(loc int, v gl3d.Vec4) error
	Uniform3fv(loc int, v gl3d.Vec3) error
	DrawArrays(mode gl3d.Primitive, first, count int) error
}

// Light is the single directional light of the scene.
type Light struct {
	Direction gl3d.Vec3
	Color     gl3d.Vec4
}

// Item is one glyph draw: a vertex range and its flat color.
type Item struct {
	Range glyphs.Range
	Color gl3d.Vec4
}

// RenderConfig is the static part of the draw sequence.
type RenderConfig struct {
	Camera     Camera
	Light      Light
	Background gl3d.Color
	Items      []Item
}

type locations struct {
	position        int
	normal          int
	wvp             int
	world           int
	color           int
	reverseLightDir int
}

// Renderer issues the per-frame draw sequence for a glyph set.
type Renderer struct {
	cfg  RenderConfig
	prog *gl3d.Program
	loc  locations

	positions *gl3d.Buffer
	normals   *gl3d.Buffer
	reverse   gl3d.Vec3
}

// NewRenderer resolves the program slots by name and uploads the geometry.
func NewRenderer(dev Device, prog *gl3d.Program, set *glyphs.Set, cfg RenderConfig) (*Renderer, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}
	loc := locations{
		position:        prog.AttribLocation(gl3d.AttribPosition),
		normal:          prog.AttribLocation(gl3d.AttribNormal),
		wvp:             prog.UniformLocation(gl3d.UniformWorldViewProjection),
		world:           prog.UniformLocation(gl3d.UniformWorld),
		color:           prog.UniformLocation(gl3d.UniformColor),
		reverseLightDir: prog.UniformLocation(gl3d.UniformReverseLightDirection),
	}
	for name, l := range map[string]int{
		gl3d.AttribPosition:               loc.position,
		gl3d.AttribNormal:                 loc.normal,
		gl3d.UniformWorldViewProjection:   loc.wvp,
		gl3d.UniformWorld:                 loc.world,
		gl3d.UniformColor:                 loc.color,
		gl3d.UniformReverseLightDirection: loc.reverseLightDir,
	} {
		if l < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingSlot, name)
		}
	}

	r := &Renderer{
		cfg:       cfg,
		prog:      prog,
		loc:       loc,
		positions: dev.CreateBuffer(),
		normals:   dev.CreateBuffer(),
		reverse:   gl3d.Normalize(cfg.Light.Direction),
	}
	r.positions.Data(set.Positions)
	r.normals.Data(set.Normals)
	return r, nil
}

// Draw renders one frame into a w×h surface at the given rotation and
// returns the matrices it used.
func (r *Renderer) Draw(dev Device, w, h int, angle float64) (Frame, error) {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	f := BuildFrame(r.cfg.Camera, aspect, angle)

	dev.Viewport(0, 0, w, h)
	dev.ClearColor(r.cfg.Background)
	dev.Clear(gl3d.ColorBufferBit | gl3d.DepthBufferBit)
	dev.Enable(gl3d.CullFace)
	dev.Enable(gl3d.DepthTest)
	dev.UseProgram(r.prog)

	steps := []func() error{
		func() error { return dev.EnableVertexAttribArray(r.loc.position) },
		func() error { return dev.VertexAttribPointer(r.loc.position, r.positions, 3) },
		func() error { return dev.EnableVertexAttribArray(r.loc.normal) },
		func() error { return dev.VertexAttribPointer(r.loc.normal, r.normals, 3) },
		func() error { return dev.UniformMatrix4fv(r.loc.wvp, f.WorldViewProjection) },
		func() error { return dev.UniformMatrix4fv(r.loc.world, f.World) },
		func() error { return dev.Uniform4fv(r.loc.color, r.cfg.Light.Color) },
		func() error { return dev.Uniform3fv(r.loc.reverseLightDir, r.reverse) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return f, fmt.Errorf("draw setup: %w", err)
		}
	}

	for _, it := range r.cfg.Items {
		if err := dev.Uniform4fv(r.loc.color, it.Color); err != nil {
			return f, fmt.Errorf("draw %s: %w", it.Range.Name, err)
		}
		if err := dev.DrawArrays(gl3d.Triangles, it.Range.First, it.Range.Count); err != nil {
			return f, fmt.Errorf("draw %s: %w", it.Range.Name, err)
		}
	}
	return f, nil
}
