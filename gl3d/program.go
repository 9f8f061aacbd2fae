package gl3d

import (
	"errors"
	"fmt"
)

var (
	ErrNoShaderMain    = errors.New("gl3d: shader stage has no main function")
	ErrUniformConflict = errors.New("gl3d: uniform declared with conflicting types")
	ErrDuplicateName   = errors.New("gl3d: duplicate attribute name")
)

// UniformType is the value type of a uniform slot.
type UniformType uint8

const (
	UniformVec3 UniformType = iota + 1
	UniformVec4
	UniformMat4
)

func (t UniformType) String() string {
	switch t {
	case UniformVec3:
		return "vec3"
	case UniformVec4:
		return "vec4"
	case UniformMat4:
		return "mat4"
	default:
		return "unknown"
	}
}

// Uniform declares a named uniform slot used by a shader stage.
type Uniform struct {
	Name string
	Type UniformType
}

// VertexShader is the per-vertex stage. attrs holds one value per declared
// attribute, in declaration order. It returns the clip-space position and one
// varying that is handed to the fragment stage.
type VertexShader struct {
	Attributes []string
	Uniforms   []Uniform
	Main       func(u *Uniforms, attrs []Vec3) (position Vec4, varying Vec3)
}

// FragmentShader is the per-triangle color stage. It returns an RGBA color in
// [0,1]; out-of-range components are clamped when written.
type FragmentShader struct {
	Uniforms []Uniform
	Main     func(u *Uniforms, varying Vec3) Vec4
}

// Program is a linked vertex + fragment pair with its uniform storage.
type Program struct {
	vs VertexShader
	fs FragmentShader

	uniforms Uniforms
}

// LinkProgram links two stages. Uniforms declared by both stages share one
// slot and must agree on type.
func LinkProgram(vs VertexShader, fs FragmentShader) (*Program, error) {
	if vs.Main == nil || fs.Main == nil {
		return nil, ErrNoShaderMain
	}
	seen := make(map[string]bool, len(vs.Attributes))
	for _, name := range vs.Attributes {
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		seen[name] = true
	}

	p := &Program{vs: vs, fs: fs}
	p.uniforms.index = make(map[string]int)
	for _, decls := range [][]Uniform{vs.Uniforms, fs.Uniforms} {
		for _, d := range decls {
			if loc, ok := p.uniforms.index[d.Name]; ok {
				if p.uniforms.decls[loc].Type != d.Type {
					return nil, fmt.Errorf("%w: %q is %s and %s", ErrUniformConflict, d.Name, p.uniforms.decls[loc].Type, d.Type)
				}
				continue
			}
			p.uniforms.index[d.Name] = len(p.uniforms.decls)
			p.uniforms.decls = append(p.uniforms.decls, d)
		}
	}
	p.uniforms.vals = make([]Mat4, len(p.uniforms.decls))
	return p, nil
}

// AttribLocation returns the slot of a vertex attribute or -1 if the program
// does not declare it.
func (p *Program) AttribLocation(name string) int {
	if p == nil {
		return -1
	}
	for i, a := range p.vs.Attributes {
		if a == name {
			return i
		}
	}
	return -1
}

// UniformLocation returns the slot of a uniform or -1 if the program does not
// declare it.
func (p *Program) UniformLocation(name string) int {
	if p == nil {
		return -1
	}
	if loc, ok := p.uniforms.index[name]; ok {
		return loc
	}
	return -1
}

// Uniforms is the uniform storage of a linked program. Unset uniforms read as
// zero.
type Uniforms struct {
	decls []Uniform
	index map[string]int
	vals  []Mat4
}

func (u *Uniforms) slot(name string) *Mat4 {
	loc, ok := u.index[name]
	if !ok {
		return nil
	}
	return &u.vals[loc]
}

func (u *Uniforms) Mat4(name string) Mat4 {
	if s := u.slot(name); s != nil {
		return *s
	}
	return Mat4{}
}

func (u *Uniforms) Vec4(name string) Vec4 {
	if s := u.slot(name); s != nil {
		return Vec4{s[0], s[1], s[2], s[3]}
	}
	return Vec4{}
}

func (u *Uniforms) Vec3(name string) Vec3 {
	if s := u.slot(name); s != nil {
		return Vec3{s[0], s[1], s[2]}
	}
	return Vec3{}
}

func (u *Uniforms) set(loc int, typ UniformType, v Mat4) error {
	if loc < 0 || loc >= len(u.vals) {
		return fmt.Errorf("%w: uniform location %d", ErrInvalidLocation, loc)
	}
	if u.decls[loc].Type != typ {
		return fmt.Errorf("%w: %q is %s, got %s", ErrUniformConflict, u.decls[loc].Name, u.decls[loc].Type, typ)
	}
	u.vals[loc] = v
	return nil
}
