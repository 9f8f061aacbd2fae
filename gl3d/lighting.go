package gl3d

// Slot names of the directional-light program.
const (
	AttribPosition = "position"
	AttribNormal   = "normal"

	UniformWorldViewProjection   = "worldViewProjection"
	UniformWorld                 = "world"
	UniformColor                 = "color"
	UniformReverseLightDirection = "reverseLightDirection"
)

// DirectionalLightShaders returns the stages of a flat-color program lit by a
// single infinite directional light.
//
// The vertex stage transforms position by worldViewProjection and carries the
// normal into world space with the upper 3x3 of world. The fragment stage
// multiplies color.rgb by the Lambert term dot(normal, reverseLightDirection);
// alpha passes through and negative terms clamp to black on write.
func DirectionalLightShaders() (VertexShader, FragmentShader) {
	vs := VertexShader{
		Attributes: []string{AttribPosition, AttribNormal},
		Uniforms: []Uniform{
			{Name: UniformWorldViewProjection, Type: UniformMat4},
			{Name: UniformWorld, Type: UniformMat4},
		},
		Main: func(u *Uniforms, attrs []Vec3) (Vec4, Vec3) {
			p := attrs[0]
			pos := Mat4MulV4(u.Mat4(UniformWorldViewProjection), Vec4{X: p.X, Y: p.Y, Z: p.Z, W: 1})
			return pos, Mat4MulDir(u.Mat4(UniformWorld), attrs[1])
		},
	}
	fs := FragmentShader{
		Uniforms: []Uniform{
			{Name: UniformColor, Type: UniformVec4},
			{Name: UniformReverseLightDirection, Type: UniformVec3},
		},
		Main: func(u *Uniforms, normal Vec3) Vec4 {
			light := Dot(Normalize(normal), u.Vec3(UniformReverseLightDirection))
			c := u.Vec4(UniformColor)
			return Vec4{X: c.X * light, Y: c.Y * light, Z: c.Z * light, W: c.W}
		},
	}
	return vs, fs
}

// NewDirectionalLightProgram links DirectionalLightShaders.
func NewDirectionalLightProgram() (*Program, error) {
	return LinkProgram(DirectionalLightShaders())
}
