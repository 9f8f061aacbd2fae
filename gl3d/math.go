package gl3d

import "github.com/chewxy/math32"

// Scalar is the numeric type used by gl3d math operations.
type Scalar = float32

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z Scalar
}

// Vec4 is a 4D vector.
type Vec4 struct {
	X, Y, Z, W Scalar
}

// Mat4 is a column-major 4x4 matrix.
//
// It matches the conventional OpenGL layout:
// m[col*4+row].
type Mat4 [16]Scalar

func V3(x, y, z Scalar) Vec3    { return Vec3{X: x, Y: y, Z: z} }
func V4(x, y, z, w Scalar) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s Scalar) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func Dot(a, b Vec3) Scalar { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func Len(v Vec3) Scalar {
	return math32.Sqrt(Dot(v, v))
}

// Normalize returns v scaled to unit length, or the zero vector if v is zero.
func Normalize(v Vec3) Vec3 {
	l := Len(v)
	if l == 0 {
		return Vec3{}
	}
	return v.Mul(1 / l)
}

func Clamp01(v Scalar) Scalar {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func Mat4Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mat4Mul returns a·b. Applied to a vector, b acts first.
func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] =
				a[0*4+row]*b[col*4+0] +
					a[1*4+row]*b[col*4+1] +
					a[2*4+row]*b[col*4+2] +
					a[3*4+row]*b[col*4+3]
		}
	}
	return out
}

func Mat4MulV4(m Mat4, v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Mat4MulDir applies the upper 3x3 of m to v (no translation).
func Mat4MulDir(m Mat4, v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

func Mat4RotateY(rad Scalar) Mat4 {
	c := math32.Cos(rad)
	s := math32.Sin(rad)
	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Mat4CameraLookAt returns the camera-to-world matrix for a camera at eye
// looking at target. The camera looks down its own -Z axis.
//
// up must not be parallel to target-eye; the result is undefined otherwise.
func Mat4CameraLookAt(eye, target, up Vec3) Mat4 {
	z := Normalize(eye.Sub(target))
	x := Normalize(Cross(up, z))
	y := Normalize(Cross(z, x))

	// Column-major: the axes are the first three columns.
	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		eye.X, eye.Y, eye.Z, 1,
	}
}

// Mat4Perspective returns a right-handed perspective projection into the
// [-1,1] clip cube. aspect is width/height and must be > 0; 0 < zNear < zFar.
func Mat4Perspective(fovYRad Scalar, aspect Scalar, zNear, zFar Scalar) Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	f := Scalar(1) / math32.Tan(fovYRad/2)
	nf := Scalar(1) / (zNear - zFar)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (zFar + zNear) * nf, -1,
		0, 0, (2 * zFar * zNear) * nf, 0,
	}
}

// Mat4Inverse returns the inverse of m. ok is false when m is singular.
func Mat4Inverse(m Mat4) (inv Mat4, ok bool) {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	b00 := a00*a11 - a01*a10
	b01 := a00*a12 - a02*a10
	b02 := a00*a13 - a03*a10
	b03 := a01*a12 - a02*a11
	b04 := a01*a13 - a03*a11
	b05 := a02*a13 - a03*a12
	b06 := a20*a31 - a21*a30
	b07 := a20*a32 - a22*a30
	b08 := a20*a33 - a23*a30
	b09 := a21*a32 - a22*a31
	b10 := a21*a33 - a23*a31
	b11 := a22*a33 - a23*a32

	det := b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
	if det == 0 {
		return Mat4{}, false
	}
	d := 1 / det

	return Mat4{
		(a11*b11 - a12*b10 + a13*b09) * d,
		(a02*b10 - a01*b11 - a03*b09) * d,
		(a31*b05 - a32*b04 + a33*b03) * d,
		(a22*b04 - a21*b05 - a23*b03) * d,
		(a12*b08 - a10*b11 - a13*b07) * d,
		(a00*b11 - a02*b08 + a03*b07) * d,
		(a32*b02 - a30*b05 - a33*b01) * d,
		(a20*b05 - a22*b02 + a23*b01) * d,
		(a10*b10 - a11*b08 + a13*b06) * d,
		(a01*b08 - a00*b10 - a03*b06) * d,
		(a30*b04 - a31*b02 + a33*b00) * d,
		(a21*b02 - a20*b04 - a23*b00) * d,
		(a11*b07 - a10*b09 - a12*b06) * d,
		(a00*b09 - a01*b07 + a02*b06) * d,
		(a31*b01 - a30*b03 - a32*b00) * d,
		(a20*b03 - a21*b01 + a22*b00) * d,
	}, true
}
