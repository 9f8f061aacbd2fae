package scene

import "glyphlight/gl3d"

// Camera is the fixed viewpoint of the scene.
type Camera struct {
	Eye    gl3d.Vec3
	Target gl3d.Vec3
	Up     gl3d.Vec3
	FOVDeg float64
	Near   float64
	Far    float64
}

// Frame holds every matrix derived for one frame.
type Frame struct {
	Projection          gl3d.Mat4
	Camera              gl3d.Mat4 // camera to world
	View                gl3d.Mat4 // world to camera
	ViewProjection      gl3d.Mat4
	World               gl3d.Mat4
	WorldViewProjection gl3d.Mat4
}

// BuildFrame derives the frame matrices for a rotation of angle radians about
// the world Y axis. aspect is the drawing surface width over height.
func BuildFrame(cam Camera, aspect, angle float64) Frame {
	var f Frame
	f.Projection = gl3d.Mat4Perspective(
		gl3d.Scalar(DegToRad(cam.FOVDeg)),
		gl3d.Scalar(aspect),
		gl3d.Scalar(cam.Near),
		gl3d.Scalar(cam.Far),
	)
	f.Camera = gl3d.Mat4CameraLookAt(cam.Eye, cam.Target, cam.Up)
	// A look-at matrix is a rigid transform, so it always inverts.
	f.View, _ = gl3d.Mat4Inverse(f.Camera)
	f.ViewProjection = gl3d.Mat4Mul(f.Projection, f.View)
	f.World = gl3d.Mat4RotateY(gl3d.Scalar(angle))
	f.WorldViewProjection = gl3d.Mat4Mul(f.ViewProjection, f.World)
	return f
}
