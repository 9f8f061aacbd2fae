// Package gl3d is a small software GL used to draw the glyph scene.
//
// It mirrors the subset of a GPU API the renderer needs: programs built from a
// vertex and a fragment stage with attribute and uniform slots resolved by
// name, float buffers bound to attribute slots, and non-indexed triangle-list
// draws into a caller-provided Target with optional back-face culling and a
// depth test.
//
// Pipeline (fixed):
//
//	Buffers → Vertex stage → Clip → Viewport → Cull → Fragment stage → Depth → Target.
//
// Matrices are column-major (m[col*4+row]) and compose as column-vector
// products: Mat4Mul(a, b) applies b first. Varyings are flat: the fragment
// stage runs once per triangle on the average of its three varyings.
package gl3d
