package gl3d

type shadedVertex struct {
	clip    Vec4
	varying Vec3
}

type triResult uint8

const (
	triDrawn triResult = iota
	triCulled
	triClipped
	triDegenerate
)

type ndcPoint struct {
	X, Y, Z float32
}

type screenPoint struct {
	x, y int
	z    float32
}

// guardBand bounds NDC x and y. Vertices beyond it, including those with a
// tiny positive w, reject their triangle so screen coordinates stay small.
const guardBand = 64

func clipToNDC(p Vec4) (ndcPoint, bool) {
	if !(p.W > 0) {
		return ndcPoint{}, false
	}
	invW := 1 / p.W
	n := ndcPoint{X: p.X * invW, Y: p.Y * invW, Z: p.Z * invW}
	if !(n.X >= -guardBand && n.X <= guardBand && n.Y >= -guardBand && n.Y <= guardBand) {
		return ndcPoint{}, false
	}
	return n, true
}

// ndcToScreen maps NDC into the viewport. Screen y grows downward, so the
// viewport origin is its top-left corner.
func ndcToScreen(p ndcPoint, vp Viewport) screenPoint {
	sx := (p.X*0.5 + 0.5) * float32(vp.W-1)
	sy := (1 - (p.Y*0.5 + 0.5)) * float32(vp.H-1)
	return screenPoint{x: vp.X + int(sx+0.5), y: vp.Y + int(sy+0.5), z: p.Z}
}

func (c *Context) rasterTriangle(p *Program, tri [3]shadedVertex) triResult {
	var s [3]screenPoint
	for i := range tri {
		n, ok := clipToNDC(tri[i].clip)
		if !ok {
			return triClipped
		}
		s[i] = ndcToScreen(n, c.viewport)
	}

	// Counter-clockwise in NDC is positive here because screen y is flipped.
	area := edgeFn(s[0].x, s[0].y, s[1].x, s[1].y, s[2].x, s[2].y)
	if area == 0 {
		return triDegenerate
	}
	if area < 0 {
		if c.caps&CullFace != 0 {
			return triCulled
		}
		s[1], s[2] = s[2], s[1]
	}

	varying := tri[0].varying.Add(tri[1].varying).Add(tri[2].varying).Mul(1.0 / 3)
	col := ColorFromVec4(p.fs.Main(&p.uniforms, varying))

	if c.polygonMode == PolygonLine {
		c.drawLine(s[0].x, s[0].y, s[1].x, s[1].y, col)
		c.drawLine(s[1].x, s[1].y, s[2].x, s[2].y, col)
		c.drawLine(s[2].x, s[2].y, s[0].x, s[0].y, col)
		return triDrawn
	}
	c.fillTriangleFlat(s, col)
	return triDrawn
}

// depthTest reports whether a fragment at NDC depth z is visible and records
// it. Fragments outside the near/far range are always rejected.
func (c *Context) depthTest(x, y int, z float32) bool {
	if z < -1 || z > 1 {
		return false
	}
	if c.caps&DepthTest == 0 || c.depthBuf == nil {
		return true
	}
	if x < 0 || y < 0 || x >= c.depthW || y >= c.depthH {
		return false
	}
	idx := y*c.depthW + x
	d := z*0.5 + 0.5
	if d >= c.depthBuf[idx] {
		return false
	}
	c.depthBuf[idx] = d
	return true
}

func (c *Context) drawLine(x0, y0, x1, y1 int, col Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		c.target.SetPixel(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Context) fillTriangleFlat(s [3]screenPoint, col Color) {
	w, h := c.target.Size()
	minX, maxX := min(s[0].x, s[1].x, s[2].x), max(s[0].x, s[1].x, s[2].x)
	minY, maxY := min(s[0].y, s[1].y, s[2].y), max(s[0].y, s[1].y, s[2].y)
	minX = max(minX, 0, c.viewport.X)
	minY = max(minY, 0, c.viewport.Y)
	maxX = min(maxX, w-1, c.viewport.X+c.viewport.W-1)
	maxY = min(maxY, h-1, c.viewport.Y+c.viewport.H-1)
	if minX > maxX || minY > maxY {
		return
	}

	x0, y0, x1, y1, x2, y2 := s[0].x, s[0].y, s[1].x, s[1].y, s[2].x, s[2].y
	area := edgeFn(x0, y0, x1, y1, x2, y2)
	if area == 0 {
		return
	}
	invArea := 1.0 / float32(area)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(x1, y1, x2, y2, x, y)
			w1 := edgeFn(x2, y2, x0, y0, x, y)
			w2 := edgeFn(x0, y0, x1, y1, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			z := float32(w0)*invArea*s[0].z + float32(w1)*invArea*s[1].z + float32(w2)*invArea*s[2].z
			if !c.depthTest(x, y, z) {
				continue
			}
			c.target.SetPixel(x, y, col)
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
