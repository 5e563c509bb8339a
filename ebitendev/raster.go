package ebitendev

import "github.com/go-gl/mathgl/mgl32"

// clipVertex is a vertex in clip space with its texture coordinates in
// source-image pixels.
type clipVertex struct {
	pos mgl32.Vec4
	uv  mgl32.Vec2
}

func lerpVertex(a, b clipVertex, t float32) clipVertex {
	return clipVertex{
		pos: a.pos.Add(b.pos.Sub(a.pos).Mul(t)),
		uv:  a.uv.Add(b.uv.Sub(a.uv).Mul(t)),
	}
}

// nearDistance is the signed distance to the near plane (z >= -w) in clip
// space. For a perspective projection it is non-negative only where w > 0.
func nearDistance(v clipVertex) float32 {
	return v.pos[2] + v.pos[3]
}

// clipNear clips a triangle against the near plane (Sutherland-Hodgman) and
// appends the resulting convex polygon, 0, 3 or 4 vertices, to dst.
func clipNear(dst []clipVertex, tri [3]clipVertex) []clipVertex {
	var d [3]float32
	inside := 0
	for i := range tri {
		d[i] = nearDistance(tri[i])
		if d[i] >= 0 {
			inside++
		}
	}
	switch inside {
	case 0:
		return dst
	case 3:
		return append(dst, tri[0], tri[1], tri[2])
	}
	for i := range tri {
		j := (i + 1) % 3
		a, b := tri[i], tri[j]
		if d[i] >= 0 {
			dst = append(dst, a)
		}
		if (d[i] >= 0) != (d[j] >= 0) {
			dst = append(dst, lerpVertex(a, b, d[i]/(d[i]-d[j])))
		}
	}
	return dst
}

// ndc divides by w.
func ndc(p mgl32.Vec4) mgl32.Vec3 {
	return mgl32.Vec3{p[0] / p[3], p[1] / p[3], p[2] / p[3]}
}

// toScreen maps normalized device coordinates to pixel coordinates, y down.
func toScreen(p mgl32.Vec3, width, height int) (x, y float32) {
	return (p[0] + 1) / 2 * float32(width), (1 - p[1]) / 2 * float32(height)
}

// signedArea is twice the signed area of the triangle in NDC. Positive
// means counter-clockwise, i.e. front facing.
func signedArea(a, b, c mgl32.Vec3) float32 {
	return (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
}

// skyboxFace picks the cubemap face a skybox triangle lies on from the
// dominant axis of its center.
func skyboxFace(a, b, c mgl32.Vec3) int {
	center := a.Add(b).Add(c)
	axis := 0
	for i := 1; i < 3; i++ {
		if abs32(center[i]) > abs32(center[axis]) {
			axis = i
		}
	}
	face := axis * 2
	if center[axis] < 0 {
		face++
	}
	return face
}

// skyboxUV returns image-space (y down) coordinates in [0, 1] for a point on
// the unit cube face, as seen from inside the cube.
func skyboxUV(face int, p mgl32.Vec3) mgl32.Vec2 {
	x, y, z := p[0], p[1], p[2]
	var u, v float32
	switch face {
	case 0: // +X
		u, v = -z, -y
	case 1: // -X
		u, v = z, -y
	case 2: // +Y
		u, v = x, z
	case 3: // -Y
		u, v = x, -z
	case 4: // +Z
		u, v = x, -y
	default: // -Z
		u, v = -x, -y
	}
	return mgl32.Vec2{(u + 1) / 2, (v + 1) / 2}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float32) float32 {
	return max(0, min(1, v))
}
