package austere

import "github.com/go-gl/mathgl/mgl32"

// --- Cube ---

// cubeFaces lists each face as its outward normal plus the two in-plane axes
// (u to the right, v up when looking at the face from outside).
var cubeFaces = [6]struct{ n, u, v mgl32.Vec3 }{
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},   // +Z
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}}, // -Z
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},  // +X
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},  // -X
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},  // +Y
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},  // -Y
}

// NewCubeMesh creates an axis-aligned cube of edge length size centered at
// the origin. Each face has its own four vertices so normals and texture
// coordinates stay flat: 24 vertices, 36 indices, counter-clockwise from
// outside.
func NewCubeMesh(name string, size float32) *Mesh {
	h := size / 2
	verts := make([]mgl32.Vec3, 0, 24)
	normals := make([]mgl32.Vec3, 0, 24)
	uvs := make([]mgl32.Vec2, 0, 24)
	tangents := make([]mgl32.Vec3, 0, 24)
	indices := make([]uint32, 0, 36)

	corners := [4]mgl32.Vec2{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, f := range cubeFaces {
		base := uint32(len(verts))
		for _, c := range corners {
			p := f.n.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(h)
			verts = append(verts, p)
			normals = append(normals, f.n)
			uvs = append(uvs, mgl32.Vec2{(c[0] + 1) / 2, (c[1] + 1) / 2})
			tangents = append(tangents, f.u)
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	m := NewMesh(name, verts, indices)
	m.SetNormals(normals)
	m.SetTexCoords(uvs)
	m.SetTangents(tangents)
	return m
}

// --- Skybox ---

// NewSkyboxMesh creates the cube used to draw a skybox: 8 shared corners at
// +-1, 36 indices. Only positions are set; the shader samples the cubemap by
// direction. Face culling is off during the skybox pass, so winding does not
// matter.
func NewSkyboxMesh() *Mesh {
	b := NewAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1})
	c := b.Corners()
	verts := c[:]
	// Corner order from AABB.Corners: bit 2 = x, bit 1 = y, bit 0 = z.
	indices := []uint32{
		// -X
		0, 1, 3, 0, 3, 2,
		// +X
		4, 6, 7, 4, 7, 5,
		// -Y
		0, 4, 5, 0, 5, 1,
		// +Y
		2, 3, 7, 2, 7, 6,
		// -Z
		0, 2, 6, 0, 6, 4,
		// +Z
		1, 5, 7, 1, 7, 3,
	}
	return NewMesh("skybox", verts, indices)
}

// --- Plane ---

// NewPlaneMesh creates a flat grid on the XZ plane centered at the origin,
// facing +Y. cols and rows define the number of cells
// (vertices = (cols+1) * (rows+1), indices = 6 * cols * rows).
func NewPlaneMesh(name string, width, depth float32, cols, rows int) *Mesh {
	cols = max(cols, 1)
	rows = max(rows, 1)

	n := (cols + 1) * (rows + 1)
	verts := make([]mgl32.Vec3, 0, n)
	normals := make([]mgl32.Vec3, 0, n)
	uvs := make([]mgl32.Vec2, 0, n)
	tangents := make([]mgl32.Vec3, 0, n)

	for r := 0; r <= rows; r++ {
		v := float32(r) / float32(rows)
		for c := 0; c <= cols; c++ {
			u := float32(c) / float32(cols)
			verts = append(verts, mgl32.Vec3{(u - 0.5) * width, 0, (v - 0.5) * depth})
			normals = append(normals, mgl32.Vec3{0, 1, 0})
			uvs = append(uvs, mgl32.Vec2{u, v})
			tangents = append(tangents, mgl32.Vec3{1, 0, 0})
		}
	}

	indices := make([]uint32, 0, 6*cols*rows)
	stride := uint32(cols + 1)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			tl := uint32(r)*stride + uint32(c)
			tr := tl + 1
			bl := tl + stride
			br := bl + 1
			// counter-clockwise seen from +Y
			indices = append(indices, tl, bl, br, tl, br, tr)
		}
	}

	m := NewMesh(name, verts, indices)
	m.SetNormals(normals)
	m.SetTexCoords(uvs)
	m.SetTangents(tangents)
	return m
}

// --- Polygon ---

// NewPolygonMesh creates a flat polygon on the XY plane facing +Z using fan
// triangulation (convex polygons). N points give N vertices and 3*(N-2)
// indices. Texture coordinates map the polygon's bounding box to [0, 1].
func NewPolygonMesh(name string, points []mgl32.Vec2) *Mesh {
	verts, uvs, indices := buildPolygonFan(points)
	m := NewMesh(name, verts, indices)
	normals := make([]mgl32.Vec3, len(verts))
	for i := range normals {
		normals[i] = mgl32.Vec3{0, 0, 1}
	}
	m.SetNormals(normals)
	m.SetTexCoords(uvs)
	return m
}

// buildPolygonFan generates vertices, texture coordinates and indices for a
// fan-triangulated polygon.
func buildPolygonFan(points []mgl32.Vec2) ([]mgl32.Vec3, []mgl32.Vec2, []uint32) {
	if len(points) < 3 {
		return nil, nil, nil
	}

	minX, minY := points[0][0], points[0][1]
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	w, h := maxX-minX, maxY-minY
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	verts := make([]mgl32.Vec3, len(points))
	uvs := make([]mgl32.Vec2, len(points))
	for i, p := range points {
		verts[i] = mgl32.Vec3{p[0], p[1], 0}
		uvs[i] = mgl32.Vec2{(p[0] - minX) / w, (p[1] - minY) / h}
	}

	indices := make([]uint32, 0, 3*(len(points)-2))
	for i := 1; i < len(points)-1; i++ {
		indices = append(indices, 0, uint32(i), uint32(i+1))
	}
	return verts, uvs, indices
}
