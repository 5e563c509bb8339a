package austere

import "github.com/go-gl/mathgl/mgl32"

// Mesh is indexed triangle geometry with optional per-vertex attributes and
// a local-space bounding box. Meshes are handed to the Renderer by pointer;
// a Device is expected to cache any GPU upload keyed on that pointer.
type Mesh struct {
	// Name is informational.
	Name string

	vertices   []mgl32.Vec3
	normals    []mgl32.Vec3
	texCoords  []mgl32.Vec2
	tangents   []mgl32.Vec3
	bitangents []mgl32.Vec3
	indices    []uint32

	bounds AABB
}

// NewMesh creates a mesh from positions and optional triangle indices. With
// no indices, vertices are drawn as consecutive triangles. The bounding box
// is computed from the positions.
func NewMesh(name string, vertices []mgl32.Vec3, indices []uint32) *Mesh {
	m := &Mesh{Name: name, vertices: vertices, indices: indices}
	m.bounds = NewAABBFromPoints(vertices...)
	return m
}

// Bounds returns the local-space bounding box.
func (m *Mesh) Bounds() AABB { return m.bounds }

// SetBounds overrides the bounding box.
func (m *Mesh) SetBounds(b AABB) { m.bounds = b }

// Vertices returns the vertex positions.
func (m *Mesh) Vertices() []mgl32.Vec3 { return m.vertices }

// SetVertices replaces the positions and recomputes the bounding box.
func (m *Mesh) SetVertices(v []mgl32.Vec3) {
	m.vertices = v
	m.bounds = NewAABBFromPoints(v...)
}

// Indices returns the triangle indices.
func (m *Mesh) Indices() []uint32 { return m.indices }

// SetIndices replaces the triangle indices.
func (m *Mesh) SetIndices(i []uint32) { m.indices = i }

// Normals returns the per-vertex normals.
func (m *Mesh) Normals() []mgl32.Vec3 { return m.normals }

// SetNormals replaces the per-vertex normals.
func (m *Mesh) SetNormals(n []mgl32.Vec3) { m.normals = n }

// TexCoords returns the per-vertex texture coordinates.
func (m *Mesh) TexCoords() []mgl32.Vec2 { return m.texCoords }

// SetTexCoords replaces the per-vertex texture coordinates.
func (m *Mesh) SetTexCoords(uv []mgl32.Vec2) { m.texCoords = uv }

// Tangents returns the per-vertex tangents.
func (m *Mesh) Tangents() []mgl32.Vec3 { return m.tangents }

// SetTangents replaces the per-vertex tangents.
func (m *Mesh) SetTangents(t []mgl32.Vec3) { m.tangents = t }

// Bitangents returns the per-vertex bitangents.
func (m *Mesh) Bitangents() []mgl32.Vec3 { return m.bitangents }

// SetBitangents replaces the per-vertex bitangents.
func (m *Mesh) SetBitangents(b []mgl32.Vec3) { m.bitangents = b }

func (m *Mesh) HasNormals() bool { return len(m.normals) > 0 }
func (m *Mesh) HasTexCoords() bool { return len(m.texCoords) > 0 }
func (m *Mesh) HasTangents() bool { return len(m.tangents) > 0 }
func (m *Mesh) HasBitangents() bool { return len(m.bitangents) > 0 }
func (m *Mesh) HasIndices() bool { return len(m.indices) > 0 }

// TriangleCount returns the number of triangles the mesh draws.
func (m *Mesh) TriangleCount() int {
	if m.HasIndices() {
		return len(m.indices) / 3
	}
	return len(m.vertices) / 3
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c uint32) {
	if m.HasIndices() {
		return m.indices[3*i], m.indices[3*i+1], m.indices[3*i+2]
	}
	base := uint32(3 * i)
	return base, base + 1, base + 2
}
