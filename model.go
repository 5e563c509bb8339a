package austere

import "github.com/go-gl/mathgl/mgl32"

// ModelNode is one node of an imported model's hierarchy: a fixed local
// transform, the meshes attached at this node and their materials. Mesh i
// uses material i; meshes past the end of the material list use the
// renderer's default material.
type ModelNode struct {
	Name      string
	Transform mgl32.Mat4

	parent    *ModelNode
	meshes    []*Mesh
	materials []*Material
	children  []*ModelNode
}

// NewModelPart returns a detached model node with an identity transform.
func NewModelPart(name string) *ModelNode {
	return &ModelNode{Name: name, Transform: mgl32.Ident4()}
}

// NewChild creates a model node named name and attaches it to n.
func (n *ModelNode) NewChild(name string) *ModelNode {
	c := NewModelPart(name)
	n.AddChild(c)
	return c
}

// AddMesh attaches mesh to the node.
func (n *ModelNode) AddMesh(mesh *Mesh) { n.meshes = append(n.meshes, mesh) }

// AddMaterial appends a material; it pairs with the mesh at the same index.
func (n *ModelNode) AddMaterial(mat *Material) { n.materials = append(n.materials, mat) }

// AddChild appends child and sets its parent. A nil child is ignored.
func (n *ModelNode) AddChild(child *ModelNode) {
	if child == nil {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child. Unknown children are ignored.
func (n *ModelNode) RemoveChild(child *ModelNode) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return
		}
	}
}

// Parent returns the parent node, or nil for a root.
func (n *ModelNode) Parent() *ModelNode { return n.parent }

// Meshes returns the attached meshes. Must not be mutated.
func (n *ModelNode) Meshes() []*Mesh { return n.meshes }

// Materials returns the attached materials. Must not be mutated.
func (n *ModelNode) Materials() []*Material { return n.materials }

// Children returns the child nodes. Must not be mutated.
func (n *ModelNode) Children() []*ModelNode { return n.children }

// MaterialFor returns the material paired with mesh index i, or nil.
func (n *ModelNode) MaterialFor(i int) *Material {
	if i < 0 || i >= len(n.materials) {
		return nil
	}
	return n.materials[i]
}

// Model is a hierarchy of ModelNodes rooted at a node named "Root".
type Model struct {
	Name string
	Root *ModelNode
}

// NewModel returns a model with an empty root.
func NewModel(name string) *Model {
	return &Model{Name: name, Root: NewModelPart("Root")}
}

// NewModelFromMesh returns a single-node model drawing mesh with mat.
func NewModelFromMesh(name string, mesh *Mesh, mat *Material) *Model {
	m := NewModel(name)
	m.Root.AddMesh(mesh)
	if mat != nil {
		m.Root.AddMaterial(mat)
	}
	return m
}

// Bounds returns the model-space box enclosing every mesh, with node
// transforms applied. ok is false when the model has no meshes.
func (m *Model) Bounds() (b AABB, ok bool) {
	var walk func(n *ModelNode, parent mgl32.Mat4)
	walk = func(n *ModelNode, parent mgl32.Mat4) {
		world := parent.Mul4(n.Transform)
		for _, mesh := range n.meshes {
			if mesh == nil {
				continue
			}
			mb := mesh.Bounds().Transform(world)
			if !ok {
				b, ok = mb, true
				continue
			}
			b.ExpandAABB(mb)
		}
		for _, c := range n.children {
			walk(c, world)
		}
	}
	if m.Root != nil {
		walk(m.Root, mgl32.Ident4())
	}
	return b, ok
}
