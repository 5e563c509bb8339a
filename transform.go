package austere

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Transform is a position, rotation and scale with an optional parent. The
// local matrix and basis vectors are cached and recomputed lazily when the
// transform is dirty. World-space values are recomputed on every call by
// walking to the root.
//
// A Transform does not own its parent or children. Parent links are only
// changed through SetParent, which keeps the parent's child list in sync.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	localMatrix mgl32.Mat4
	forward     mgl32.Vec3
	right       mgl32.Vec3
	up          mgl32.Vec3
	dirty       bool

	parent   *Transform
	children []*Transform

	onDirty func()
}

// NewTransform returns an identity transform with no parent.
func NewTransform() *Transform {
	t := &Transform{}
	t.reset()
	return t
}

// reset puts an embedded transform into the identity state.
func (t *Transform) reset() {
	t.position = mgl32.Vec3{}
	t.rotation = mgl32.QuatIdent()
	t.scale = mgl32.Vec3{1, 1, 1}
	t.localMatrix = mgl32.Ident4()
	t.forward = mgl32.Vec3{0, 0, -1}
	t.right = mgl32.Vec3{1, 0, 0}
	t.up = mgl32.Vec3{0, 1, 0}
	t.dirty = true
}

// --- Local state ---

// Position returns the local position.
func (t *Transform) Position() mgl32.Vec3 { return t.position }

// Rotation returns the local rotation.
func (t *Transform) Rotation() mgl32.Quat { return t.rotation }

// Scale returns the local scale.
func (t *Transform) Scale() mgl32.Vec3 { return t.scale }

// Translate moves the transform by delta in parent space.
func (t *Transform) Translate(delta mgl32.Vec3) {
	t.position = t.position.Add(delta)
	t.SetDirty()
}

// Rotate post-multiplies the current rotation by q.
func (t *Transform) Rotate(q mgl32.Quat) {
	t.rotation = t.rotation.Mul(q)
	t.SetDirty()
}

// RotateAxis rotates by angle radians around axis, expressed in local space.
func (t *Transform) RotateAxis(axis mgl32.Vec3, angle float32) {
	t.rotation = t.rotation.Mul(mgl32.QuatRotate(angle, axis.Normalize()))
	t.SetDirty()
}

// ScaleBy multiplies the current scale componentwise by factor.
func (t *Transform) ScaleBy(factor mgl32.Vec3) {
	t.scale = mgl32.Vec3{t.scale[0] * factor[0], t.scale[1] * factor[1], t.scale[2] * factor[2]}
	t.SetDirty()
}

// SetPosition sets the local position.
func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.position = p
	t.SetDirty()
}

// SetRotation sets the local rotation.
func (t *Transform) SetRotation(q mgl32.Quat) {
	t.rotation = q
	t.SetDirty()
}

// SetScale sets the local scale.
func (t *Transform) SetScale(s mgl32.Vec3) {
	t.scale = s
	t.SetDirty()
}

// --- Hierarchy ---

// Parent returns the parent transform, or nil.
func (t *Transform) Parent() *Transform { return t.parent }

// Children returns the transforms parented to t. The returned slice must not
// be mutated.
func (t *Transform) Children() []*Transform { return t.children }

// SetParent detaches t from its current parent and attaches it to p. A nil p
// makes t a root. It fails with ErrTransformCycle, leaving the hierarchy
// unchanged, when p is t or one of its descendants.
func (t *Transform) SetParent(p *Transform) error {
	if p != nil && isTransformAncestor(t, p) {
		return fmt.Errorf("set parent: %w", ErrTransformCycle)
	}
	if t.parent != nil {
		t.parent.removeChild(t)
	}
	t.parent = p
	if p != nil {
		p.children = append(p.children, t)
	}
	t.SetDirty()
	return nil
}

// isTransformAncestor reports whether candidate is node or one of its
// ancestors.
func isTransformAncestor(candidate, node *Transform) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChild removes child from t.children without touching child.parent.
func (t *Transform) removeChild(child *Transform) {
	for i, c := range t.children {
		if c == child {
			copy(t.children[i:], t.children[i+1:])
			t.children[len(t.children)-1] = nil
			t.children = t.children[:len(t.children)-1]
			return
		}
	}
}

// --- Dirty tracking ---

// SetDirtyCallback registers fn to be called whenever t is marked dirty,
// including when an ancestor is. Passing nil removes the callback.
func (t *Transform) SetDirtyCallback(fn func()) {
	t.onDirty = fn
}

// SetDirty marks t and all of its descendants dirty. Every visited
// transform's callback fires once.
func (t *Transform) SetDirty() {
	t.dirty = true
	for _, c := range t.children {
		c.SetDirty()
	}
	if t.onDirty != nil {
		t.onDirty()
	}
}

// IsDirty reports whether the cached local matrix and basis vectors are
// stale.
func (t *Transform) IsDirty() bool { return t.dirty }

func (t *Transform) update() {
	t.localMatrix = mgl32.Translate3D(t.position[0], t.position[1], t.position[2]).
		Mul4(t.rotation.Mat4()).
		Mul4(mgl32.Scale3D(t.scale[0], t.scale[1], t.scale[2]))

	wr := t.WorldRotation()
	t.forward = wr.Rotate(mgl32.Vec3{0, 0, -1}).Normalize()
	t.right = wr.Rotate(mgl32.Vec3{1, 0, 0}).Normalize()
	t.up = wr.Rotate(mgl32.Vec3{0, 1, 0}).Normalize()
	t.dirty = false
}

// --- Derived values ---

// LocalMatrix returns T * R * S for the current local state.
func (t *Transform) LocalMatrix() mgl32.Mat4 {
	if t.dirty {
		t.update()
	}
	return t.localMatrix
}

// WorldMatrix returns the parent's world matrix times the local matrix.
func (t *Transform) WorldMatrix() mgl32.Mat4 {
	if t.parent != nil {
		return t.parent.WorldMatrix().Mul4(t.LocalMatrix())
	}
	return t.LocalMatrix()
}

// WorldPosition returns the translation of the world matrix.
func (t *Transform) WorldPosition() mgl32.Vec3 {
	return t.WorldMatrix().Col(3).Vec3()
}

// WorldRotation returns the composed rotation of t and its ancestors.
func (t *Transform) WorldRotation() mgl32.Quat {
	if t.parent != nil {
		return t.parent.WorldRotation().Mul(t.rotation)
	}
	return t.rotation
}

// WorldScale returns the length of each basis column of the world matrix.
func (t *Transform) WorldScale() mgl32.Vec3 {
	m := t.WorldMatrix()
	return mgl32.Vec3{m.Col(0).Vec3().Len(), m.Col(1).Vec3().Len(), m.Col(2).Vec3().Len()}
}

// Forward returns the world-space -Z axis.
func (t *Transform) Forward() mgl32.Vec3 {
	if t.dirty {
		t.update()
	}
	return t.forward
}

// Right returns the world-space +X axis.
func (t *Transform) Right() mgl32.Vec3 {
	if t.dirty {
		t.update()
	}
	return t.right
}

// Up returns the world-space +Y axis.
func (t *Transform) Up() mgl32.Vec3 {
	if t.dirty {
		t.update()
	}
	return t.up
}
