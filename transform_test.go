package austere

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// --- Local state ---

func TestNewTransformDefaults(t *testing.T) {
	tr := NewTransform()
	assertVec3(t, "Position", tr.Position(), mgl32.Vec3{})
	assertVec3(t, "Scale", tr.Scale(), mgl32.Vec3{1, 1, 1})
	if tr.Rotation() != mgl32.QuatIdent() {
		t.Errorf("Rotation = %v, want identity", tr.Rotation())
	}
	if !tr.IsDirty() {
		t.Error("new transform should be dirty")
	}
	assertMat4(t, "LocalMatrix", tr.LocalMatrix(), mgl32.Ident4())
	if tr.IsDirty() {
		t.Error("reading LocalMatrix should clear dirty")
	}
}

func TestTransformBasisVectors(t *testing.T) {
	tr := NewTransform()
	assertVec3(t, "Forward", tr.Forward(), mgl32.Vec3{0, 0, -1})
	assertVec3(t, "Right", tr.Right(), mgl32.Vec3{1, 0, 0})
	assertVec3(t, "Up", tr.Up(), mgl32.Vec3{0, 1, 0})

	tr.RotateAxis(mgl32.Vec3{0, 1, 0}, mgl32.DegToRad(90))
	assertVec3(t, "Forward after yaw", tr.Forward(), mgl32.Vec3{-1, 0, 0})
	assertVec3(t, "Right after yaw", tr.Right(), mgl32.Vec3{0, 0, -1})
}

func TestTransformLocalMatrixTRS(t *testing.T) {
	tr := NewTransform()
	tr.SetPosition(mgl32.Vec3{1, 2, 3})
	tr.SetRotation(mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}))
	tr.SetScale(mgl32.Vec3{2, 2, 2})

	want := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90))).
		Mul4(mgl32.Scale3D(2, 2, 2))
	assertMat4(t, "LocalMatrix", tr.LocalMatrix(), want)

	// scale first, then rotate, then translate
	p := tr.LocalMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assertVec3(t, "transformed point", p, mgl32.Vec3{1, 4, 3})
}

func TestTransformIncrementalMutators(t *testing.T) {
	tr := NewTransform()
	tr.Translate(mgl32.Vec3{1, 0, 0})
	tr.Translate(mgl32.Vec3{0, 2, 0})
	assertVec3(t, "Position", tr.Position(), mgl32.Vec3{1, 2, 0})

	tr.ScaleBy(mgl32.Vec3{2, 3, 4})
	tr.ScaleBy(mgl32.Vec3{2, 1, 0.5})
	assertVec3(t, "Scale", tr.Scale(), mgl32.Vec3{4, 3, 2})

	half := mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0})
	tr.Rotate(half)
	tr.Rotate(half)
	assertVec3(t, "Forward after two 45 degree turns", tr.Forward(), mgl32.Vec3{-1, 0, 0})
}

// --- Hierarchy ---

func TestTransformSetParentLinksBothWays(t *testing.T) {
	parent := NewTransform()
	child := NewTransform()
	if err := child.SetParent(parent); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	if child.Parent() != parent {
		t.Error("child.Parent should be parent")
	}
	if len(parent.Children()) != 1 || parent.Children()[0] != child {
		t.Errorf("parent.Children = %v, want [child]", parent.Children())
	}
}

func TestTransformReparentMaintainsChildLists(t *testing.T) {
	a := NewTransform()
	b := NewTransform()
	child := NewTransform()
	_ = child.SetParent(a)
	_ = child.SetParent(b)

	if len(a.Children()) != 0 {
		t.Errorf("old parent children = %d, want 0", len(a.Children()))
	}
	if len(b.Children()) != 1 || b.Children()[0] != child {
		t.Error("new parent should list child")
	}

	_ = child.SetParent(nil)
	if child.Parent() != nil || len(b.Children()) != 0 {
		t.Error("SetParent(nil) should detach from both sides")
	}
}

func TestTransformSetParentRejectsCycle(t *testing.T) {
	a := NewTransform()
	b := NewTransform()
	c := NewTransform()
	_ = b.SetParent(a)
	_ = c.SetParent(b)

	if err := a.SetParent(c); !errors.Is(err, ErrTransformCycle) {
		t.Errorf("SetParent(descendant) err = %v, want ErrTransformCycle", err)
	}
	if err := a.SetParent(a); !errors.Is(err, ErrTransformCycle) {
		t.Errorf("SetParent(self) err = %v, want ErrTransformCycle", err)
	}
	if a.Parent() != nil {
		t.Error("rejected SetParent should not change the parent")
	}
	if len(c.Children()) != 0 {
		t.Error("rejected SetParent should not change the child list")
	}
}

func TestTransformWorldMatrixComposesParent(t *testing.T) {
	parent := NewTransform()
	parent.SetPosition(mgl32.Vec3{10, 0, 0})
	parent.SetScale(mgl32.Vec3{2, 2, 2})
	child := NewTransform()
	child.SetPosition(mgl32.Vec3{1, 0, 0})
	_ = child.SetParent(parent)

	assertMat4(t, "WorldMatrix", child.WorldMatrix(), parent.LocalMatrix().Mul4(child.LocalMatrix()))
	assertVec3(t, "WorldPosition", child.WorldPosition(), mgl32.Vec3{12, 0, 0})
	assertVec3(t, "WorldScale", child.WorldScale(), mgl32.Vec3{2, 2, 2})
}

func TestTransformWorldRotationComposes(t *testing.T) {
	parent := NewTransform()
	parent.RotateAxis(mgl32.Vec3{0, 1, 0}, mgl32.DegToRad(90))
	child := NewTransform()
	_ = child.SetParent(parent)

	assertVec3(t, "child Forward", child.Forward(), mgl32.Vec3{-1, 0, 0})

	child.RotateAxis(mgl32.Vec3{0, 1, 0}, mgl32.DegToRad(90))
	assertVec3(t, "child Forward after own turn", child.Forward(), mgl32.Vec3{0, 0, 1})
}

// --- Dirty propagation ---

func TestTransformSetDirtyPropagatesToDescendants(t *testing.T) {
	root := NewTransform()
	mid := NewTransform()
	leaf := NewTransform()
	_ = mid.SetParent(root)
	_ = leaf.SetParent(mid)

	root.LocalMatrix()
	mid.LocalMatrix()
	leaf.LocalMatrix()
	if root.IsDirty() || mid.IsDirty() || leaf.IsDirty() {
		t.Fatal("precondition: all clean")
	}

	root.Translate(mgl32.Vec3{1, 0, 0})
	if !mid.IsDirty() || !leaf.IsDirty() {
		t.Error("mutating the root should dirty every descendant")
	}
}

func TestTransformDirtyCallbackFiresForAncestorChanges(t *testing.T) {
	root := NewTransform()
	child := NewTransform()
	_ = child.SetParent(root)

	calls := 0
	child.SetDirtyCallback(func() { calls++ })
	root.SetPosition(mgl32.Vec3{0, 1, 0})
	if calls != 1 {
		t.Errorf("callback calls = %d, want 1", calls)
	}

	child.SetDirtyCallback(nil)
	root.SetPosition(mgl32.Vec3{0, 2, 0})
	if calls != 1 {
		t.Errorf("callback calls after removal = %d, want 1", calls)
	}
}

func TestTransformBasisFollowsParentRotation(t *testing.T) {
	parent := NewTransform()
	child := NewTransform()
	_ = child.SetParent(parent)
	assertVec3(t, "Forward before", child.Forward(), mgl32.Vec3{0, 0, -1})

	parent.RotateAxis(mgl32.Vec3{0, 1, 0}, mgl32.DegToRad(180))
	assertVec3(t, "Forward after parent turns", child.Forward(), mgl32.Vec3{0, 0, 1})
}
