package austere

import "github.com/go-gl/mathgl/mgl32"

// Plane is a plane in Hessian normal form: points p with
// Normal.Dot(p) + Distance == 0. Positive signed distance is the inside.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// SignedDistance returns the signed distance from p to the plane.
func (p Plane) SignedDistance(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.Distance
}

// Frustum plane indices.
const (
	PlaneLeft = iota
	PlaneRight
	PlaneBottom
	PlaneTop
	PlaneNear
	PlaneFar
	planeCount
)

// Frustum is the six-plane view volume of a camera. The planes face inward.
type Frustum struct {
	planes [planeCount]Plane
}

// NewFrustum returns a frustum extracted from a combined
// projection * view matrix.
func NewFrustum(viewProjection mgl32.Mat4) Frustum {
	var f Frustum
	f.Update(viewProjection)
	return f
}

// Update rebuilds all six planes from viewProjection using Gribb-Hartmann
// extraction, then normalizes each plane.
func (f *Frustum) Update(viewProjection mgl32.Mat4) {
	m := viewProjection
	// plane built from row 3 plus or minus row r
	rowPlane := func(r int, sign float32) Plane {
		return Plane{
			Normal: mgl32.Vec3{
				m.At(3, 0) + sign*m.At(r, 0),
				m.At(3, 1) + sign*m.At(r, 1),
				m.At(3, 2) + sign*m.At(r, 2),
			},
			Distance: m.At(3, 3) + sign*m.At(r, 3),
		}
	}

	f.planes[PlaneLeft] = rowPlane(0, 1)
	f.planes[PlaneRight] = rowPlane(0, -1)
	f.planes[PlaneBottom] = rowPlane(1, 1)
	f.planes[PlaneTop] = rowPlane(1, -1)
	f.planes[PlaneNear] = rowPlane(2, 1)
	f.planes[PlaneFar] = rowPlane(2, -1)

	for i := range f.planes {
		l := f.planes[i].Normal.Len()
		if l == 0 {
			continue
		}
		f.planes[i].Normal = f.planes[i].Normal.Mul(1 / l)
		f.planes[i].Distance /= l
	}
}

// Plane returns plane i (PlaneLeft..PlaneFar).
func (f *Frustum) Plane(i int) Plane {
	return f.planes[i]
}

// Contains reports whether p is on the inner side of all six planes.
func (f *Frustum) Contains(p mgl32.Vec3) bool {
	for i := range f.planes {
		if f.planes[i].SignedDistance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether any part of the sphere may be inside the
// frustum. It never rejects a partially visible sphere.
func (f *Frustum) IntersectsSphere(center mgl32.Vec3, radius float32) bool {
	for i := range f.planes {
		if f.planes[i].SignedDistance(center) < -radius {
			return false
		}
	}
	return true
}

// IntersectsAABB reports whether the box may be inside the frustum, using
// the positive-vertex test. It can report true for boxes just outside a
// frustum corner, never false for a visible box.
func (f *Frustum) IntersectsAABB(b AABB) bool {
	for i := range f.planes {
		pl := &f.planes[i]
		v := b.Min
		if pl.Normal[0] >= 0 {
			v[0] = b.Max[0]
		}
		if pl.Normal[1] >= 0 {
			v[1] = b.Max[1]
		}
		if pl.Normal[2] >= 0 {
			v[2] = b.Max[2]
		}
		if pl.SignedDistance(v) < 0 {
			return false
		}
	}
	return true
}
