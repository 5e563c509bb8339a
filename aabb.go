package austere

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box. The zero value is a degenerate box at
// the origin. Once non-degenerate, Min is componentwise <= Max.
type AABB struct {
	Min, Max mgl32.Vec3
}

// NewAABB returns a box spanning min to max.
func NewAABB(min, max mgl32.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewAABBFromPoints returns the smallest box containing every point. The box
// is seeded from the first point, so it is not biased toward the origin.
// With no points it returns the zero box.
func NewAABBFromPoints(points ...mgl32.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	b := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Expand(p)
	}
	return b
}

// Expand grows the box to include p.
func (b *AABB) Expand(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

// ExpandAABB grows the box to include other.
func (b *AABB) ExpandAABB(other AABB) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], other.Min[i])
		b.Max[i] = max(b.Max[i], other.Max[i])
	}
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extents returns the half-size of the box along each axis.
func (b AABB) Extents() mgl32.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Corners returns the eight corner points.
func (b AABB) Corners() [8]mgl32.Vec3 {
	lo, hi := b.Min, b.Max
	return [8]mgl32.Vec3{
		{lo[0], lo[1], lo[2]},
		{lo[0], lo[1], hi[2]},
		{lo[0], hi[1], lo[2]},
		{lo[0], hi[1], hi[2]},
		{hi[0], lo[1], lo[2]},
		{hi[0], lo[1], hi[2]},
		{hi[0], hi[1], lo[2]},
		{hi[0], hi[1], hi[2]},
	}
}

// Contains reports whether p lies inside the box. Points on a face count as
// inside.
func (b AABB) Contains(p mgl32.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// Intersects reports whether b and other overlap on all three axes. Boxes
// that only share a face are considered intersecting.
func (b AABB) Intersects(other AABB) bool {
	return b.Min[0] <= other.Max[0] && b.Max[0] >= other.Min[0] &&
		b.Min[1] <= other.Max[1] && b.Max[1] >= other.Min[1] &&
		b.Min[2] <= other.Max[2] && b.Max[2] >= other.Min[2]
}

// Transform returns the axis-aligned box enclosing the eight corners of b
// after transformation by m (with homogeneous divide). Rotated boxes come
// out larger than the tightest fit.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	corners := b.Corners()
	var out AABB
	for i, c := range corners {
		p := transformPoint(m, c)
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out.Expand(p)
	}
	return out
}

// transformPoint applies m to p as a position. The result is divided by w
// unless w is zero.
func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v[3] != 0 && v[3] != 1 {
		return v.Vec3().Mul(1 / v[3])
	}
	return v.Vec3()
}
