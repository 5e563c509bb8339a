package austere

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default projection parameters.
const (
	DefaultAspectRatio float32 = 16.0 / 9.0
	DefaultFieldOfView float32 = 45
	DefaultNearPlane   float32 = 0.1
	DefaultFarPlane    float32 = 1024
)

// Camera is a perspective camera. It embeds its Transform; moving the camera
// or any transform it is parented to marks the view dirty. View, projection
// and frustum are rebuilt lazily on the next read.
type Camera struct {
	Transform

	frustum Frustum

	fieldOfView float32 // degrees
	nearPlane   float32
	farPlane    float32
	aspectRatio float32

	viewMatrix       mgl32.Mat4
	projectionMatrix mgl32.Mat4
	dirty            bool

	zoomTween *gween.Tween
}

// NewCamera creates a camera at the origin looking down -Z with the default
// projection parameters.
func NewCamera() *Camera {
	return NewCameraWith(DefaultAspectRatio, DefaultFieldOfView, DefaultNearPlane, DefaultFarPlane)
}

// NewCameraWith creates a camera with explicit projection parameters. The
// field of view is in degrees.
func NewCameraWith(aspect, fov, near, far float32) *Camera {
	c := &Camera{
		fieldOfView:      fov,
		nearPlane:        near,
		farPlane:         far,
		aspectRatio:      aspect,
		viewMatrix:       mgl32.Ident4(),
		projectionMatrix: mgl32.Ident4(),
		dirty:            true,
	}
	c.Transform.reset()
	c.Transform.SetDirtyCallback(func() { c.dirty = true })
	return c
}

// FieldOfView returns the vertical field of view in degrees.
func (c *Camera) FieldOfView() float32 { return c.fieldOfView }

// NearPlane returns the near clip distance.
func (c *Camera) NearPlane() float32 { return c.nearPlane }

// FarPlane returns the far clip distance.
func (c *Camera) FarPlane() float32 { return c.farPlane }

// AspectRatio returns width / height.
func (c *Camera) AspectRatio() float32 { return c.aspectRatio }

// SetFieldOfView sets the vertical field of view in degrees. Equal values
// are ignored.
func (c *Camera) SetFieldOfView(fov float32) {
	if c.fieldOfView == fov {
		return
	}
	c.fieldOfView = fov
	c.dirty = true
}

// SetNearPlane sets the near clip distance. Equal values are ignored.
func (c *Camera) SetNearPlane(near float32) {
	if c.nearPlane == near {
		return
	}
	c.nearPlane = near
	c.dirty = true
}

// SetFarPlane sets the far clip distance. Equal values are ignored.
func (c *Camera) SetFarPlane(far float32) {
	if c.farPlane == far {
		return
	}
	c.farPlane = far
	c.dirty = true
}

// SetAspectRatio sets width / height. Equal values are ignored.
func (c *Camera) SetAspectRatio(aspect float32) {
	if c.aspectRatio == aspect {
		return
	}
	c.aspectRatio = aspect
	c.dirty = true
}

// IsDirty reports whether the view, projection or frustum is stale. The
// embedded transform's own flag is available as c.Transform.IsDirty.
func (c *Camera) IsDirty() bool { return c.dirty }

// ViewMatrix returns the world-to-view matrix.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	if c.dirty {
		c.update()
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	if c.dirty {
		c.update()
	}
	return c.projectionMatrix
}

// ViewProjection returns ProjectionMatrix * ViewMatrix.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	if c.dirty {
		c.update()
	}
	return c.projectionMatrix.Mul4(c.viewMatrix)
}

// Frustum returns the view frustum for the current view and projection.
func (c *Camera) Frustum() *Frustum {
	if c.dirty {
		c.update()
	}
	return &c.frustum
}

// update rebuilds view, projection and frustum, then clears the dirty flag.
func (c *Camera) update() {
	pos := c.WorldPosition()
	c.viewMatrix = mgl32.LookAtV(pos, pos.Add(c.Forward()), c.Up())
	c.projectionMatrix = mgl32.Perspective(
		mgl32.DegToRad(c.fieldOfView), c.aspectRatio, c.nearPlane, c.farPlane)
	c.frustum.Update(c.projectionMatrix.Mul4(c.viewMatrix))
	c.dirty = false
}

// ZoomTo animates the field of view to fov degrees over duration seconds.
// The animation advances in Update.
func (c *Camera) ZoomTo(fov, duration float32, fn ease.TweenFunc) {
	c.zoomTween = gween.New(c.fieldOfView, fov, duration, fn)
}

// Zooming reports whether a ZoomTo animation is in progress.
func (c *Camera) Zooming() bool { return c.zoomTween != nil }

// Update advances camera animations by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.zoomTween == nil {
		return
	}
	fov, done := c.zoomTween.Update(dt)
	c.SetFieldOfView(fov)
	if done {
		c.zoomTween = nil
	}
}
