package austere

import "github.com/go-gl/mathgl/mgl32"

// DepthFunc selects the depth comparison.
type DepthFunc uint8

const (
	DepthLess      DepthFunc = iota // pass if incoming depth < stored
	DepthLessEqual                  // pass if incoming depth <= stored
)

// PolygonMode selects how triangles are rasterized.
type PolygonMode uint8

const (
	PolygonFill PolygonMode = iota
	PolygonLine
)

// Device is the rasterizer state and draw surface the Renderer drives. An
// OpenGL context, a software rasterizer or a recording fake all fit.
//
// Face culling always culls back faces when enabled.
type Device interface {
	SetDepthTest(enabled bool)
	SetDepthWrite(enabled bool)
	SetDepthFunc(fn DepthFunc)
	SetFaceCulling(enabled bool)
	SetBlending(enabled bool)
	SetPolygonMode(mode PolygonMode)

	// Clear clears color and depth.
	Clear(c Color)

	// BindTexture binds tex to texture slot; a nil tex unbinds the slot.
	BindTexture(tex *Texture, slot int)
	BindCubemap(cm *Cubemap)
	UnbindCubemap()

	// DrawMesh draws mesh with the currently bound shader and uniforms.
	DrawMesh(mesh *Mesh)
}

// Shader is a bound program that receives uniforms by name. Shaders key
// render batches by identity, so implementations must be comparable; use
// pointer receivers.
type Shader interface {
	Bind()
	Unbind()
	SetInt(name string, v int32)
	SetBool(name string, v bool)
	SetFloat(name string, v float32)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetMat4(name string, v mgl32.Mat4)
}

// LightApplier uploads aggregate light uniforms to a shader. LightManager
// implements it.
type LightApplier interface {
	Apply(s Shader)
}
