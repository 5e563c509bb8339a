package austere

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer collects draw submissions for a frame, culls them against the
// camera frustum, groups them into batches by (shader, material) and flushes
// them in a fixed order: opaque batches, the skybox, then transparent
// batches from back to front.
//
// A frame is PrepareFrame, any number of Submit calls, then RenderFrame.
// Renderer is not safe for concurrent use.
type Renderer struct {
	device   Device
	lights   LightApplier
	settings RendererSettings

	defaultMaterial *Material
	camera          *Camera
	skybox          *Skybox
	skyboxShader    Shader
	renderMode      RenderMode

	opaque      batchList
	transparent batchList

	initialized bool
	stats       FrameStats
}

// NewRenderer creates a renderer drawing to device. lights may be nil. The
// renderer owns a default material used for submissions without one.
// Panics if device is nil.
func NewRenderer(device Device, lights LightApplier, settings RendererSettings) *Renderer {
	if device == nil {
		panic("austere: NewRenderer requires a Device")
	}
	return &Renderer{
		device:          device,
		lights:          lights,
		settings:        settings,
		defaultMaterial: NewMaterial("default"),
		opaque:          newBatchList(),
		transparent:     newBatchList(),
	}
}

// Initialize marks the renderer ready. It fails if already initialized.
func (r *Renderer) Initialize() error {
	log := scoped("Renderer", "Initialize")
	if r.initialized {
		log.Error("renderer is already initialized")
		return fmt.Errorf("renderer: %w", ErrAlreadyInitialized)
	}
	r.initialized = true
	log.Info("renderer initialized")
	return nil
}

// Shutdown drops the camera, skybox and pending batches. Shutting down an
// uninitialized renderer is logged and ignored.
func (r *Renderer) Shutdown() {
	log := scoped("Renderer", "Shutdown")
	if !r.initialized {
		log.Error("renderer is not initialized")
		return
	}
	r.camera = nil
	r.skybox = nil
	r.skyboxShader = nil
	r.opaque.reset()
	r.transparent.reset()
	r.initialized = false
	log.Info("renderer shut down")
}

// IsInitialized reports whether Initialize has run without a Shutdown.
func (r *Renderer) IsInitialized() bool { return r.initialized }

// Device returns the device the renderer draws to.
func (r *Renderer) Device() Device { return r.device }

// Settings returns the renderer settings.
func (r *Renderer) Settings() RendererSettings { return r.settings }

// SetSettings replaces the settings applied by the next PrepareFrame.
func (r *Renderer) SetSettings(s RendererSettings) { r.settings = s }

// Camera returns the camera used for culling and view uniforms, or nil.
func (r *Renderer) Camera() *Camera { return r.camera }

// SetCamera sets the camera. With no camera nothing is culled, view and
// projection upload as identity and the camera position as zero.
func (r *Renderer) SetCamera(c *Camera) { r.camera = c }

// Skybox returns the skybox, or nil.
func (r *Renderer) Skybox() *Skybox { return r.skybox }

// SetSkybox sets the skybox drawn between the opaque and transparent passes.
func (r *Renderer) SetSkybox(s *Skybox) { r.skybox = s }

// SetSkyboxShader sets the shader the skybox is drawn with.
func (r *Renderer) SetSkyboxShader(s Shader) { r.skyboxShader = s }

// RenderMode returns the rasterization mode.
func (r *Renderer) RenderMode() RenderMode { return r.renderMode }

// SetRenderMode sets the rasterization mode used by the next RenderFrame.
func (r *Renderer) SetRenderMode(m RenderMode) { r.renderMode = m }

// DefaultMaterial returns the material used for submissions without one.
func (r *Renderer) DefaultMaterial() *Material { return r.defaultMaterial }

// SetDefaultMaterial replaces the fallback material. nil is ignored.
func (r *Renderer) SetDefaultMaterial(m *Material) {
	if m != nil {
		r.defaultMaterial = m
	}
}

// OpaqueBatches returns this frame's opaque batches in draw order. The
// slice is reused by the next PrepareFrame.
func (r *Renderer) OpaqueBatches() []RenderBatch { return r.opaque.batches }

// TransparentBatches returns this frame's transparent batches. After
// RenderFrame they are in back-to-front draw order. The slice is reused by
// the next PrepareFrame.
func (r *Renderer) TransparentBatches() []RenderBatch { return r.transparent.batches }

// Stats returns the counters of the current or last frame.
func (r *Renderer) Stats() FrameStats { return r.stats }

// --- Frame protocol ---

// PrepareFrame clears last frame's batches, applies depth test, face
// culling and clear color from the settings, and clears the target. Call it
// once per frame before any Submit.
func (r *Renderer) PrepareFrame() {
	start := time.Now()
	r.opaque.reset()
	r.transparent.reset()
	r.stats = FrameStats{}

	r.device.SetDepthTest(r.settings.DepthTest)
	r.device.SetFaceCulling(r.settings.FaceCulling)
	r.device.Clear(r.settings.ClearColor)
	r.stats.PrepareTime = time.Since(start)
}

// Submit queues mesh for drawing with shader and material at world. A nil
// mesh or shader is ignored. When a camera is set, meshes whose transformed
// bounds fall outside its frustum are dropped. A nil material means the
// default material.
func (r *Renderer) Submit(mesh *Mesh, shader Shader, material *Material, world mgl32.Mat4) {
	if mesh == nil || shader == nil {
		return
	}
	r.stats.Submitted++

	if r.camera != nil {
		if !r.camera.Frustum().IntersectsAABB(mesh.Bounds().Transform(world)) {
			r.stats.Culled++
			return
		}
	}

	mat := material
	if mat == nil {
		mat = r.defaultMaterial
	}

	inst := Instance{Mesh: mesh, World: world}
	if mat.IsTransparent() {
		r.transparent.add(shader, mat, inst)
	} else {
		r.opaque.add(shader, mat, inst)
	}
}

// SubmitModel submits every mesh of model, with world as the model's
// placement.
func (r *Renderer) SubmitModel(model *Model, shader Shader, world mgl32.Mat4) {
	if model == nil || shader == nil {
		return
	}
	r.SubmitModelNode(model.Root, shader, world)
}

// SubmitModelNode submits the meshes of node and its descendants. Each
// node's transform is composed onto parent; mesh i is drawn with material
// i, or the default material if the node has fewer materials than meshes.
func (r *Renderer) SubmitModelNode(node *ModelNode, shader Shader, parent mgl32.Mat4) {
	if node == nil || shader == nil {
		return
	}
	world := parent.Mul4(node.Transform)
	for i, mesh := range node.meshes {
		r.Submit(mesh, shader, node.MaterialFor(i), world)
	}
	for _, c := range node.children {
		r.SubmitModelNode(c, shader, world)
	}
}

// RenderFrame sets the polygon mode for the frame and draws the opaque
// batches, the skybox and the transparent batches, in that order.
func (r *Renderer) RenderFrame() {
	start := time.Now()

	if r.renderMode == RenderModeWireframe {
		r.device.SetPolygonMode(PolygonLine)
	} else {
		r.device.SetPolygonMode(PolygonFill)
	}

	view, proj := mgl32.Ident4(), mgl32.Ident4()
	var camPos mgl32.Vec3
	if r.camera != nil {
		view = r.camera.ViewMatrix()
		proj = r.camera.ProjectionMatrix()
		camPos = r.camera.WorldPosition()
	}

	r.renderOpaque(view, proj, camPos)
	r.renderSkybox(view, proj)
	r.renderTransparent(view, proj, camPos)

	r.stats.OpaqueBatches = len(r.opaque.batches)
	r.stats.TransparentBatches = len(r.transparent.batches)
	r.stats.RenderTime = time.Since(start)
	r.debugLog()
}

func (r *Renderer) renderOpaque(view, proj mgl32.Mat4, camPos mgl32.Vec3) {
	r.device.SetDepthWrite(true)
	r.device.SetBlending(false)
	for i := range r.opaque.batches {
		r.renderBatch(&r.opaque.batches[i], view, proj, camPos)
	}
}

// renderSkybox draws the skybox with translation stripped from the view so
// it stays centered on the camera. Depth writes are off and the depth test
// passes at equal depth, so it only fills pixels no opaque geometry covered.
func (r *Renderer) renderSkybox(view, proj mgl32.Mat4) {
	if r.skybox == nil || r.skybox.Mesh == nil || r.skyboxShader == nil || r.camera == nil {
		return
	}
	d := r.device
	s := r.skyboxShader

	d.SetDepthWrite(false)
	d.SetDepthFunc(DepthLessEqual)
	d.SetFaceCulling(false)

	s.Bind()
	d.BindCubemap(r.skybox.Cubemap)
	s.SetMat4("u_ViewMatrix", view.Mat3().Mat4())
	s.SetMat4("u_ProjectionMatrix", proj)
	s.SetInt("u_Cubemap", 0)
	d.DrawMesh(r.skybox.Mesh)
	r.stats.DrawCalls++
	d.UnbindCubemap()
	s.Unbind()

	d.SetDepthWrite(true)
	d.SetDepthFunc(DepthLess)
	d.SetFaceCulling(r.settings.FaceCulling)
}

func (r *Renderer) renderTransparent(view, proj mgl32.Mat4, camPos mgl32.Vec3) {
	sortStart := time.Now()
	r.transparent.sortBackToFront(camPos)
	r.stats.SortTime = time.Since(sortStart)

	r.device.SetDepthWrite(false)
	r.device.SetBlending(true)
	for i := range r.transparent.batches {
		r.renderBatch(&r.transparent.batches[i], view, proj, camPos)
	}
	r.device.SetDepthWrite(true)
}

// renderBatch binds the batch shader once, uploads frame, material and
// light uniforms, then draws each instance with its model matrix.
func (r *Renderer) renderBatch(b *RenderBatch, view, proj mgl32.Mat4, camPos mgl32.Vec3) {
	s := b.Shader
	if s == nil {
		return
	}
	s.Bind()
	s.SetMat4("u_ProjectionMatrix", proj)
	s.SetMat4("u_ViewMatrix", view)
	s.SetVec3("u_CameraPos", camPos)
	s.SetInt("u_RenderMode", int32(r.renderMode))

	if b.Material != nil {
		b.Material.Apply(s, r.device, MaterialUniform)
	}
	if r.lights != nil {
		r.lights.Apply(s)
	}

	for i := range b.Instances {
		inst := &b.Instances[i]
		s.SetMat4("u_ModelMatrix", inst.World)
		r.device.DrawMesh(inst.Mesh)
	}
	r.stats.DrawCalls += len(b.Instances)
	s.Unbind()
}
