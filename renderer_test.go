package austere

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestRenderer() (*Renderer, *fakeDevice) {
	dev := newFakeDevice()
	r := NewRenderer(dev, nil, DefaultRendererSettings())
	return r, dev
}

// transparentMaterial returns a material whose diffuse map has a
// half-transparent pixel.
func transparentMaterial(name string) *Material {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	img.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 128})
	m := NewMaterial(name)
	m.SetTexture(SlotDiffuse, NewTexture(name+".png", img))
	return m
}

func TestNewRendererPanicsWithoutDevice(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewRenderer(nil) should panic")
		}
	}()
	NewRenderer(nil, nil, DefaultRendererSettings())
}

func TestRendererInitializeShutdown(t *testing.T) {
	r, _ := newTestRenderer()
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if err := r.Initialize(); err == nil {
		t.Error("second Initialize should fail")
	}
	r.SetCamera(NewCamera())
	r.Shutdown()
	if r.IsInitialized() || r.Camera() != nil {
		t.Error("Shutdown should reset the renderer")
	}
}

// --- PrepareFrame ---

func TestPrepareFrameAppliesSettingsAndClears(t *testing.T) {
	dev := newFakeDevice()
	settings := RendererSettings{ClearColor: ColorRed, DepthTest: true, FaceCulling: false}
	r := NewRenderer(dev, nil, settings)
	s := newFakeShader("s", dev.recorder)

	r.PrepareFrame()
	r.Submit(NewCubeMesh("cube", 1), s, nil, mgl32.Ident4())
	r.PrepareFrame()

	if !dev.depthTest || dev.faceCulling {
		t.Errorf("depthTest = %v, faceCulling = %v, want true, false", dev.depthTest, dev.faceCulling)
	}
	if dev.clearColor != ColorRed {
		t.Errorf("clear color = %v, want red", dev.clearColor)
	}
	if dev.count("Clear") != 2 {
		t.Errorf("Clear calls = %d, want 2", dev.count("Clear"))
	}
	if len(r.OpaqueBatches()) != 0 || r.Stats().Submitted != 0 {
		t.Error("PrepareFrame should drop last frame's batches and stats")
	}
}

// --- Submit ---

func TestSubmitBatchesByShaderAndMaterial(t *testing.T) {
	r, dev := newTestRenderer()
	sa := newFakeShader("a", dev.recorder)
	matA, matB := NewMaterial("a"), NewMaterial("b")
	mesh := NewCubeMesh("cube", 1)

	r.PrepareFrame()
	r.Submit(mesh, sa, matA, at(0, 0, 0))
	r.Submit(mesh, sa, matA, at(1, 0, 0))
	r.Submit(mesh, sa, matB, at(2, 0, 0))
	r.RenderFrame()

	batches := r.OpaqueBatches()
	if len(batches) != 2 {
		t.Fatalf("opaque batches = %d, want 2", len(batches))
	}
	if len(batches[0].Instances) != 2 || len(batches[1].Instances) != 1 {
		t.Errorf("instances = %d, %d, want 2, 1", len(batches[0].Instances), len(batches[1].Instances))
	}
	if dev.count("Bind(a)") != 2 {
		t.Errorf("shader binds = %d, want one per batch", dev.count("Bind(a)"))
	}
	if len(dev.draws) != 3 {
		t.Errorf("draws = %d, want 3", len(dev.draws))
	}
}

func TestSubmitIgnoresNilMeshAndShader(t *testing.T) {
	r, dev := newTestRenderer()
	s := newFakeShader("s", dev.recorder)
	r.PrepareFrame()
	r.Submit(nil, s, nil, mgl32.Ident4())
	r.Submit(NewCubeMesh("cube", 1), nil, nil, mgl32.Ident4())
	r.SubmitModel(nil, s, mgl32.Ident4())
	r.SubmitModelNode(nil, s, mgl32.Ident4())
	if len(r.OpaqueBatches())+len(r.TransparentBatches()) != 0 {
		t.Error("nil submissions should be ignored")
	}
	if r.Stats().Submitted != 0 {
		t.Errorf("Submitted = %d, want 0", r.Stats().Submitted)
	}
}

func TestSubmitFallsBackToDefaultMaterial(t *testing.T) {
	r, dev := newTestRenderer()
	s := newFakeShader("s", dev.recorder)
	r.PrepareFrame()
	r.Submit(NewCubeMesh("cube", 1), s, nil, mgl32.Ident4())
	if got := r.OpaqueBatches()[0].Material; got != r.DefaultMaterial() {
		t.Errorf("material = %v, want the default material", got)
	}

	custom := NewMaterial("custom")
	r.SetDefaultMaterial(custom)
	r.SetDefaultMaterial(nil)
	if r.DefaultMaterial() != custom {
		t.Error("SetDefaultMaterial(nil) should be ignored")
	}
}

func TestSubmitSplitsTransparent(t *testing.T) {
	r, dev := newTestRenderer()
	s := newFakeShader("s", dev.recorder)
	r.PrepareFrame()
	r.Submit(NewCubeMesh("opaque", 1), s, NewMaterial("solid"), mgl32.Ident4())
	r.Submit(NewCubeMesh("glass", 1), s, transparentMaterial("glass"), mgl32.Ident4())
	if len(r.OpaqueBatches()) != 1 || len(r.TransparentBatches()) != 1 {
		t.Errorf("opaque = %d, transparent = %d, want 1, 1",
			len(r.OpaqueBatches()), len(r.TransparentBatches()))
	}
}

func TestSubmitCullsAgainstCamera(t *testing.T) {
	r, dev := newTestRenderer()
	s := newFakeShader("s", dev.recorder)
	r.SetCamera(NewCameraWith(1, 45, 0.1, 100))
	mesh := NewCubeMesh("cube", 1)

	r.PrepareFrame()
	r.Submit(mesh, s, nil, at(0, 0, -10)) // ahead
	r.Submit(mesh, s, nil, at(0, 0, 10))  // behind
	r.Submit(mesh, s, nil, at(0, 0, -500))

	if n := len(r.OpaqueBatches()[0].Instances); n != 1 {
		t.Errorf("visible instances = %d, want 1", n)
	}
	st := r.Stats()
	if st.Submitted != 3 || st.Culled != 2 {
		t.Errorf("Submitted = %d, Culled = %d, want 3, 2", st.Submitted, st.Culled)
	}
}

func TestSubmitWithoutCameraDoesNotCull(t *testing.T) {
	r, dev := newTestRenderer()
	s := newFakeShader("s", dev.recorder)
	r.PrepareFrame()
	r.Submit(NewCubeMesh("cube", 1), s, nil, at(0, 0, 1e6))
	r.RenderFrame()

	if len(dev.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(dev.draws))
	}
	assertMat4(t, "u_ViewMatrix", s.mat4s["u_ViewMatrix"], mgl32.Ident4())
	assertMat4(t, "u_ProjectionMatrix", s.mat4s["u_ProjectionMatrix"], mgl32.Ident4())
	assertVec3(t, "u_CameraPos", s.vec3s["u_CameraPos"], mgl32.Vec3{})
}

func TestSubmitModelComposesNodeTransforms(t *testing.T) {
	r, dev := newTestRenderer()
	s := newFakeShader("s", dev.recorder)

	model := NewModel("m")
	model.Root.Transform = at(1, 0, 0)
	m1, m2 := NewMaterial("m1"), NewMaterial("m2")
	model.Root.AddMesh(NewCubeMesh("a", 1))
	model.Root.AddMesh(NewCubeMesh("b", 1))
	model.Root.AddMaterial(m1)
	model.Root.AddMaterial(m2)
	child := NewModelPart("child")
	child.Transform = at(0, 2, 0)
	child.AddMesh(NewCubeMesh("c", 1)) // no material: default
	model.Root.AddChild(child)

	r.PrepareFrame()
	r.SubmitModel(model, s, at(0, 0, 3))

	batches := r.OpaqueBatches()
	if len(batches) != 3 {
		t.Fatalf("batches = %d, want 3 (one per material)", len(batches))
	}
	if batches[0].Material != m1 || batches[1].Material != m2 || batches[2].Material != r.DefaultMaterial() {
		t.Error("sibling meshes should keep their own materials")
	}
	assertVec3(t, "root mesh position", batches[0].Instances[0].World.Col(3).Vec3(), mgl32.Vec3{1, 0, 3})
	assertVec3(t, "child mesh position", batches[2].Instances[0].World.Col(3).Vec3(), mgl32.Vec3{1, 2, 3})
}

// --- RenderFrame ---

func TestRenderFrameTransparentBackToFront(t *testing.T) {
	r, dev := newTestRenderer()
	s := newFakeShader("s", dev.recorder)
	r.SetCamera(NewCamera())
	mesh := NewCubeMesh("cube", 0.5)

	r.PrepareFrame()
	for _, d := range []float32{5, 1, 8} {
		r.Submit(mesh, s, transparentMaterial("glass"), at(0, 0, -d))
	}
	r.RenderFrame()

	want := []float32{-8, -5, -1}
	if len(dev.draws) != len(want) {
		t.Fatalf("draws = %d, want %d", len(dev.draws), len(want))
	}
	for i, d := range dev.draws {
		assertNear(t, "draw z", d.model.Col(3)[2], want[i])
	}
	batches := r.TransparentBatches()
	assertNear(t, "first batch z", batches[0].Instances[0].World.Col(3)[2], -8)
	assertNear(t, "last batch z", batches[2].Instances[0].World.Col(3)[2], -1)
}

func TestRenderFramePassOrderAndState(t *testing.T) {
	r, dev := newTestRenderer()
	opaque := newFakeShader("opaque", dev.recorder)
	glass := newFakeShader("glass", dev.recorder)
	sky := newFakeShader("sky", dev.recorder)
	cam := NewCamera()
	cam.SetPosition(mgl32.Vec3{1, 0, 2})
	r.SetCamera(cam)
	r.SetSkybox(NewSkybox(nil))
	r.SetSkyboxShader(sky)

	r.PrepareFrame()
	r.Submit(NewCubeMesh("window", 1), glass, transparentMaterial("glass"), at(0, 0, -5))
	r.Submit(NewCubeMesh("wall", 1), opaque, nil, at(0, 0, -10))
	r.RenderFrame()

	wall := dev.indexOf("DrawMesh(wall)")
	skybox := dev.indexOf("DrawMesh(skybox)")
	window := dev.indexOf("DrawMesh(window)")
	if wall < 0 || skybox < 0 || window < 0 {
		t.Fatalf("missing draws in %v", dev.calls)
	}
	if !(wall < skybox && skybox < window) {
		t.Errorf("draw order wall=%d skybox=%d window=%d, want opaque < skybox < transparent", wall, skybox, window)
	}

	// skybox state: depth write off, LEQUAL, culling off, then restored
	calls := dev.calls[wall:skybox]
	for _, want := range []string{"SetDepthWrite(false)", "SetDepthFunc(1)", "SetFaceCulling(false)", "Bind(sky)", "BindCubemap"} {
		if !contains(calls, want) {
			t.Errorf("before skybox draw: missing %s in %v", want, calls)
		}
	}
	calls = dev.calls[skybox:window]
	for _, want := range []string{"UnbindCubemap", "SetDepthFunc(0)", "SetFaceCulling(true)", "SetBlending(true)"} {
		if !contains(calls, want) {
			t.Errorf("after skybox draw: missing %s in %v", want, calls)
		}
	}
	if !dev.depthWrite {
		t.Error("depth write should be on after the frame")
	}

	// skybox view keeps the rotation but drops the translation
	v := sky.mat4s["u_ViewMatrix"]
	assertVec3(t, "skybox view translation", v.Col(3).Vec3(), mgl32.Vec3{})
	if got := opaque.mat4s["u_ViewMatrix"].Col(3).Vec3(); got.Len() == 0 {
		t.Error("opaque view should keep the camera translation")
	}
	if sky.ints["u_Cubemap"] != 0 {
		t.Errorf("u_Cubemap = %d, want 0", sky.ints["u_Cubemap"])
	}
}

func TestRenderFrameSkipsSkyboxWithoutShaderOrCamera(t *testing.T) {
	r, dev := newTestRenderer()
	r.SetSkybox(NewSkybox(nil))
	r.SetSkyboxShader(newFakeShader("sky", dev.recorder))
	r.PrepareFrame()
	r.RenderFrame()
	if dev.indexOf("DrawMesh(skybox)") >= 0 {
		t.Error("skybox should not draw without a camera")
	}
}

func TestRenderFrameWireframe(t *testing.T) {
	r, dev := newTestRenderer()
	s := newFakeShader("s", dev.recorder)
	r.SetRenderMode(RenderModeWireframe)
	r.PrepareFrame()
	r.Submit(NewCubeMesh("cube", 1), s, nil, mgl32.Ident4())
	r.RenderFrame()

	if dev.polygonMode != PolygonLine {
		t.Errorf("polygon mode = %d, want PolygonLine", dev.polygonMode)
	}
	if s.ints["u_RenderMode"] != int32(RenderModeWireframe) {
		t.Errorf("u_RenderMode = %d, want %d", s.ints["u_RenderMode"], RenderModeWireframe)
	}

	r.SetRenderMode(RenderModeDefault)
	r.PrepareFrame()
	r.RenderFrame()
	if dev.polygonMode != PolygonFill {
		t.Error("default mode should fill polygons")
	}
}

func TestRenderFrameUploadsCameraAndLights(t *testing.T) {
	dev := newFakeDevice()
	lights := NewLightManager()
	lights.AddLight(NewDirectionalLight(mgl32.Vec3{0, -1, 0}))
	r := NewRenderer(dev, lights, DefaultRendererSettings())
	s := newFakeShader("s", dev.recorder)
	cam := NewCamera()
	cam.SetPosition(mgl32.Vec3{0, 1, 5})
	r.SetCamera(cam)

	r.PrepareFrame()
	r.Submit(NewCubeMesh("cube", 1), s, nil, mgl32.Ident4())
	r.RenderFrame()

	assertMat4(t, "u_ViewMatrix", s.mat4s["u_ViewMatrix"], cam.ViewMatrix())
	assertMat4(t, "u_ProjectionMatrix", s.mat4s["u_ProjectionMatrix"], cam.ProjectionMatrix())
	assertVec3(t, "u_CameraPos", s.vec3s["u_CameraPos"], mgl32.Vec3{0, 1, 5})
	if s.ints["u_DirLightCount"] != 1 {
		t.Errorf("u_DirLightCount = %d, want 1", s.ints["u_DirLightCount"])
	}
	if _, ok := s.vec3s[MaterialUniform+".diffuseColor"]; !ok {
		t.Error("material uniforms should be uploaded")
	}
}

func TestRenderFrameStats(t *testing.T) {
	r, dev := newTestRenderer()
	s := newFakeShader("s", dev.recorder)
	r.PrepareFrame()
	r.Submit(NewCubeMesh("a", 1), s, nil, mgl32.Ident4())
	r.Submit(NewCubeMesh("b", 1), s, nil, mgl32.Ident4())
	r.Submit(NewCubeMesh("c", 1), s, transparentMaterial("t"), mgl32.Ident4())
	r.RenderFrame()

	st := r.Stats()
	if st.OpaqueBatches != 1 || st.TransparentBatches != 1 || st.DrawCalls != 3 {
		t.Errorf("stats = %+v, want 1 opaque, 1 transparent, 3 draws", st)
	}
}

func contains(calls []string, s string) bool {
	for _, c := range calls {
		if c == s {
			return true
		}
	}
	return false
}
