package austere

import (
	"fmt"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const epsilon = 1e-4

func assertNear(t *testing.T, name string, got, want float32) {
	t.Helper()
	if math.Abs(float64(got-want)) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec3(t *testing.T, name string, got, want mgl32.Vec3) {
	t.Helper()
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > epsilon {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

func assertMat4(t *testing.T, name string, got, want mgl32.Mat4) {
	t.Helper()
	for i := range got {
		if math.Abs(float64(got[i]-want[i])) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
			return
		}
	}
}

// --- Recording fakes ---

// recorder is the call log shared by a fakeDevice and its fakeShaders so
// tests can check ordering across both.
type recorder struct {
	calls []string
	bound *fakeShader
	draws []drawRecord
}

func (r *recorder) log(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// indexOf returns the index of the first call equal to s, or -1.
func (r *recorder) indexOf(s string) int {
	for i, c := range r.calls {
		if c == s {
			return i
		}
	}
	return -1
}

// count returns how many calls equal s.
func (r *recorder) count(s string) int {
	n := 0
	for _, c := range r.calls {
		if c == s {
			n++
		}
	}
	return n
}

type drawRecord struct {
	mesh   *Mesh
	shader *fakeShader
	model  mgl32.Mat4
}

type fakeDevice struct {
	*recorder

	depthTest   bool
	depthWrite  bool
	depthFunc   DepthFunc
	faceCulling bool
	blending    bool
	polygonMode PolygonMode
	clearColor  Color
	textures    map[int]*Texture
	cubemap     *Cubemap
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{recorder: &recorder{}, textures: make(map[int]*Texture)}
}

func (d *fakeDevice) SetDepthTest(on bool) {
	d.depthTest = on
	d.log("SetDepthTest(%v)", on)
}

func (d *fakeDevice) SetDepthWrite(on bool) {
	d.depthWrite = on
	d.log("SetDepthWrite(%v)", on)
}

func (d *fakeDevice) SetDepthFunc(fn DepthFunc) {
	d.depthFunc = fn
	d.log("SetDepthFunc(%d)", fn)
}

func (d *fakeDevice) SetFaceCulling(on bool) {
	d.faceCulling = on
	d.log("SetFaceCulling(%v)", on)
}

func (d *fakeDevice) SetBlending(on bool) {
	d.blending = on
	d.log("SetBlending(%v)", on)
}

func (d *fakeDevice) SetPolygonMode(m PolygonMode) {
	d.polygonMode = m
	d.log("SetPolygonMode(%d)", m)
}

func (d *fakeDevice) Clear(c Color) {
	d.clearColor = c
	d.log("Clear")
}

func (d *fakeDevice) BindTexture(tex *Texture, slot int) {
	d.textures[slot] = tex
	d.log("BindTexture(%d)", slot)
}

func (d *fakeDevice) BindCubemap(cm *Cubemap) {
	d.cubemap = cm
	d.log("BindCubemap")
}

func (d *fakeDevice) UnbindCubemap() {
	d.cubemap = nil
	d.log("UnbindCubemap")
}

func (d *fakeDevice) DrawMesh(m *Mesh) {
	rec := drawRecord{mesh: m, shader: d.bound}
	if d.bound != nil {
		rec.model = d.bound.mat4s["u_ModelMatrix"]
	}
	d.draws = append(d.draws, rec)
	d.log("DrawMesh(%s)", m.Name)
}

type fakeShader struct {
	*recorder
	name string

	ints   map[string]int32
	bools  map[string]bool
	floats map[string]float32
	vec3s  map[string]mgl32.Vec3
	vec4s  map[string]mgl32.Vec4
	mat4s  map[string]mgl32.Mat4
}

func newFakeShader(name string, rec *recorder) *fakeShader {
	if rec == nil {
		rec = &recorder{}
	}
	return &fakeShader{
		recorder: rec,
		name:     name,
		ints:     make(map[string]int32),
		bools:    make(map[string]bool),
		floats:   make(map[string]float32),
		vec3s:    make(map[string]mgl32.Vec3),
		vec4s:    make(map[string]mgl32.Vec4),
		mat4s:    make(map[string]mgl32.Mat4),
	}
}

func (s *fakeShader) Bind() {
	s.bound = s
	s.log("Bind(%s)", s.name)
}

func (s *fakeShader) Unbind() {
	s.bound = nil
	s.log("Unbind(%s)", s.name)
}

func (s *fakeShader) SetInt(name string, v int32) { s.ints[name] = v }
func (s *fakeShader) SetBool(name string, v bool) { s.bools[name] = v }
func (s *fakeShader) SetFloat(name string, v float32) { s.floats[name] = v }
func (s *fakeShader) SetVec3(name string, v mgl32.Vec3) { s.vec3s[name] = v }
func (s *fakeShader) SetVec4(name string, v mgl32.Vec4) { s.vec4s[name] = v }
func (s *fakeShader) SetMat4(name string, v mgl32.Mat4) { s.mat4s[name] = v }

// fakeSink collects lifecycle events.
type fakeSink struct {
	events []LifecycleEvent
}

func (s *fakeSink) EmitLifecycle(ev LifecycleEvent) { s.events = append(s.events, ev) }

// types returns the event types in delivery order.
func (s *fakeSink) types() []LifecycleEventType {
	out := make([]LifecycleEventType, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Type
	}
	return out
}

// at returns a translation matrix.
func at(x, y, z float32) mgl32.Mat4 { return mgl32.Translate3D(x, y, z) }
