package ebitendev

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/austere"
)

// ProgramKind selects how a Program shades the triangles it draws.
type ProgramKind uint8

const (
	// ProgramLit applies flat Lambert shading from the directional and point
	// lights uploaded by the LightManager, over the material colors and the
	// diffuse map.
	ProgramLit ProgramKind = iota
	// ProgramUnlit draws the material diffuse color and diffuse map as is.
	ProgramUnlit
	// ProgramSkybox maps the bound cubemap's faces onto a skybox mesh.
	ProgramSkybox
)

// String returns the kind name.
func (k ProgramKind) String() string {
	switch k {
	case ProgramLit:
		return "Lit"
	case ProgramUnlit:
		return "Unlit"
	case ProgramSkybox:
		return "Skybox"
	default:
		return "Unknown"
	}
}

// Program is the austere.Shader of a Device. It stores uniforms by name the
// way a GPU program would; the Device reads them back when drawing. Binding
// a program makes it current on its Device.
type Program struct {
	name string
	kind ProgramKind
	dev  *Device

	ints  map[string]int32
	bools map[string]bool
	flts  map[string]float32
	vec3s map[string]mgl32.Vec3
	vec4s map[string]mgl32.Vec4
	mat4s map[string]mgl32.Mat4
}

var _ austere.Shader = (*Program)(nil)

// NewProgram creates a program of kind bound to d.
func (d *Device) NewProgram(name string, kind ProgramKind) *Program {
	return &Program{
		name:  name,
		kind:  kind,
		dev:   d,
		ints:  make(map[string]int32),
		bools: make(map[string]bool),
		flts:  make(map[string]float32),
		vec3s: make(map[string]mgl32.Vec3),
		vec4s: make(map[string]mgl32.Vec4),
		mat4s: make(map[string]mgl32.Mat4),
	}
}

// Name returns the program name.
func (p *Program) Name() string { return p.name }

// Kind returns the shading kind.
func (p *Program) Kind() ProgramKind { return p.kind }

// Bind makes p the program DrawMesh uses.
func (p *Program) Bind() { p.dev.bound = p }

// Unbind clears the current program if it is p.
func (p *Program) Unbind() {
	if p.dev.bound == p {
		p.dev.bound = nil
	}
}

func (p *Program) SetInt(name string, v int32) { p.ints[name] = v }
func (p *Program) SetBool(name string, v bool) { p.bools[name] = v }
func (p *Program) SetFloat(name string, v float32) { p.flts[name] = v }
func (p *Program) SetVec3(name string, v mgl32.Vec3) { p.vec3s[name] = v }
func (p *Program) SetVec4(name string, v mgl32.Vec4) { p.vec4s[name] = v }
func (p *Program) SetMat4(name string, v mgl32.Mat4) { p.mat4s[name] = v }

// Int returns an integer uniform, or 0.
func (p *Program) Int(name string) int32 { return p.ints[name] }

// Bool returns a boolean uniform, or false.
func (p *Program) Bool(name string) bool { return p.bools[name] }

// Float returns a float uniform, or 0.
func (p *Program) Float(name string) float32 { return p.flts[name] }

// Vec3 returns a vector uniform, or the zero vector.
func (p *Program) Vec3(name string) mgl32.Vec3 { return p.vec3s[name] }

// Mat4 returns a matrix uniform, or identity when it was never set.
func (p *Program) Mat4(name string) mgl32.Mat4 {
	if m, ok := p.mat4s[name]; ok {
		return m
	}
	return mgl32.Ident4()
}
