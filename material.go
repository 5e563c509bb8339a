package austere

// MaterialUniform is the uniform struct name materials upload into.
const MaterialUniform = "u_Material"

// TextureSlot identifies one of a material's texture maps. The value is also
// the texture unit the map is bound to.
type TextureSlot int

const (
	SlotDiffuse TextureSlot = iota
	SlotSpecular
	SlotEmissive
	SlotNormal
	SlotOpacity
	textureSlotCount
)

var slotNames = [textureSlotCount]string{"diffuse", "specular", "emissive", "normal", "opacity"}

// String returns the slot name as used in uniform names.
func (s TextureSlot) String() string {
	if s < 0 || s >= textureSlotCount {
		return "unknown"
	}
	return slotNames[s]
}

// Material holds Phong surface parameters and up to five texture maps.
// Materials key render batches by pointer identity: two materials with equal
// fields still form separate batches.
type Material struct {
	Name string

	Ambient   Color
	Diffuse   Color
	Specular  Color
	Shininess float32

	textures [textureSlotCount]*Texture
}

// NewMaterial returns a material with the default grey Phong parameters and
// no textures.
func NewMaterial(name string) *Material {
	return &Material{
		Name:      name,
		Ambient:   Color{0.2, 0.2, 0.2, 1},
		Diffuse:   Color{0.8, 0.8, 0.8, 1},
		Specular:  Color{1, 1, 1, 1},
		Shininess: 32,
	}
}

// Texture returns the map in slot, or nil.
func (m *Material) Texture(slot TextureSlot) *Texture { return m.textures[slot] }

// SetTexture sets the map in slot. nil clears it.
func (m *Material) SetTexture(slot TextureSlot, t *Texture) { m.textures[slot] = t }

// HasTexture reports whether slot holds a texture, valid or not.
func (m *Material) HasTexture(slot TextureSlot) bool { return m.textures[slot] != nil }

// IsTransparent reports whether geometry using m must be alpha blended: it
// has a valid opacity map, or its diffuse map has a pixel with alpha < 255.
func (m *Material) IsTransparent() bool {
	if m.textures[SlotOpacity].IsValid() {
		return true
	}
	return m.textures[SlotDiffuse].HasTransparency()
}

// Apply uploads the material to s under the uniform struct name (normally
// MaterialUniform) and binds valid texture maps on d, one unit per slot.
// The shader must already be bound.
func (m *Material) Apply(s Shader, d Device, uniform string) {
	if s == nil {
		return
	}
	s.SetVec3(uniform+".ambientColor", m.Ambient.Vec3())
	s.SetVec3(uniform+".diffuseColor", m.Diffuse.Vec3())
	s.SetVec3(uniform+".specularColor", m.Specular.Vec3())
	s.SetFloat(uniform+".shininess", m.Shininess)

	for slot := SlotDiffuse; slot < textureSlotCount; slot++ {
		tex := m.textures[slot]
		has := tex.IsValid()
		if has {
			if d != nil {
				d.BindTexture(tex, int(slot))
			}
			s.SetInt(uniform+"."+slotNames[slot]+"Texture", int32(slot))
		}
		s.SetBool(uniform+".has"+capitalize(slotNames[slot])+"Texture", has)
	}
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
