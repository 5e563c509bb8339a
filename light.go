package austere

import (
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
)

// LightType distinguishes the light variants.
type LightType uint8

const (
	LightDirectional LightType = iota
	LightPoint
	LightSpot
)

// String returns the light type name.
func (t LightType) String() string {
	switch t {
	case LightDirectional:
		return "Directional"
	case LightPoint:
		return "Point"
	case LightSpot:
		return "Spot"
	default:
		return "Unknown"
	}
}

// Light is a single light source. Which fields are used depends on Type:
// directional lights use Direction; point lights use Position and the
// attenuation terms; spot lights use all of them plus the cutoffs.
// Cutoffs are cosines of the cone half-angles.
type Light struct {
	Type      LightType
	Enabled   bool
	Color     Color
	Intensity float32

	Position  mgl32.Vec3
	Direction mgl32.Vec3

	Constant  float32
	Linear    float32
	Quadratic float32

	InnerCutoff float32
	OuterCutoff float32
}

// NewDirectionalLight returns an enabled white directional light.
func NewDirectionalLight(direction mgl32.Vec3) *Light {
	return &Light{
		Type:      LightDirectional,
		Enabled:   true,
		Color:     ColorWhite,
		Intensity: 1,
		Direction: direction,
	}
}

// NewPointLight returns an enabled white point light with a range of about
// 50 units.
func NewPointLight(position mgl32.Vec3) *Light {
	return &Light{
		Type:      LightPoint,
		Enabled:   true,
		Color:     ColorWhite,
		Intensity: 1,
		Position:  position,
		Constant:  1,
		Linear:    0.09,
		Quadratic: 0.032,
	}
}

// NewSpotLight returns an enabled white spot light with a 12.5 degree inner
// and 15 degree outer cone.
func NewSpotLight(position, direction mgl32.Vec3) *Light {
	return &Light{
		Type:        LightSpot,
		Enabled:     true,
		Color:       ColorWhite,
		Intensity:   1,
		Position:    position,
		Direction:   direction,
		Constant:    1,
		Linear:      0.09,
		Quadratic:   0.032,
		InnerCutoff: float32(math.Cos(float64(mgl32.DegToRad(12.5)))),
		OuterCutoff: float32(math.Cos(float64(mgl32.DegToRad(15)))),
	}
}

// apply uploads the light as element index of the uniform array name.
func (l *Light) apply(s Shader, name string, index int) {
	prefix := name + "[" + strconv.Itoa(index) + "]"
	s.SetVec3(prefix+".color", l.Color.Vec3())
	s.SetFloat(prefix+".intensity", l.Intensity)

	switch l.Type {
	case LightDirectional:
		s.SetVec3(prefix+".direction", l.Direction)
	case LightPoint:
		s.SetVec3(prefix+".position", l.Position)
		s.SetFloat(prefix+".constant", l.Constant)
		s.SetFloat(prefix+".linear", l.Linear)
		s.SetFloat(prefix+".quadratic", l.Quadratic)
	case LightSpot:
		s.SetVec3(prefix+".position", l.Position)
		s.SetVec3(prefix+".direction", l.Direction)
		s.SetFloat(prefix+".innerCutoff", l.InnerCutoff)
		s.SetFloat(prefix+".outerCutoff", l.OuterCutoff)
		s.SetFloat(prefix+".constant", l.Constant)
		s.SetFloat(prefix+".linear", l.Linear)
		s.SetFloat(prefix+".quadratic", l.Quadratic)
	}
}

// LightID identifies a light within a LightManager.
type LightID uint32

// LightManager holds the scene's lights and uploads them to shaders as
// uniform arrays. Lights are applied in the order they were added.
type LightManager struct {
	lights map[LightID]*Light
	order  []LightID
	nextID LightID
}

// NewLightManager returns an empty light manager.
func NewLightManager() *LightManager {
	return &LightManager{lights: make(map[LightID]*Light)}
}

// AddLight registers l and returns its id. A nil light is ignored and
// reported as ok == false.
func (m *LightManager) AddLight(l *Light) (id LightID, ok bool) {
	if l == nil {
		return 0, false
	}
	id = m.nextID
	m.nextID++
	m.lights[id] = l
	m.order = append(m.order, id)
	return id, true
}

// RemoveLight removes the light with id. Unknown ids are ignored.
func (m *LightManager) RemoveLight(id LightID) {
	if _, ok := m.lights[id]; !ok {
		return
	}
	delete(m.lights, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Light returns the light with id, or nil.
func (m *LightManager) Light(id LightID) *Light { return m.lights[id] }

// HasLight reports whether id is registered.
func (m *LightManager) HasLight(id LightID) bool {
	_, ok := m.lights[id]
	return ok
}

// NumLights returns the number of registered lights, enabled or not.
func (m *LightManager) NumLights() int { return len(m.lights) }

// Clear removes every light and restarts id allocation.
func (m *LightManager) Clear() {
	clear(m.lights)
	m.order = m.order[:0]
	m.nextID = 0
}

// Apply uploads u_DirLightCount, u_PointLightCount, u_SpotLightCount and the
// u_DirLights, u_PointLights and u_SpotLights arrays. Disabled lights are
// skipped and do not take an array slot.
func (m *LightManager) Apply(s Shader) {
	if m == nil || s == nil {
		return
	}
	var dir, point, spot int
	for _, id := range m.order {
		l := m.lights[id]
		if !l.Enabled {
			continue
		}
		switch l.Type {
		case LightDirectional:
			l.apply(s, "u_DirLights", dir)
			dir++
		case LightPoint:
			l.apply(s, "u_PointLights", point)
			point++
		case LightSpot:
			l.apply(s, "u_SpotLights", spot)
			spot++
		}
	}
	s.SetInt("u_DirLightCount", int32(dir))
	s.SetInt("u_PointLightCount", int32(point))
	s.SetInt("u_SpotLightCount", int32(spot))
}
