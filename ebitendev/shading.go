package ebitendev

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/austere"
)

// shade returns the flat Lambert color of a face with the given world-space
// normal (any length) and center, lit by the lights uploaded to p. With no
// enabled lights the base color is returned unchanged.
func shade(p *Program, normal, center, base mgl32.Vec3) mgl32.Vec3 {
	nDir := p.Int("u_DirLightCount")
	nPoint := p.Int("u_PointLightCount")
	nSpot := p.Int("u_SpotLightCount")
	if nDir+nPoint+nSpot == 0 {
		return base
	}
	if normal.Len() == 0 {
		return mulVec(p.Vec3(austere.MaterialUniform+".ambientColor"), base)
	}
	n := normal.Normalize()

	light := p.Vec3(austere.MaterialUniform + ".ambientColor")
	for i := int32(0); i < nDir; i++ {
		prefix := arrayPrefix("u_DirLights", i)
		dir := p.Vec3(prefix + ".direction")
		if dir.Len() == 0 {
			continue
		}
		lambert := max(0, n.Dot(dir.Normalize().Mul(-1)))
		light = light.Add(radiance(p, prefix).Mul(lambert))
	}
	for i := int32(0); i < nPoint; i++ {
		prefix := arrayPrefix("u_PointLights", i)
		toLight, dist := direction(p.Vec3(prefix+".position"), center)
		lambert := max(0, n.Dot(toLight))
		light = light.Add(radiance(p, prefix).Mul(lambert * attenuation(p, prefix, dist)))
	}
	for i := int32(0); i < nSpot; i++ {
		prefix := arrayPrefix("u_SpotLights", i)
		toLight, dist := direction(p.Vec3(prefix+".position"), center)
		spotDir := p.Vec3(prefix + ".direction")
		if spotDir.Len() == 0 {
			continue
		}
		theta := toLight.Dot(spotDir.Normalize().Mul(-1))
		inner, outer := p.Float(prefix+".innerCutoff"), p.Float(prefix+".outerCutoff")
		cone := float32(1)
		if inner > outer {
			cone = clamp01((theta - outer) / (inner - outer))
		} else if theta < outer {
			cone = 0
		}
		lambert := max(0, n.Dot(toLight))
		light = light.Add(radiance(p, prefix).Mul(lambert * cone * attenuation(p, prefix, dist)))
	}

	c := mulVec(light, base)
	return mgl32.Vec3{clamp01(c[0]), clamp01(c[1]), clamp01(c[2])}
}

func arrayPrefix(name string, i int32) string {
	return name + "[" + strconv.Itoa(int(i)) + "]"
}

// radiance is the light color scaled by its intensity.
func radiance(p *Program, prefix string) mgl32.Vec3 {
	return p.Vec3(prefix + ".color").Mul(p.Float(prefix + ".intensity"))
}

// attenuation is 1 / (constant + linear*d + quadratic*d^2), or 1 when the
// denominator is not positive.
func attenuation(p *Program, prefix string, dist float32) float32 {
	den := p.Float(prefix+".constant") + p.Float(prefix+".linear")*dist + p.Float(prefix+".quadratic")*dist*dist
	if den <= 0 {
		return 1
	}
	return 1 / den
}

// direction returns the unit vector from point to light and the distance.
func direction(light, point mgl32.Vec3) (mgl32.Vec3, float32) {
	d := light.Sub(point)
	l := d.Len()
	if l == 0 {
		return mgl32.Vec3{}, 0
	}
	return d.Mul(1 / l), l
}

func mulVec(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}
