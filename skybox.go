package austere

import "fmt"

// CubeFace indexes the six faces of a Cubemap, in the conventional
// +X, -X, +Y, -Y, +Z, -Z order.
type CubeFace uint8

const (
	CubeRight  CubeFace = iota // +X
	CubeLeft                   // -X
	CubeTop                    // +Y
	CubeBottom                 // -Y
	CubeFront                  // +Z
	CubeBack                   // -Z
	cubeFaceCount
)

// Cubemap is six square textures sampled by direction.
type Cubemap struct {
	Name  string
	faces [cubeFaceCount]*Texture
}

// NewCubemap creates a cubemap from faces in CubeFace order.
func NewCubemap(name string, faces [6]*Texture) *Cubemap {
	return &Cubemap{Name: name, faces: faces}
}

// LoadCubemap loads six face images given in CubeFace order.
func LoadCubemap(name string, paths [6]string) (*Cubemap, error) {
	var faces [6]*Texture
	for i, p := range paths {
		t, err := LoadTexture(p)
		if err != nil {
			return nil, fmt.Errorf("cubemap %s face %d: %w", name, i, err)
		}
		faces[i] = t
	}
	return NewCubemap(name, faces), nil
}

// Face returns the texture for face f.
func (c *Cubemap) Face(f CubeFace) *Texture { return c.faces[f] }

// IsValid reports whether all six faces hold image data.
func (c *Cubemap) IsValid() bool {
	if c == nil {
		return false
	}
	for _, f := range c.faces {
		if !f.IsValid() {
			return false
		}
	}
	return true
}

// Skybox is a cubemap drawn on a cube around the camera, behind all opaque
// geometry.
type Skybox struct {
	Cubemap *Cubemap
	Mesh    *Mesh
}

// NewSkybox creates a skybox for cm using NewSkyboxMesh.
func NewSkybox(cm *Cubemap) *Skybox {
	return &Skybox{Cubemap: cm, Mesh: NewSkyboxMesh()}
}
