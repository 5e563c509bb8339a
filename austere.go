package austere

import "github.com/go-gl/mathgl/mgl32"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R float32 `json:"r" toml:"r" yaml:"r"`
	G float32 `json:"g" toml:"g" yaml:"g"`
	B float32 `json:"b" toml:"b" yaml:"b"`
	A float32 `json:"a" toml:"a" yaml:"a"`
}

// Named colors.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorRed         = Color{1, 0, 0, 1}
	ColorGreen       = Color{0, 1, 0, 1}
	ColorBlue        = Color{0, 0, 1, 1}
	ColorYellow      = Color{1, 1, 0, 1}
	ColorCyan        = Color{0, 1, 1, 1}
	ColorMagenta     = Color{1, 0, 1, 1}
	ColorTransparent = Color{0, 0, 0, 0}
)

// Vec3 returns the RGB components.
func (c Color) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// Vec4 returns all four components.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// NodeType distinguishes what a Node contributes to a frame.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeCamera                    // owns a Camera parented to the node
	NodeTypeModel                     // submits a Model every render
	NodeTypeMesh                      // submits a single Mesh every render
)

// String returns the node type name.
func (t NodeType) String() string {
	switch t {
	case NodeTypeContainer:
		return "Container"
	case NodeTypeCamera:
		return "Camera"
	case NodeTypeModel:
		return "Model"
	case NodeTypeMesh:
		return "Mesh"
	default:
		return "Unknown"
	}
}

// RenderMode selects how geometry is rasterized for a whole frame. The value
// is also uploaded to shaders as u_RenderMode.
type RenderMode int32

const (
	RenderModeDefault   RenderMode = iota // filled triangles
	RenderModeWireframe                   // triangle edges only
)

// String returns the render mode name.
func (m RenderMode) String() string {
	switch m {
	case RenderModeDefault:
		return "Default"
	case RenderModeWireframe:
		return "Wireframe"
	default:
		return "Unknown"
	}
}
