package ebitendev

import (
	"image/color"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/austere"
)

// skyDepth sorts skybox triangles behind everything else.
const skyDepth = math.MaxFloat32

// lineWidth is the wireframe edge width in pixels.
const lineWidth = 1

// textureSlots is the number of texture units a Device exposes.
const textureSlots = 8

// white placeholder singleton (no sync.Once, devices are single-threaded)
var whiteImage *ebiten.Image

func ensureWhiteImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(1, 1)
		whiteImage.Fill(color.White)
	}
	return whiteImage
}

// DeviceStats counts the work of the last frame.
type DeviceStats struct {
	Triangles int // triangles queued after clipping
	Culled    int // back faces dropped
	Clipped   int // triangles entirely behind the near plane
	Batches   int // DrawTriangles32 calls issued by Flush
}

// queuedTri is one screen-space triangle waiting for Flush.
type queuedTri struct {
	verts [3]ebiten.Vertex
	img   *ebiten.Image
	depth float32
	blend bool
}

// Device implements austere.Device on top of Ebitengine. Ebitengine draws
// 2D triangles only, so the Device transforms, clips and shades vertices on
// the CPU and resolves visibility with the painter's algorithm: while depth
// testing is on, queued triangles are drawn farthest first at Flush. With
// depth testing off they are drawn in submission order.
//
// A frame is bracketed by Begin and Flush:
//
//	dev.Begin(screen)
//	engine.Frame(dt)
//	dev.Flush()
type Device struct {
	filter    ebiten.Filter
	antiAlias bool

	target        *ebiten.Image
	width, height int

	depthTest   bool
	depthWrite  bool
	depthFunc   austere.DepthFunc
	faceCulling bool
	blending    bool
	polygonMode austere.PolygonMode

	bound    *Program
	textures [textureSlots]*austere.Texture
	cubemap  *austere.Cubemap
	images   map[*austere.Texture]*ebiten.Image

	queue      []queuedTri
	poly       []clipVertex
	batchVerts []ebiten.Vertex
	batchInds  []uint32

	stats DeviceStats
}

var _ austere.Device = (*Device)(nil)

// NewDevice creates a device whose sampling follows g: a nearest MagFilter
// selects nearest-neighbor sampling and any MSAA level turns on
// anti-aliased triangle edges.
func NewDevice(g austere.GraphicsSettings) *Device {
	d := &Device{
		filter:     ebiten.FilterLinear,
		antiAlias:  g.MSAA > 0,
		depthTest:  true,
		depthWrite: true,
		images:     make(map[*austere.Texture]*ebiten.Image),
	}
	if g.MagFilter == austere.FilterNearest {
		d.filter = ebiten.FilterNearest
	}
	return d
}

// --- Frame ---

// Begin starts a frame that draws into target.
func (d *Device) Begin(target *ebiten.Image) {
	d.target = target
	if target != nil {
		b := target.Bounds()
		d.width, d.height = b.Dx(), b.Dy()
	}
	d.queue = d.queue[:0]
	d.stats = DeviceStats{}
}

// Flush draws every queued triangle into the target, batching consecutive
// triangles that share a source image and blend state into one
// DrawTriangles32 call. Triangles queued with blending off replace the
// destination; the rest are blended source-over.
func (d *Device) Flush() {
	if d.target == nil || len(d.queue) == 0 {
		d.queue = d.queue[:0]
		return
	}
	if d.depthTest {
		d.sortQueue()
	}

	var img *ebiten.Image
	var blend bool
	for i := range d.queue {
		q := &d.queue[i]
		if q.img != img || q.blend != blend {
			d.flushBatch(img, blend)
			img, blend = q.img, q.blend
		}
		base := uint32(len(d.batchVerts))
		d.batchVerts = append(d.batchVerts, q.verts[:]...)
		d.batchInds = append(d.batchInds, base, base+1, base+2)
	}
	d.flushBatch(img, blend)
	d.queue = d.queue[:0]
}

// sortQueue orders queued triangles farthest first, keeping submission
// order among equal depths.
func (d *Device) sortQueue() {
	slices.SortStableFunc(d.queue, func(a, b queuedTri) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
}

func (d *Device) flushBatch(img *ebiten.Image, blend bool) {
	if len(d.batchVerts) == 0 || img == nil {
		d.batchVerts = d.batchVerts[:0]
		d.batchInds = d.batchInds[:0]
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Filter = d.filter
	op.AntiAlias = d.antiAlias
	op.Blend = ebiten.BlendCopy
	if blend {
		op.Blend = ebiten.BlendSourceOver
	}
	d.target.DrawTriangles32(d.batchVerts, d.batchInds, img, &op)
	d.stats.Batches++

	d.batchVerts = d.batchVerts[:0]
	d.batchInds = d.batchInds[:0]
}

// Stats returns the counters of the current frame.
func (d *Device) Stats() DeviceStats { return d.stats }

// Queued returns the number of triangles waiting for Flush.
func (d *Device) Queued() int { return len(d.queue) }

// --- State ---

func (d *Device) SetDepthTest(enabled bool) { d.depthTest = enabled }
func (d *Device) SetDepthWrite(enabled bool) { d.depthWrite = enabled }
func (d *Device) SetDepthFunc(fn austere.DepthFunc) { d.depthFunc = fn }
func (d *Device) SetFaceCulling(enabled bool) { d.faceCulling = enabled }
func (d *Device) SetBlending(enabled bool) { d.blending = enabled }
func (d *Device) SetPolygonMode(mode austere.PolygonMode) { d.polygonMode = mode }

// DepthTest reports whether depth sorting is on.
func (d *Device) DepthTest() bool { return d.depthTest }

// FaceCulling reports whether back faces are dropped.
func (d *Device) FaceCulling() bool { return d.faceCulling }

// PolygonMode returns the current rasterization mode.
func (d *Device) PolygonMode() austere.PolygonMode { return d.polygonMode }

// Clear fills the target with c and drops queued triangles.
func (d *Device) Clear(c austere.Color) {
	d.queue = d.queue[:0]
	if d.target == nil {
		return
	}
	d.target.Fill(color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	})
}

// --- Textures ---

// BindTexture binds tex to slot. Slots outside [0, 8) are ignored.
func (d *Device) BindTexture(tex *austere.Texture, slot int) {
	if slot < 0 || slot >= textureSlots {
		return
	}
	d.textures[slot] = tex
}

func (d *Device) BindCubemap(cm *austere.Cubemap) { d.cubemap = cm }
func (d *Device) UnbindCubemap() { d.cubemap = nil }

// image returns the GPU image for tex, uploading it on first use.
func (d *Device) image(tex *austere.Texture) *ebiten.Image {
	if !tex.IsValid() {
		return nil
	}
	if img, ok := d.images[tex]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(tex.Image())
	d.images[tex] = img
	return img
}

// Release frees the image uploaded for tex, if any.
func (d *Device) Release(tex *austere.Texture) {
	if img, ok := d.images[tex]; ok {
		img.Deallocate()
		delete(d.images, tex)
	}
}

// Dispose frees every uploaded image.
func (d *Device) Dispose() {
	for tex, img := range d.images {
		img.Deallocate()
		delete(d.images, tex)
	}
}

// --- Drawing ---

// DrawMesh transforms mesh with the bound program's u_ModelMatrix,
// u_ViewMatrix and u_ProjectionMatrix and queues its triangles. It is a
// no-op without a bound program or a target.
func (d *Device) DrawMesh(mesh *austere.Mesh) {
	p := d.bound
	if p == nil || mesh == nil || d.target == nil {
		return
	}
	if p.kind == ProgramSkybox {
		d.drawSkybox(p, mesh)
		return
	}
	d.drawSurface(p, mesh)
}

func (d *Device) drawSurface(p *Program, mesh *austere.Mesh) {
	model := p.Mat4("u_ModelMatrix")
	mvp := p.Mat4("u_ProjectionMatrix").Mul4(p.Mat4("u_ViewMatrix")).Mul4(model)

	img := ensureWhiteImage()
	var texW, texH float32
	if p.Bool(austere.MaterialUniform + ".hasDiffuseTexture") {
		if ti := d.image(d.textures[austere.SlotDiffuse]); ti != nil {
			img = ti
			b := ti.Bounds()
			texW, texH = float32(b.Dx()), float32(b.Dy())
		}
	}
	textured := img != whiteImage && mesh.HasTexCoords()
	base := p.Vec3(austere.MaterialUniform + ".diffuseColor")

	verts := mesh.Vertices()
	uvs := mesh.TexCoords()
	for i, n := 0, mesh.TriangleCount(); i < n; i++ {
		ia, ib, ic := mesh.Triangle(i)
		idx := [3]uint32{ia, ib, ic}

		var tri [3]clipVertex
		var world [3]mgl32.Vec3
		for k, vi := range idx {
			v := verts[vi].Vec4(1)
			world[k] = model.Mul4x1(v).Vec3()
			tri[k].pos = mvp.Mul4x1(v)
			tri[k].uv = mgl32.Vec2{0.5, 0.5}
			if textured && int(vi) < len(uvs) {
				tri[k].uv = mgl32.Vec2{uvs[vi][0] * texW, (1 - uvs[vi][1]) * texH}
			}
		}

		c := base
		if p.kind == ProgramLit {
			normal := world[1].Sub(world[0]).Cross(world[2].Sub(world[0]))
			center := world[0].Add(world[1]).Add(world[2]).Mul(1.0 / 3)
			c = shade(p, normal, center, base)
		}
		d.queuePolygon(tri, img, c, true)
	}
}

func (d *Device) drawSkybox(p *Program, mesh *austere.Mesh) {
	if !d.cubemap.IsValid() {
		return
	}
	vp := p.Mat4("u_ProjectionMatrix").Mul4(p.Mat4("u_ViewMatrix"))
	verts := mesh.Vertices()
	for i, n := 0, mesh.TriangleCount(); i < n; i++ {
		ia, ib, ic := mesh.Triangle(i)
		local := [3]mgl32.Vec3{verts[ia], verts[ib], verts[ic]}
		face := skyboxFace(local[0], local[1], local[2])
		img := d.image(d.cubemap.Face(austere.CubeFace(face)))
		if img == nil {
			continue
		}
		b := img.Bounds()
		w, h := float32(b.Dx()), float32(b.Dy())

		var tri [3]clipVertex
		for k, v := range local {
			uv := skyboxUV(face, v)
			tri[k] = clipVertex{pos: vp.Mul4x1(v.Vec4(1)), uv: mgl32.Vec2{uv[0] * w, uv[1] * h}}
		}
		d.queuePolygon(tri, img, mgl32.Vec3{1, 1, 1}, false)
	}
}

// queuePolygon clips tri, projects it and queues the result as filled
// triangles or wireframe edges. Skybox triangles (depth writes off with a
// less-or-equal test) sort behind everything.
func (d *Device) queuePolygon(tri [3]clipVertex, img *ebiten.Image, c mgl32.Vec3, cull bool) {
	d.poly = clipNear(d.poly[:0], tri)
	if len(d.poly) < 3 {
		d.stats.Clipped++
		return
	}

	var screen [4]ebiten.Vertex
	var proj [4]mgl32.Vec3
	var depth float32
	for k, v := range d.poly {
		proj[k] = ndc(v.pos)
		x, y := toScreen(proj[k], d.width, d.height)
		screen[k] = ebiten.Vertex{
			DstX: x, DstY: y,
			SrcX: v.uv[0], SrcY: v.uv[1],
			ColorR: c[0], ColorG: c[1], ColorB: c[2], ColorA: 1,
		}
		depth += v.pos[3]
	}
	depth /= float32(len(d.poly))
	if !d.depthWrite && d.depthFunc == austere.DepthLessEqual {
		depth = skyDepth
	}

	if cull && d.faceCulling && signedArea(proj[0], proj[1], proj[2]) <= 0 {
		d.stats.Culled++
		return
	}

	n := len(d.poly)
	if d.polygonMode == austere.PolygonLine {
		for k := 0; k < n; k++ {
			d.queueLine(screen[k], screen[(k+1)%n], depth)
		}
		return
	}
	for k := 1; k < n-1; k++ {
		d.queue = append(d.queue, queuedTri{
			verts: [3]ebiten.Vertex{screen[0], screen[k], screen[k+1]},
			img:   img,
			depth: depth,
			blend: d.blending,
		})
		d.stats.Triangles++
	}
}

// queueLine queues the edge a-b as a thin quad drawn with the white image.
func (d *Device) queueLine(a, b ebiten.Vertex, depth float32) {
	dx, dy := b.DstX-a.DstX, b.DstY-a.DstY
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*lineWidth/2, dx/l*lineWidth/2

	corner := func(v ebiten.Vertex, sx, sy float32) ebiten.Vertex {
		v.DstX += sx
		v.DstY += sy
		v.SrcX, v.SrcY = 0.5, 0.5
		return v
	}
	q := [4]ebiten.Vertex{corner(a, nx, ny), corner(b, nx, ny), corner(b, -nx, -ny), corner(a, -nx, -ny)}
	white := ensureWhiteImage()
	d.queue = append(d.queue,
		queuedTri{verts: [3]ebiten.Vertex{q[0], q[1], q[2]}, img: white, depth: depth, blend: d.blending},
		queuedTri{verts: [3]ebiten.Vertex{q[0], q[2], q[3]}, img: white, depth: depth, blend: d.blending},
	)
	d.stats.Triangles += 2
}
