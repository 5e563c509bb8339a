// Package ebitendev runs an austere Engine inside an [Ebitengine] window.
//
// Ebitengine only rasterizes 2D triangles, so [Device] does the 3D part on
// the CPU: it transforms vertices with the matrices the Renderer uploads,
// clips them against the near plane, culls back faces, shades each face and
// queues the projected triangles. [Device.Flush] sorts the queue farthest
// first (the painter's algorithm stands in for a depth buffer) and submits
// it with DrawTriangles32, one call per run of triangles sharing a source
// image.
//
// Shaders are [Program] values created from the device. The kind picks the
// shading: [ProgramLit] applies flat Lambert lighting from the uploaded
// lights, [ProgramUnlit] draws material colors and maps as is, and
// [ProgramSkybox] maps cubemap faces onto the skybox mesh.
//
// Quick start:
//
//	settings := austere.DefaultSettings()
//	dev := ebitendev.NewDevice(settings.Graphics)
//	engine := austere.NewEngine(settings, dev)
//	lit := dev.NewProgram("lit", ebitendev.ProgramLit)
//	// ... build scenes ...
//	if err := ebitendev.Run(engine, ebitendev.RunConfig{ShowStats: true}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, wrap the engine with [NewGame] and pass the result to
// ebiten.RunGame yourself.
//
// [Ebitengine]: https://ebitengine.org
package ebitendev
