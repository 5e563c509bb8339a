// Package austere is the core of a forward-rendering 3D engine: a scene
// graph of named nodes, a transform hierarchy, a perspective camera with
// frustum culling, and a renderer that batches draw submissions.
//
// The package draws through two small interfaces, [Device] and [Shader],
// so the core has no dependency on a graphics API. Package
// austere/ebitendev implements both on top of [Ebitengine] and hosts the
// frame loop.
//
// # Quick start
//
//	eng := austere.NewEngine(austere.DefaultSettings(), device)
//	if err := eng.Initialize(); err != nil {
//		log.Fatal(err)
//	}
//
//	scene := austere.NewScene("main", nil)
//	cam := austere.NewCameraNode("camera")
//	cam.Transform().SetPosition(mgl32.Vec3{0, 2, 8})
//	scene.Root().AddChild(cam)
//
//	cube := austere.NewMeshNode("cube", austere.NewCubeMesh("cube", 1), shader, nil)
//	scene.Root().AddChild(cube)
//
//	eng.Scenes().AddScene(scene)
//	eng.Scenes().SetActiveScene("main")
//
//	for running {
//		eng.Frame(dt)
//	}
//
// # Scene graph
//
// Every element is a [Node]. Nodes form a tree rooted at [Scene.Root].
// Children have unique names under their parent, and each child's
// [Transform] is parented to its parent's, so moving a node moves its
// subtree. A node's kind is a [NodeType]; behavior beyond the built-in kinds
// is attached with the OnInitialize, OnUpdate, OnRender and OnDestroy
// callbacks.
//
// Nodes are initialized when their scene is first activated, or
// immediately when added under an already initialized parent. If any node in
// a subtree fails to initialize, the whole subtree is rolled back.
//
// # Frame
//
// [Engine.Frame] updates the active scene, calls [Renderer.PrepareFrame],
// lets every enabled node submit geometry, then calls
// [Renderer.RenderFrame]. Submissions outside the camera frustum are dropped.
// The rest are grouped by (shader, material) and drawn opaque first, then
// the skybox, then transparent batches sorted back to front.
//
// # Resources
//
// [Mesh], [Material], [Texture], [Cubemap], [Skybox] and [Model] are plain
// values built by the application. Textures decode PNG, JPEG, BMP and TGA.
// [NewCubeMesh], [NewPlaneMesh], [NewPolygonMesh] and [NewSkyboxMesh]
// build procedural geometry.
//
// # Configuration
//
// [Settings] can be loaded from TOML, YAML or JSON with [LoadSettings].
//
// # Logging
//
// The package logs through [log/slog]; use [SetLogger] to redirect it and
// [SetDebugMode] to enable per-frame statistics at debug level.
//
// # Tweens
//
// [TweenPosition], [TweenScale] and [TweenRotation] animate a transform via
// [gween]; [Camera.ZoomTo] animates the field of view.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package austere
