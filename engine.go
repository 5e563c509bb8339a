package austere

import (
	"fmt"
	"time"
)

// fpsWindow is how often the FPS estimate is refreshed, in seconds.
const fpsWindow = 0.5

// Engine wires the core together: it owns the settings, the light manager,
// the renderer and the scene manager, and drives one frame at a time. It
// does not own a window; a host loop (see package ebitendev) calls Frame.
type Engine struct {
	settings Settings
	device   Device

	lights   *LightManager
	renderer *Renderer
	scenes   *SceneManager
	sink     LifecycleSink

	deltaTime  float32
	fps        float32
	frameCount int
	fpsFrames  int
	fpsElapsed float32

	initialized bool

	// OnUpdate runs every frame after the active scene is updated.
	OnUpdate func(e *Engine, dt float32)
	// OnRender runs every frame after the active scene has submitted its
	// geometry and before the renderer flushes.
	OnRender func(e *Engine, r *Renderer)
}

// NewEngine creates an engine drawing to device. Panics if device is nil.
func NewEngine(settings Settings, device Device) *Engine {
	if device == nil {
		panic("austere: NewEngine requires a Device")
	}
	e := &Engine{settings: settings, device: device}
	e.lights = NewLightManager()
	e.renderer = NewRenderer(device, e.lights, settings.Renderer)
	e.scenes = NewSceneManager(e)
	return e
}

// Initialize validates the settings and initializes the renderer.
func (e *Engine) Initialize() error {
	log := scoped("Engine", "Initialize")
	log.Info("initializing engine")
	if e.initialized {
		log.Error("engine is already initialized")
		return fmt.Errorf("engine: %w", ErrAlreadyInitialized)
	}
	if err := e.settings.Validate(); err != nil {
		log.Error("invalid settings", "err", err)
		return fmt.Errorf("engine: %w", err)
	}
	if err := e.renderer.Initialize(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	e.initialized = true
	log.Info("engine initialized",
		"width", e.settings.Window.Width,
		"height", e.settings.Window.Height)
	return nil
}

// Shutdown destroys all scenes, clears the lights and shuts the renderer
// down. Shutting down an uninitialized engine is logged and ignored.
func (e *Engine) Shutdown() {
	log := scoped("Engine", "Shutdown")
	if !e.initialized {
		log.Warn("engine is not initialized")
		return
	}
	e.scenes.Clear()
	e.lights.Clear()
	e.renderer.Shutdown()
	e.initialized = false
	log.Info("engine shut down", "frames", e.frameCount)
}

// IsInitialized reports whether Initialize has run without a Shutdown.
func (e *Engine) IsInitialized() bool { return e.initialized }

// Frame advances the engine by dt seconds and draws one frame: the active
// scene is updated, the renderer prepared, the scene rendered into it and
// the batches flushed. If the active scene has an enabled camera node, that
// camera is used for the frame; otherwise the frame has no camera.
func (e *Engine) Frame(dt float32) error {
	if !e.initialized {
		return fmt.Errorf("engine: frame: %w", ErrNotInitialized)
	}
	e.deltaTime = dt
	e.frameCount++
	e.trackFPS(dt)

	e.scenes.Update(dt)
	if e.OnUpdate != nil {
		e.OnUpdate(e, dt)
	}

	// cleared when the scene has no camera so culling never uses a stale one
	var cam *Camera
	if s := e.scenes.ActiveScene(); s != nil {
		cam = s.Camera()
	}
	e.renderer.SetCamera(cam)

	e.renderer.PrepareFrame()
	e.scenes.Render(e.renderer)
	if e.OnRender != nil {
		e.OnRender(e, e.renderer)
	}
	e.renderer.RenderFrame()
	return nil
}

func (e *Engine) trackFPS(dt float32) {
	e.fpsFrames++
	e.fpsElapsed += dt
	if e.fpsElapsed >= fpsWindow {
		e.fps = float32(e.fpsFrames) / e.fpsElapsed
		e.fpsFrames = 0
		e.fpsElapsed = 0
	}
}

// DeltaTime returns the dt of the last frame, in seconds.
func (e *Engine) DeltaTime() float32 { return e.deltaTime }

// FrameTime returns the last frame's dt as a duration.
func (e *Engine) FrameTime() time.Duration {
	return time.Duration(float64(e.deltaTime) * float64(time.Second))
}

// FPS returns the frame rate averaged over the last half second.
func (e *Engine) FPS() float32 { return e.fps }

// FrameCount returns the number of frames run.
func (e *Engine) FrameCount() int { return e.frameCount }

// AspectRatio returns the window aspect ratio, or DefaultAspectRatio when
// the window has no height.
func (e *Engine) AspectRatio() float32 {
	w := e.settings.Window
	if w.Height <= 0 {
		return DefaultAspectRatio
	}
	return float32(w.Width) / float32(w.Height)
}

// Resize records a new window size. Camera nodes pick up the aspect ratio
// on their next update.
func (e *Engine) Resize(width, height int) {
	e.settings.Window.Width = width
	e.settings.Window.Height = height
}

// Settings returns the engine settings.
func (e *Engine) Settings() Settings { return e.settings }

// Device returns the device the engine draws to.
func (e *Engine) Device() Device { return e.device }

// Renderer returns the engine's renderer.
func (e *Engine) Renderer() *Renderer { return e.renderer }

// Scenes returns the engine's scene manager.
func (e *Engine) Scenes() *SceneManager { return e.scenes }

// Lights returns the engine's light manager.
func (e *Engine) Lights() *LightManager { return e.lights }

// SetLifecycleSink sets the receiver of lifecycle events. nil disables
// delivery.
func (e *Engine) SetLifecycleSink(s LifecycleSink) { e.sink = s }

func (e *Engine) emit(ev LifecycleEvent) {
	if e.sink != nil {
		e.sink.EmitLifecycle(ev)
	}
}
