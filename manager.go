package austere

import "fmt"

// SceneManager owns named scenes and tracks the one active scene, which is
// the only scene updated and rendered. Inactive scenes keep their state.
type SceneManager struct {
	engine *Engine
	scenes map[string]*Scene
	active *Scene
}

// NewSceneManager creates an empty manager. engine may be nil; scenes added
// to the manager inherit it.
func NewSceneManager(engine *Engine) *SceneManager {
	return &SceneManager{engine: engine, scenes: make(map[string]*Scene)}
}

// AddScene registers scene under its name. Nil scenes, empty names and
// duplicate names are rejected.
func (m *SceneManager) AddScene(scene *Scene) error {
	log := scoped("SceneManager", "AddScene")
	switch {
	case scene == nil:
		log.Error("attempt to add nil scene")
		return fmt.Errorf("add scene: %w", ErrNilScene)
	case scene.name == "":
		log.Error("attempt to add scene with empty name")
		return fmt.Errorf("add scene: %w", ErrEmptyName)
	case m.HasScene(scene.name):
		log.Error("scene already exists", "scene", scene.name)
		return fmt.Errorf("add scene %q: %w", scene.name, ErrDuplicateName)
	}
	scene.setEngine(m.engine)
	m.scenes[scene.name] = scene
	return nil
}

// RemoveScene unregisters the scene with name. If it is active, the active
// scene is cleared first. The scene is not destroyed; call Scene.Destroy if
// it should be torn down.
func (m *SceneManager) RemoveScene(name string) error {
	log := scoped("SceneManager", "RemoveScene")
	s, ok := m.scenes[name]
	if !ok {
		log.Warn("scene not found", "scene", name)
		return fmt.Errorf("remove scene %q: %w", name, ErrNotFound)
	}
	if m.active == s {
		log.Debug("removing active scene, clearing active scene", "scene", name)
		s.active = false
		m.active = nil
	}
	delete(m.scenes, name)
	return nil
}

// RemoveSceneValue unregisters scene by its name.
func (m *SceneManager) RemoveSceneValue(scene *Scene) error {
	if scene == nil {
		scoped("SceneManager", "RemoveScene").Error("attempt to remove nil scene")
		return fmt.Errorf("remove scene: %w", ErrNilScene)
	}
	return m.RemoveScene(scene.name)
}

// Scene returns the scene with name, or nil.
func (m *SceneManager) Scene(name string) *Scene { return m.scenes[name] }

// HasScene reports whether a scene with name is registered.
func (m *SceneManager) HasScene(name string) bool {
	_, ok := m.scenes[name]
	return ok
}

// NumScenes returns the number of registered scenes.
func (m *SceneManager) NumScenes() int { return len(m.scenes) }

// ActiveScene returns the active scene, or nil.
func (m *SceneManager) ActiveScene() *Scene { return m.active }

// SetActiveScene makes the scene with name active, initializing it first if
// needed. The previously active scene is deactivated but not destroyed. If
// the scene is missing or fails to initialize, the active scene is left
// unchanged and an error is returned.
func (m *SceneManager) SetActiveScene(name string) error {
	log := scoped("SceneManager", "SetActiveScene")
	log.Info("setting active scene", "scene", name)

	s, ok := m.scenes[name]
	if !ok {
		log.Error("failed to set active scene, not found", "scene", name)
		return fmt.Errorf("set active scene %q: %w", name, ErrNotFound)
	}
	if !s.initialized {
		if err := s.initialize(); err != nil {
			log.Error("failed to set active scene, initialization failed", "scene", name, "err", err)
			return fmt.Errorf("set active scene %q: %w", name, err)
		}
	}
	if m.active == s {
		return nil
	}
	if prev := m.active; prev != nil {
		log.Debug("deactivating current active scene", "scene", prev.name)
		prev.active = false
		prev.emit(EventSceneDeactivated)
	}
	m.active = s
	s.active = true
	s.emit(EventSceneActivated)
	log.Info("scene is now active", "scene", name)
	return nil
}

// Update updates the active scene's node tree.
func (m *SceneManager) Update(dt float32) {
	if m.active != nil {
		m.active.update(dt)
	}
}

// Render walks the active scene's node tree, letting nodes submit to r.
func (m *SceneManager) Render(r *Renderer) {
	if m.active != nil {
		m.active.render(r)
	}
}

// Clear destroys every initialized scene and unregisters all scenes.
func (m *SceneManager) Clear() {
	for name, s := range m.scenes {
		if s.initialized {
			s.Destroy()
		}
		s.active = false
		delete(m.scenes, name)
	}
	m.active = nil
}
