package austere

import "fmt"

// Scene is a named node tree with its own lifecycle. A scene always has a
// root node; NewScene creates one named "Root" if none is given.
type Scene struct {
	name        string
	root        *Node
	engine      *Engine
	initialized bool
	active      bool
}

// NewScene creates a scene. A nil root is replaced by an empty container
// named "Root".
func NewScene(name string, root *Node) *Scene {
	if root == nil {
		root = NewContainer("Root")
	}
	return &Scene{name: name, root: root}
}

func (s *Scene) scope() string { return "Scene(" + s.name + ")" }

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Root returns the root node. It is nil only after Destroy.
func (s *Scene) Root() *Node { return s.root }

// IsInitialized reports whether the scene has been initialized.
func (s *Scene) IsInitialized() bool { return s.initialized }

// IsActive reports whether the scene is its manager's active scene.
func (s *Scene) IsActive() bool { return s.active }

// SetRoot replaces the root node. The new root gets the scene's engine and,
// if the scene is initialized, is initialized too. The old root is neither
// destroyed nor detached from the engine. A nil root is rejected.
func (s *Scene) SetRoot(root *Node) error {
	if root == nil {
		scoped(s.scope(), "SetRoot").Error("root node is nil")
		return fmt.Errorf("scene %q: set root: %w", s.name, ErrNilNode)
	}
	root.setEngine(s.engine)
	if s.initialized && root.state == NodeUninitialized {
		if err := root.initialize(); err != nil {
			return fmt.Errorf("scene %q: set root: %w", s.name, err)
		}
	}
	s.root = root
	return nil
}

// initialize initializes the root node's tree.
func (s *Scene) initialize() error {
	log := scoped(s.scope(), "Initialize")
	log.Info("initializing scene")

	if s.initialized {
		log.Warn("scene is already initialized")
		return fmt.Errorf("scene %q: %w", s.name, ErrAlreadyInitialized)
	}
	if s.root == nil {
		log.Error("root node is nil")
		return fmt.Errorf("scene %q: %w", s.name, ErrNilNode)
	}
	if err := s.root.initialize(); err != nil {
		log.Error("failed to initialize root node", "err", err)
		return fmt.Errorf("scene %q: %w", s.name, err)
	}

	s.initialized = true
	s.emit(EventSceneInitialized)
	log.Info("scene initialized")
	return nil
}

// Destroy destroys the node tree and drops the root. Destroying a scene
// that is not initialized is logged and ignored.
func (s *Scene) Destroy() {
	log := scoped(s.scope(), "Destroy")
	log.Info("destroying scene")

	if !s.initialized {
		log.Warn("scene is not initialized")
		return
	}
	if s.root != nil {
		s.root.Destroy()
		s.root = nil
	}
	s.initialized = false
	s.emit(EventSceneDestroyed)
	log.Info("scene destroyed")
}

// Camera returns the camera of the first enabled, initialized camera node
// in the tree (depth first), or nil.
func (s *Scene) Camera() *Camera {
	if s.root == nil {
		return nil
	}
	var cam *Camera
	s.root.Walk(func(n *Node) bool {
		if cam != nil || !n.enabled || n.state != NodeInitialized {
			return false
		}
		if n.Type == NodeTypeCamera && n.Camera != nil {
			cam = n.Camera
			return false
		}
		return true
	})
	return cam
}

func (s *Scene) update(dt float32) {
	if s.root != nil {
		s.root.update(dt)
	}
}

func (s *Scene) render(r *Renderer) {
	if s.root != nil {
		s.root.render(r)
	}
}

func (s *Scene) setEngine(e *Engine) {
	s.engine = e
	if s.root != nil {
		s.root.setEngine(e)
	}
}

func (s *Scene) emit(t LifecycleEventType) {
	if s.engine != nil {
		s.engine.emit(LifecycleEvent{Type: t, Scene: s.name})
	}
}
