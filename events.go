package austere

// LifecycleEventType identifies a scene graph lifecycle transition.
type LifecycleEventType uint8

const (
	EventNodeInitialized  LifecycleEventType = iota // a node finished initializing
	EventNodeDestroyed                              // a node was torn down
	EventSceneInitialized                           // a scene's root finished initializing
	EventSceneDestroyed                             // a scene was destroyed
	EventSceneActivated                             // a scene became the active scene
	EventSceneDeactivated                           // a scene stopped being the active scene
)

// String returns the event type name.
func (t LifecycleEventType) String() string {
	switch t {
	case EventNodeInitialized:
		return "NodeInitialized"
	case EventNodeDestroyed:
		return "NodeDestroyed"
	case EventSceneInitialized:
		return "SceneInitialized"
	case EventSceneDestroyed:
		return "SceneDestroyed"
	case EventSceneActivated:
		return "SceneActivated"
	case EventSceneDeactivated:
		return "SceneDeactivated"
	default:
		return "Unknown"
	}
}

// LifecycleEvent describes one lifecycle transition. Scene is set for scene
// events; Node and NodeType for node events.
type LifecycleEvent struct {
	Type     LifecycleEventType
	Scene    string
	Node     string
	NodeType NodeType
}

// LifecycleSink receives lifecycle events from an Engine. Events are
// delivered synchronously on the frame goroutine, e.g. to mirror the scene
// graph into an ECS world.
type LifecycleSink interface {
	EmitLifecycle(event LifecycleEvent)
}

// emit forwards a node event to the engine's sink, if any.
func (n *Node) emit(t LifecycleEventType) {
	if n.engine == nil {
		return
	}
	n.engine.emit(LifecycleEvent{Type: t, Node: n.name, NodeType: n.Type})
}
