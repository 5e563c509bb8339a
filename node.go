package austere

import (
	"fmt"
	"slices"
)

// NodeState is a node's lifecycle state. Uninitialized -> Initialized ->
// Destroyed; Destroyed is terminal.
type NodeState uint8

const (
	NodeUninitialized NodeState = iota
	NodeInitialized
	NodeDestroyed
)

// String returns the state name.
func (s NodeState) String() string {
	switch s {
	case NodeUninitialized:
		return "Uninitialized"
	case NodeInitialized:
		return "Initialized"
	case NodeDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Node is a named element of the scene graph. Each node has a Transform
// parented to its parent node's transform and an ordered set of uniquely
// named children. Behavior comes from the node's Type and from the optional
// callback hooks.
type Node struct {
	name string
	// Type is set by the constructor and selects built-in behavior.
	Type NodeType

	transform Transform

	parent     *Node
	children   []*Node
	childIndex map[string]*Node

	state   NodeState
	enabled bool
	engine  *Engine

	// Camera is the camera owned by a NodeTypeCamera node. Its transform is
	// parented to the node's transform.
	Camera *Camera
	// Model is drawn every render by a NodeTypeModel node.
	Model *Model
	// Mesh and Material are drawn every render by a NodeTypeMesh node.
	Mesh     *Mesh
	Material *Material
	// Shader is used by model and mesh nodes.
	Shader Shader

	// UserData is an arbitrary value for application use.
	UserData any

	// OnInitialize runs when the node is initialized, before its children.
	// Returning an error aborts initialization of the node's subtree.
	OnInitialize func(n *Node) error
	// OnDestroy runs when the node is torn down, after its children.
	OnDestroy func(n *Node)
	// OnUpdate runs every update while the node is enabled and initialized.
	OnUpdate func(n *Node, dt float32)
	// OnRender runs every render while the node is enabled and initialized.
	OnRender func(n *Node, r *Renderer)
}

func newNode(name string, t NodeType) *Node {
	n := &Node{
		name:       name,
		Type:       t,
		childIndex: make(map[string]*Node),
		enabled:    true,
	}
	n.transform.reset()
	return n
}

// NewContainer creates a node with no built-in behavior.
func NewContainer(name string) *Node {
	return newNode(name, NodeTypeContainer)
}

// NewCameraNode creates a node owning a default Camera parented to it.
// Moving the node moves the camera.
func NewCameraNode(name string) *Node {
	n := newNode(name, NodeTypeCamera)
	n.Camera = NewCamera()
	_ = n.Camera.SetParent(&n.transform)
	return n
}

// NewModelNode creates a node that submits model with shader at its world
// transform every render.
func NewModelNode(name string, model *Model, shader Shader) *Node {
	n := newNode(name, NodeTypeModel)
	n.Model = model
	n.Shader = shader
	return n
}

// NewMeshNode creates a node that submits mesh with shader and mat at its
// world transform every render. A nil mat uses the renderer's default.
func NewMeshNode(name string, mesh *Mesh, shader Shader, mat *Material) *Node {
	n := newNode(name, NodeTypeMesh)
	n.Mesh = mesh
	n.Shader = shader
	n.Material = mat
	return n
}

// --- Accessors ---

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Transform returns the node's transform.
func (n *Node) Transform() *Transform { return &n.transform }

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node { return n.parent }

// HasParent reports whether the node has a parent.
func (n *Node) HasParent() bool { return n.parent != nil }

// Children returns the children in insertion order. The returned slice must
// not be mutated.
func (n *Node) Children() []*Node { return n.children }

// NumChildren returns the number of children.
func (n *Node) NumChildren() int { return len(n.children) }

// Child returns the child with name, or nil.
func (n *Node) Child(name string) *Node { return n.childIndex[name] }

// HasChild reports whether a child with name exists.
func (n *Node) HasChild(name string) bool {
	_, ok := n.childIndex[name]
	return ok
}

// HasChildNode reports whether child is a direct child of n.
func (n *Node) HasChildNode(child *Node) bool {
	return child != nil && n.childIndex[child.name] == child
}

// State returns the lifecycle state.
func (n *Node) State() NodeState { return n.state }

// IsInitialized reports whether the node is initialized.
func (n *Node) IsInitialized() bool { return n.state == NodeInitialized }

// IsEnabled reports whether the node takes part in update and render.
func (n *Node) IsEnabled() bool { return n.enabled }

// SetEnabled enables or disables the node. A disabled node skips update and
// render for its whole subtree.
func (n *Node) SetEnabled(enabled bool) { n.enabled = enabled }

// Engine returns the engine the node's tree is attached to, or nil.
func (n *Node) Engine() *Engine { return n.engine }

func (n *Node) scope() string { return "SceneNode(" + n.name + ")" }

// --- Tree manipulation ---

// AddChild adds child under n, parents its transform to n's transform and
// hands it n's engine. If n is initialized and child is not, child is
// initialized immediately; if that fails child is detached again and the
// error returned.
//
// It fails without changing anything if child is nil, unnamed or n itself,
// if a child with the same name exists, or if child is an ancestor of n. A
// child that already has another parent is moved.
func (n *Node) AddChild(child *Node) error {
	log := scoped(n.scope(), "AddChild")
	switch {
	case child == nil:
		log.Error("cannot add nil child")
		return fmt.Errorf("node %q: add child: %w", n.name, ErrNilNode)
	case child.name == "":
		log.Error("cannot add child with empty name")
		return fmt.Errorf("node %q: add child: %w", n.name, ErrEmptyName)
	case child == n:
		log.Error("cannot add node as a child of itself")
		return fmt.Errorf("node %q: add child: %w", n.name, ErrSelfParent)
	case n.HasChild(child.name):
		log.Error("duplicate child name", "child", child.name)
		return fmt.Errorf("node %q: add child %q: %w", n.name, child.name, ErrDuplicateName)
	case isAncestor(child, n):
		log.Error("child is an ancestor", "child", child.name)
		return fmt.Errorf("node %q: add child %q: %w", n.name, child.name, ErrNodeCycle)
	}

	old, oldIndex := child.parent, -1
	if old != nil {
		oldIndex = slices.Index(old.children, child)
		old.detach(child)
	}
	n.attach(child)
	child.setEngine(n.engine)

	if n.IsInitialized() && child.state == NodeUninitialized {
		if err := child.initialize(); err != nil {
			n.detach(child)
			if old != nil {
				old.attachAt(child, oldIndex)
				child.setEngine(old.engine)
			} else {
				child.setEngine(nil)
			}
			return fmt.Errorf("node %q: add child %q: %w", n.name, child.name, err)
		}
	}

	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	return nil
}

// RemoveChild detaches the child with name. The child keeps its lifecycle
// state; destroy it separately if it should be torn down.
func (n *Node) RemoveChild(name string) error {
	child, ok := n.childIndex[name]
	if !ok {
		scoped(n.scope(), "RemoveChild").Error("no child with name", "child", name)
		return fmt.Errorf("node %q: remove child %q: %w", n.name, name, ErrNotFound)
	}
	n.detach(child)
	return nil
}

// RemoveChildNode detaches child if it is a direct child of n.
func (n *Node) RemoveChildNode(child *Node) error {
	log := scoped(n.scope(), "RemoveChild")
	if child == nil {
		log.Error("cannot remove nil child")
		return fmt.Errorf("node %q: remove child: %w", n.name, ErrNilNode)
	}
	if !n.HasChildNode(child) {
		log.Warn("node does not have the given child", "child", child.name)
		return fmt.Errorf("node %q: remove child %q: %w", n.name, child.name, ErrNotFound)
	}
	n.detach(child)
	return nil
}

// RemoveFromParent detaches n from its parent. No-op without a parent.
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.detach(n)
	}
}

// attach links child under n: node tree, name index and transform.
func (n *Node) attach(child *Node) {
	n.attachAt(child, len(n.children))
}

// attachAt links child at position i of n's children. Out of range
// positions append.
func (n *Node) attachAt(child *Node, i int) {
	if i < 0 || i > len(n.children) {
		i = len(n.children)
	}
	child.parent = n
	n.children = slices.Insert(n.children, i, child)
	n.childIndex[child.name] = child
	// cannot fail: isAncestor was checked on the node tree, which the
	// transform tree mirrors
	_ = child.transform.SetParent(&n.transform)
}

// detach unlinks child from n. Uses copy+nil to avoid retaining a dangling
// pointer in the backing array.
func (n *Node) detach(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			break
		}
	}
	delete(n.childIndex, child.name)
	child.parent = nil
	_ = child.transform.SetParent(nil)
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

func (n *Node) setEngine(e *Engine) {
	n.engine = e
	for _, c := range n.children {
		c.setEngine(e)
	}
}

// --- Lifecycle ---

// initialize runs OnInitialize then initializes the children in order. If a
// child fails, the children that succeeded and n itself are torn down and
// the subtree is left uninitialized.
func (n *Node) initialize() error {
	log := scoped(n.scope(), "Initialize")
	switch n.state {
	case NodeInitialized:
		log.Warn("node is already initialized")
		return fmt.Errorf("node %q: %w", n.name, ErrAlreadyInitialized)
	case NodeDestroyed:
		log.Error("node is destroyed")
		return fmt.Errorf("node %q: %w", n.name, ErrDestroyed)
	}

	if n.OnInitialize != nil {
		if err := n.OnInitialize(n); err != nil {
			log.Error("node initialization failed", "err", err)
			return fmt.Errorf("node %q: initialize: %w", n.name, err)
		}
	}

	// OnInitialize may add children; n is not yet initialized so they are
	// picked up here rather than by AddChild.
	for i, c := range n.children {
		if c.state == NodeInitialized {
			continue
		}
		if err := c.initialize(); err != nil {
			for _, done := range n.children[:i] {
				if done.state == NodeInitialized {
					done.teardown(NodeUninitialized)
				}
			}
			if n.OnDestroy != nil {
				n.OnDestroy(n)
			}
			return fmt.Errorf("node %q: %w", n.name, err)
		}
	}

	n.state = NodeInitialized
	n.emit(EventNodeInitialized)
	return nil
}

// Destroy tears down the subtree: children first, then n's OnDestroy. The
// node ends in NodeDestroyed and cannot be initialized again. Destroying a
// node that is not initialized is logged and ignored.
func (n *Node) Destroy() {
	if n.state != NodeInitialized {
		scoped(n.scope(), "Destroy").Warn("node is not initialized", "state", n.state)
		return
	}
	n.teardown(NodeDestroyed)
}

// teardown runs OnDestroy bottom-up over the initialized part of the
// subtree and moves every visited node to final.
func (n *Node) teardown(final NodeState) {
	for _, c := range n.children {
		if c.state == NodeInitialized {
			c.teardown(final)
		}
	}
	if n.OnDestroy != nil {
		n.OnDestroy(n)
	}
	n.state = final
	n.emit(EventNodeDestroyed)
}

// update runs OnUpdate and built-in behavior, then updates the children.
// Disabled or uninitialized nodes are skipped along with their subtree.
func (n *Node) update(dt float32) {
	if !n.enabled || n.state != NodeInitialized {
		return
	}
	if n.Type == NodeTypeCamera && n.Camera != nil {
		if n.engine != nil {
			n.Camera.SetAspectRatio(n.engine.AspectRatio())
		}
		n.Camera.Update(dt)
	}
	if n.OnUpdate != nil {
		n.OnUpdate(n, dt)
	}
	for _, c := range n.children {
		c.update(dt)
	}
}

// render submits the node's own geometry, runs OnRender, then renders the
// children. Disabled or uninitialized nodes are skipped along with their
// subtree.
func (n *Node) render(r *Renderer) {
	if !n.enabled || n.state != NodeInitialized {
		return
	}
	switch n.Type {
	case NodeTypeModel:
		r.SubmitModel(n.Model, n.Shader, n.transform.WorldMatrix())
	case NodeTypeMesh:
		r.Submit(n.Mesh, n.Shader, n.Material, n.transform.WorldMatrix())
	}
	if n.OnRender != nil {
		n.OnRender(n, r)
	}
	for _, c := range n.children {
		c.render(r)
	}
}

// Walk calls fn for n and every descendant, depth first in child order.
// Returning false from fn skips that node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Find returns the first descendant (depth first) named name, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c != n && c.name == name {
			found = c
			return false
		}
		return true
	})
	return found
}
