package austere

import "errors"

// Errors returned by scene graph and lifecycle operations. They are wrapped
// with the node or scene name; match them with errors.Is.
var (
	ErrNilNode            = errors.New("austere: nil node")
	ErrNilScene           = errors.New("austere: nil scene")
	ErrEmptyName          = errors.New("austere: empty name")
	ErrSelfParent         = errors.New("austere: node cannot be its own child")
	ErrDuplicateName      = errors.New("austere: duplicate name")
	ErrNotFound           = errors.New("austere: not found")
	ErrNodeCycle          = errors.New("austere: adding child would create a cycle")
	ErrTransformCycle     = errors.New("austere: transform parent would create a cycle")
	ErrAlreadyInitialized = errors.New("austere: already initialized")
	ErrNotInitialized     = errors.New("austere: not initialized")
	ErrDestroyed          = errors.New("austere: destroyed")
)
