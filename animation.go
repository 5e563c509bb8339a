package austere

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float32 fields of a Transform simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenScale,
// TweenRotation) and call Update(dt) each frame, typically from a node's
// OnUpdate. The group writes the values and marks the transform dirty. If
// the group is bound to a node that gets destroyed, it stops immediately.
//
// There is no global animation manager; callers update groups themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float32
	target *Transform
	owner  *Node
	// rotation groups write quaternion components and renormalize.
	rotation bool
	Done     bool
}

// Bind ties the group to n: once n is destroyed, Update sets Done and stops
// writing. It returns g for chaining.
func (g *TweenGroup) Bind(n *Node) *TweenGroup {
	g.owner = n
	return g
}

// Update advances all tweens by dt seconds, writes the values to the target
// fields and marks the transform dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.owner != nil && g.owner.State() == NodeDestroyed {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = val
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.rotation {
		g.target.rotation = g.target.rotation.Normalize()
	}
	g.target.SetDirty()
}

func newVec3Tween(t *Transform, v *mgl32.Vec3, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, target: t}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(v[i], to[i], duration, fn)
		g.fields[i] = &v[i]
	}
	return g
}

// TweenPosition creates a TweenGroup that moves t to the local position to
// over duration seconds using the easing function.
func TweenPosition(t *Transform, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newVec3Tween(t, &t.position, to, duration, fn)
}

// TweenScale creates a TweenGroup that animates t's local scale to to.
func TweenScale(t *Transform, to mgl32.Vec3, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newVec3Tween(t, &t.scale, to, duration, fn)
}

// TweenRotation creates a TweenGroup that turns t's local rotation towards
// to. Components are interpolated and renormalized (nlerp), so the path is
// slightly non-uniform in angular speed for large turns. to is flipped into
// the start rotation's hemisphere so the shorter arc is taken.
func TweenRotation(t *Transform, to mgl32.Quat, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := t.rotation
	to = to.Normalize()
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	g := &TweenGroup{count: 4, target: t, rotation: true}
	for i := 0; i < 3; i++ {
		g.tweens[i] = gween.New(from.V[i], to.V[i], duration, fn)
		g.fields[i] = &t.rotation.V[i]
	}
	g.tweens[3] = gween.New(from.W, to.W, duration, fn)
	g.fields[3] = &t.rotation.W
	return g
}
