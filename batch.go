package austere

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Instance is one submitted draw: a mesh and the world matrix to draw it
// with.
type Instance struct {
	Mesh  *Mesh
	World mgl32.Mat4
}

// RenderBatch groups instances that share a shader and material so the
// shader is bound and the material uploaded once for all of them. Batches
// live for a single frame.
type RenderBatch struct {
	Shader    Shader
	Material  *Material
	Instances []Instance

	// farthest squared instance distance from the camera; set before the
	// transparent sort
	sortDist float32
}

// batchKey identifies a batch. Shader and material compare by identity.
type batchKey struct {
	shader   Shader
	material *Material
}

// batchList is an ordered list of batches with an index for key lookup.
// Batches keep the order in which their key was first submitted.
type batchList struct {
	batches []RenderBatch
	index   map[batchKey]int
}

func newBatchList() batchList {
	return batchList{
		batches: make([]RenderBatch, 0, 128),
		index:   make(map[batchKey]int, 128),
	}
}

// add appends the instance to the batch matching (shader, material),
// creating it if needed.
func (l *batchList) add(shader Shader, mat *Material, inst Instance) {
	key := batchKey{shader: shader, material: mat}
	if i, ok := l.index[key]; ok {
		l.batches[i].Instances = append(l.batches[i].Instances, inst)
		return
	}
	l.index[key] = len(l.batches)
	l.batches = append(l.batches, RenderBatch{
		Shader:    shader,
		Material:  mat,
		Instances: []Instance{inst},
	})
}

// reset empties the list, keeping capacity.
func (l *batchList) reset() {
	clear(l.batches)
	l.batches = l.batches[:0]
	clear(l.index)
}

// sortBackToFront orders batches by their farthest instance from camPos,
// farthest first. Empty batches sort as distance 0. Equal distances keep
// submission order. The key index is invalid afterwards; sorting only
// happens once all submissions for the frame are in.
func (l *batchList) sortBackToFront(camPos mgl32.Vec3) {
	for i := range l.batches {
		l.batches[i].sortDist = farthestDistSq(l.batches[i].Instances, camPos)
	}
	slices.SortStableFunc(l.batches, func(a, b RenderBatch) int {
		switch {
		case a.sortDist > b.sortDist:
			return -1
		case a.sortDist < b.sortDist:
			return 1
		default:
			return 0
		}
	})
	clear(l.index)
}

// farthestDistSq returns the largest squared distance from camPos to the
// translation of any instance's world matrix, or 0 with no instances.
func farthestDistSq(instances []Instance, camPos mgl32.Vec3) float32 {
	var best float32
	for i := range instances {
		d := instances[i].World.Col(3).Vec3().Sub(camPos)
		if ds := d.Dot(d); ds > best {
			best = ds
		}
	}
	return best
}
