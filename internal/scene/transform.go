package scene

// Transform places a node relative to its parent: rotate, then translate.
type Transform struct {
	Position Vec3
	Rotation Euler
}

// World is a resolved local-to-world mapping, the product of a chain of
// Transforms.
type World struct {
	rot mat3
	pos Vec3
}

// Identity returns the world mapping of the scene root.
func Identity() World {
	return World{rot: mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// Then returns the world mapping of a child placed by t under w.
func (w World) Then(t Transform) World {
	return World{
		rot: w.rot.mul(t.Rotation.matrix()),
		pos: w.pos.Add(w.rot.apply(t.Position)),
	}
}

// Apply maps a local-space point to world space.
func (w World) Apply(local Vec3) Vec3 {
	return w.rot.apply(local).Add(w.pos)
}

// Compose resolves a chain of transforms, outermost first.
func Compose(chain ...Transform) World {
	w := Identity()
	for _, t := range chain {
		w = w.Then(t)
	}
	return w
}
