package scene

import "github.com/google/uuid"

/**
 * @brief The root of a decoded scene graph plus the animation clips bound to
 * it. One Scene is produced per successful decode; its ID distinguishes
 * scenes even when the same payload is decoded twice.
 */
type Scene struct {
	/** @brief Unique identity of this decode result. */
	ID uuid.UUID
	/** @brief The root node of the graph. */
	Root *Node
	/** @brief Animation clips targeting nodes in this scene. */
	Clips []*AnimationClip
}

func New(root *Node, clips ...*AnimationClip) *Scene {
	return &Scene{
		ID:    uuid.New(),
		Root:  root,
		Clips: clips,
	}
}

// Meshes returns every mesh-bearing node in depth-first pre-order.
func (s *Scene) Meshes() []*Node {
	if s == nil || s.Root == nil {
		return nil
	}
	var meshes []*Node
	s.Root.Walk(func(n *Node) {
		if n.Type == NodeTypeMesh {
			meshes = append(meshes, n)
		}
	})
	return meshes
}

// FindNode returns the first node with the given name in depth-first
// pre-order, or nil.
func (s *Scene) FindNode(name string) *Node {
	if s == nil || s.Root == nil {
		return nil
	}
	var found *Node
	s.Root.Walk(func(n *Node) {
		if found == nil && n.Name == name {
			found = n
		}
	})
	return found
}
