package scene

import "github.com/spaghettifunk/vetrina/engine/math"

/** @brief The kind of a scene node. The set is closed so traversal and
 * disposal sites can switch exhaustively instead of type-inspecting. */
type NodeType uint8

const (
	/** @brief A grouping node. Owns no disposable resources of its own. */
	NodeTypeGroup NodeType = iota
	/** @brief A mesh-bearing node. Owns exactly one geometry and one or more materials. */
	NodeTypeMesh
)

/**
 * @brief A single node in a decoded scene graph.
 */
type Node struct {
	/** @brief The node kind. */
	Type NodeType
	/** @brief The node name. Animation tracks resolve their targets by this. */
	Name string
	/** @brief The local transform of the node. */
	Transform math.Transform
	/** @brief Child nodes. */
	Children []*Node
	/** @brief The mesh payload. Set only when Type == NodeTypeMesh. */
	Mesh *Mesh
}

/**
 * @brief The renderable payload of a mesh node: one geometry paired with
 * the materials applied to it. Materials may be shared between meshes
 * within the same decoded scene.
 */
type Mesh struct {
	Geometry  *Geometry
	Materials []*Material

	released bool
}

// Released reports whether the mesh's resources have been torn down.
func (m *Mesh) Released() bool {
	return m == nil || m.released
}

// MarkReleased records that the mesh's resources have been torn down. Set by
// the disposer; meshes with no geometry still need it so their materials are
// not released twice.
func (m *Mesh) MarkReleased() {
	if m != nil {
		m.released = true
	}
}

func NewGroup(name string, children ...*Node) *Node {
	return &Node{
		Type:      NodeTypeGroup,
		Name:      name,
		Transform: math.NewTransform(),
		Children:  children,
	}
}

func NewMeshNode(name string, geometry *Geometry, materials ...*Material) *Node {
	return &Node{
		Type:      NodeTypeMesh,
		Name:      name,
		Transform: math.NewTransform(),
		Mesh: &Mesh{
			Geometry:  geometry,
			Materials: materials,
		},
	}
}

// Walk visits n and every descendant in depth-first pre-order.
func (n *Node) Walk(visit func(*Node)) {
	if n == nil {
		return
	}
	visit(n)
	for _, child := range n.Children {
		child.Walk(visit)
	}
}
