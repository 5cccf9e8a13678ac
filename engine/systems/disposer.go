package systems

import (
	"github.com/spaghettifunk/vetrina/engine/core"
	"github.com/spaghettifunk/vetrina/engine/scene"
)

// MaterialReleaser is the external capability that fully releases a
// material's bound image resources and shader parameters. The engine calls
// it during teardown but does not define what release means for the host's
// renderer.
type MaterialReleaser interface {
	ReleaseMaterial(material *scene.Material)
}

/**
 * @brief Disposer releases the GPU-facing resources a scene node owns:
 * the geometry buffers of mesh nodes and, through the material releaser,
 * their material resources. Group nodes own nothing disposable themselves.
 */
type Disposer struct {
	materials MaterialReleaser
}

func NewDisposer(materials MaterialReleaser) *Disposer {
	return &Disposer{materials: materials}
}

// Dispose releases the resources owned by a single node. Children are not
// visited; use DisposeTree to tear down a whole graph. Disposing an already
// disposed node is a no-op.
func (d *Disposer) Dispose(node *scene.Node) {
	d.dispose(node, nil)
}

// DisposeTree releases every disposable resource reachable from root.
// Materials shared between meshes in the tree are released exactly once.
// Decoded scenes are usually flat, but nothing stops a decode service from
// nesting mesh nodes below groups, so the traversal is always full depth.
func (d *Disposer) DisposeTree(root *scene.Node) {
	if root == nil {
		return
	}
	seen := make(map[*scene.Material]bool)
	root.Walk(func(n *scene.Node) {
		d.dispose(n, seen)
	})
}

func (d *Disposer) dispose(node *scene.Node, seen map[*scene.Material]bool) {
	if node == nil {
		return
	}
	switch node.Type {
	case scene.NodeTypeGroup:
		// Nothing at this node; groups carry no buffers.
	case scene.NodeTypeMesh:
		if node.Mesh.Released() {
			// Already torn down; do not release the materials twice.
			return
		}
		node.Mesh.MarkReleased()
		node.Mesh.Geometry.Release()
		for _, material := range node.Mesh.Materials {
			if material == nil || seen[material] {
				continue
			}
			if seen != nil {
				seen[material] = true
			}
			if d.materials != nil {
				d.materials.ReleaseMaterial(material)
			}
		}
	default:
		core.LogWarn("dispose: unknown node type %d on '%s'", node.Type, node.Name)
	}
}

/**
 * @brief BasicMaterialReleaser is the in-process default used by the demo
 * viewer: it drops bound texture pixel buffers and marks the material dirty.
 * Hosts with a real renderer substitute their own releaser.
 */
type BasicMaterialReleaser struct{}

func (BasicMaterialReleaser) ReleaseMaterial(material *scene.Material) {
	if material == nil {
		return
	}
	if material.DiffuseMap != nil && material.DiffuseMap.Texture != nil {
		material.DiffuseMap.Texture.Pixels = nil
	}
	if material.NormalMap != nil && material.NormalMap.Texture != nil {
		material.NormalMap.Texture.Pixels = nil
	}
	material.DiffuseMap = nil
	material.NormalMap = nil
	material.MarkDirty()
}
