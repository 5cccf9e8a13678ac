package scene

import "github.com/spaghettifunk/vetrina/engine/math"

/** @brief An id or generation value meaning "unset/destroyed". */
const InvalidID uint32 = 99999
const InvalidIDUint16 uint16 = 65535

/**
 * @brief Vertex and index buffers of a single mesh, as produced by the
 * decode service. Extents and Center are filled in by the load controller's
 * post-processing pass before publish.
 */
type Geometry struct {
	/** @brief The geometry name. */
	Name string
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief An array of vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of indices, three per triangle. */
	Indices []uint32
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
}

// Release drops the vertex and index buffers and invalidates the generation.
// Safe to call more than once; only the first call does anything.
func (g *Geometry) Release() {
	if g == nil || g.Generation == InvalidIDUint16 {
		return
	}
	g.Vertices = nil
	g.Indices = nil
	g.Generation = InvalidIDUint16
}

// Released reports whether Release has run on this geometry.
func (g *Geometry) Released() bool {
	return g == nil || g.Generation == InvalidIDUint16
}
