package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetrina/engine/scene"
)

func TestDisposeMeshNode(t *testing.T) {
	releaser := &recordingReleaser{}
	disposer := NewDisposer(releaser)

	material := &scene.Material{Name: "m"}
	node := scene.NewMeshNode("quad", quadGeometry("quad"), material)

	disposer.Dispose(node)

	assert.True(t, node.Mesh.Geometry.Released())
	assert.Nil(t, node.Mesh.Geometry.Vertices)
	assert.Nil(t, node.Mesh.Geometry.Indices)
	require.Equal(t, 1, releaser.count())
	assert.Same(t, material, releaser.released[0])
}

func TestDisposeMeshNodeWithMultipleMaterials(t *testing.T) {
	releaser := &recordingReleaser{}
	disposer := NewDisposer(releaser)

	m1 := &scene.Material{Name: "m1"}
	m2 := &scene.Material{Name: "m2"}
	node := scene.NewMeshNode("quad", quadGeometry("quad"), m1, m2)

	disposer.Dispose(node)

	assert.Equal(t, 2, releaser.count())
}

func TestDisposeGroupReleasesNothing(t *testing.T) {
	releaser := &recordingReleaser{}
	disposer := NewDisposer(releaser)

	child := scene.NewMeshNode("quad", quadGeometry("quad"), &scene.Material{Name: "m"})
	group := scene.NewGroup("group", child)

	// Per-node disposal does not traverse into children.
	disposer.Dispose(group)

	assert.Equal(t, 0, releaser.count())
	assert.False(t, child.Mesh.Geometry.Released())
}

func TestDisposeIsIdempotent(t *testing.T) {
	releaser := &recordingReleaser{}
	disposer := NewDisposer(releaser)

	node := scene.NewMeshNode("quad", quadGeometry("quad"), &scene.Material{Name: "m"})

	disposer.Dispose(node)
	disposer.Dispose(node)

	assert.Equal(t, 1, releaser.count(), "second dispose must not release materials again")
}

func TestDisposeMeshWithoutGeometryIsIdempotent(t *testing.T) {
	releaser := &recordingReleaser{}
	disposer := NewDisposer(releaser)

	// Material-only mesh node, as a decode service may emit.
	node := scene.NewMeshNode("flat", nil, &scene.Material{Name: "m"})

	disposer.Dispose(node)
	disposer.Dispose(node)

	assert.True(t, node.Mesh.Released())
	assert.Equal(t, 1, releaser.count(), "materials must be released once even without geometry")
}

func TestDisposeTreeReachesNestedMeshes(t *testing.T) {
	releaser := &recordingReleaser{}
	disposer := NewDisposer(releaser)

	deep := scene.NewMeshNode("deep", quadGeometry("deep"), &scene.Material{Name: "md"})
	inner := scene.NewGroup("inner", deep)
	top := scene.NewMeshNode("top", quadGeometry("top"), &scene.Material{Name: "mt"})
	root := scene.NewGroup("root", top, inner)

	disposer.DisposeTree(root)

	assert.True(t, top.Mesh.Geometry.Released())
	assert.True(t, deep.Mesh.Geometry.Released(), "meshes below the first level must not leak")
	assert.Equal(t, 2, releaser.count())
}

func TestDisposeTreeReleasesSharedMaterialOnce(t *testing.T) {
	releaser := &recordingReleaser{}
	disposer := NewDisposer(releaser)

	shared := &scene.Material{Name: "shared"}
	a := scene.NewMeshNode("a", quadGeometry("a"), shared)
	b := scene.NewMeshNode("b", quadGeometry("b"), shared)
	root := scene.NewGroup("root", a, b)

	disposer.DisposeTree(root)

	assert.Equal(t, 1, releaser.count())
	assert.True(t, a.Mesh.Geometry.Released())
	assert.True(t, b.Mesh.Geometry.Released())
}

func TestBasicMaterialReleaserDropsTextures(t *testing.T) {
	material := &scene.Material{
		Name:       "m",
		DiffuseMap: &scene.TextureMap{Texture: &scene.Texture{Name: "t", Pixels: []uint8{1, 2, 3}}},
	}

	BasicMaterialReleaser{}.ReleaseMaterial(material)

	assert.Nil(t, material.DiffuseMap)
	assert.Nil(t, material.NormalMap)
	assert.NotZero(t, material.Generation)

	// Nil materials and repeat calls must not crash the host.
	BasicMaterialReleaser{}.ReleaseMaterial(material)
	BasicMaterialReleaser{}.ReleaseMaterial(nil)
}
