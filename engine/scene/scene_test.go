package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/vetrina/engine/math"
)

func meshNode(name string) *Node {
	return NewMeshNode(name, &Geometry{Name: name}, &Material{Name: name + "_material"})
}

func TestMeshesTraversalOrder(t *testing.T) {
	//      root
	//     /  |  \
	//    a  g1   d
	//       / \
	//      b   c
	g1 := NewGroup("g1", meshNode("b"), meshNode("c"))
	root := NewGroup("root", meshNode("a"), g1, meshNode("d"))
	s := New(root)

	meshes := s.Meshes()
	require.Len(t, meshes, 4)
	names := []string{meshes[0].Name, meshes[1].Name, meshes[2].Name, meshes[3].Name}
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)
}

func TestMeshesOnEmptyScene(t *testing.T) {
	assert.Nil(t, New(nil).Meshes())
	var s *Scene
	assert.Nil(t, s.Meshes())
}

func TestFindNode(t *testing.T) {
	inner := NewGroup("inner", meshNode("target"))
	s := New(NewGroup("root", inner))

	found := s.FindNode("target")
	require.NotNil(t, found)
	assert.Equal(t, NodeTypeMesh, found.Type)
	assert.Nil(t, s.FindNode("missing"))
}

func TestSceneIdentityIsUniquePerDecode(t *testing.T) {
	a := New(NewGroup("root"))
	b := New(NewGroup("root"))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestGeometryReleaseIsIdempotent(t *testing.T) {
	g := &Geometry{
		Name:     "g",
		Vertices: make([]math.Vertex3D, 3),
		Indices:  []uint32{0, 1, 2},
	}

	require.False(t, g.Released())
	g.Release()
	assert.True(t, g.Released())
	assert.Nil(t, g.Vertices)
	assert.Nil(t, g.Indices)

	g.Release()
	assert.True(t, g.Released())

	var nilGeometry *Geometry
	nilGeometry.Release()
	assert.True(t, nilGeometry.Released())
}
