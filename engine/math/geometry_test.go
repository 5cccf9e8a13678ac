package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeometryGenerateNormals(t *testing.T) {
	vertices := []Vertex3D{
		{Position: Vec3{0, 0, 0}},
		{Position: Vec3{1, 0, 0}},
		{Position: Vec3{0, 1, 0}},
	}
	indices := []uint32{0, 1, 2}

	GeometryGenerateNormals(uint32(len(vertices)), vertices, uint32(len(indices)), indices)

	for _, v := range vertices {
		assert.True(t, v.Normal.Compare(Vec3{0, 0, 1}, K_FLOAT_EPSILON), "normal %+v", v.Normal)
	}
}

func TestGeometryGenerateNormalsIgnoresDanglingIndices(t *testing.T) {
	vertices := []Vertex3D{
		{Position: Vec3{0, 0, 0}},
		{Position: Vec3{1, 0, 0}},
		{Position: Vec3{0, 1, 0}},
	}
	// A trailing pair that does not form a full triangle is skipped.
	indices := []uint32{0, 1, 2, 0, 1}

	GeometryGenerateNormals(uint32(len(vertices)), vertices, uint32(len(indices)), indices)
}

func TestGeometryGenerateExtents(t *testing.T) {
	vertices := []Vertex3D{
		{Position: Vec3{-2, 1, 0}},
		{Position: Vec3{4, -3, 5}},
		{Position: Vec3{0, 0, -1}},
	}

	extents, center := GeometryGenerateExtents(vertices)

	assert.True(t, extents.Min.Compare(Vec3{-2, -3, -1}, K_FLOAT_EPSILON))
	assert.True(t, extents.Max.Compare(Vec3{4, 1, 5}, K_FLOAT_EPSILON))
	assert.True(t, center.Compare(Vec3{1, -1, 2}, K_FLOAT_EPSILON))
}

func TestGeometryGenerateExtentsEmpty(t *testing.T) {
	extents, center := GeometryGenerateExtents(nil)
	assert.Equal(t, Extents3D{}, extents)
	assert.Equal(t, Vec3{}, center)
}

func TestVec3Ops(t *testing.T) {
	v := Vec3{3, 0, 4}
	assert.InDelta(t, 5.0, float64(v.Length()), 1e-5)
	assert.True(t, v.Normalized().Compare(Vec3{0.6, 0, 0.8}, 1e-5))
	assert.Equal(t, Vec3{}, Vec3{}.Normalized(), "zero vector stays zero")

	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, 6}
	assert.True(t, a.Lerp(b, 0.5).Compare(Vec3{1, 2, 3}, 1e-5))
}

func TestQuaternionNlerpShortestArc(t *testing.T) {
	q := NewQuatIdentity()
	// The negated identity represents the same rotation; interpolation must
	// not swing through zero.
	o := Quaternion{0, 0, 0, -1}

	mid := q.Nlerp(o, 0.5)
	assert.InDelta(t, 1.0, float64(mid.Dot(mid)), 1e-5)
	assert.InDelta(t, 1.0, float64(mid.W), 1e-5)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(10, 0, 5))
	assert.Equal(t, 0, Clamp(-1, 0, 5))
	assert.Equal(t, 3, Clamp(3, 0, 5))
	assert.InDelta(t, 0.5, Clamp(0.5, 0.0, 1.0), 1e-9)
}
