package math

func GeometryGenerateNormals(vertexCount uint32, vertices []Vertex3D, indexCount uint32, indices []uint32) {
	for i := uint32(0); i+2 < indexCount; i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)

		c := edge1.Cross(edge2)
		normal := c.Normalized()

		// NOTE: This just generates a face normal. Smoothing out should be done in a separate pass if desired.
		vertices[i0].Normal = normal
		vertices[i1].Normal = normal
		vertices[i2].Normal = normal
	}
}

// GeometryGenerateExtents computes the axis-aligned bounding volume and its
// center for the given vertices.
func GeometryGenerateExtents(vertices []Vertex3D) (Extents3D, Vec3) {
	if len(vertices) == 0 {
		return Extents3D{}, Vec3{}
	}
	min := vertices[0].Position
	max := vertices[0].Position
	for _, v := range vertices[1:] {
		min = min.Min(v.Position)
		max = max.Max(v.Position)
	}
	center := min.Add(max).MulScalar(0.5)
	return Extents3D{Min: min, Max: max}, center
}
