package scene

import "github.com/spaghettifunk/vetrina/engine/math"

/**
 * @brief A texture bound to a material. Pixel data is decoded by the
 * external decode service; this core only owns its release.
 */
type Texture struct {
	/** @brief The texture name. */
	Name string
	/** @brief The texture width in pixels. */
	Width uint32
	/** @brief The texture height in pixels. */
	Height uint32
	/** @brief The number of channels. */
	ChannelCount uint8
	/** @brief Raw pixel data, Width*Height*ChannelCount bytes. */
	Pixels []uint8
}

/** @brief A use of a texture by a material. */
type TextureMap struct {
	Texture *Texture
}

/**
 * @brief A material, which represents the surface properties of a mesh.
 * Mutating any field must be followed by a Generation bump so the renderer
 * backend refreshes its internal copy.
 */
type Material struct {
	/** @brief The material name. */
	Name string
	/** @brief The material generation. Incremented every time the material is changed. */
	Generation uint32
	/** @brief The diffuse colour. */
	DiffuseColour math.Vec4
	/** @brief The material shininess, determines how concentrated the specular lighting is. */
	Shininess float32
	/** @brief The diffuse texture map, if any. */
	DiffuseMap *TextureMap
	/** @brief The normal texture map, if any. */
	NormalMap *TextureMap
	/** @brief Renders both front and back faces when true. */
	DoubleSided bool
}

// MarkDirty bumps the generation so the renderer re-uploads the material
// properties on its next pass.
func (m *Material) MarkDirty() {
	m.Generation++
}
