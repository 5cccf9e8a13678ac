// Package testbed carries the demo stand-ins used by the example viewer
// application. The real decode service client is supplied by the host; this
// codec exists so the viewer can be run against hand-written scene files.
package testbed

import (
	"context"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	m "math"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/vetrina/engine/decoder"
	"github.com/spaghettifunk/vetrina/engine/math"
	"github.com/spaghettifunk/vetrina/engine/scene"
)

type sceneDoc struct {
	Name   string    `toml:"name"`
	Meshes []meshDoc `toml:"meshes"`
	Clips  []clipDoc `toml:"clips"`
}

type meshDoc struct {
	Name   string    `toml:"name"`
	Colour []float32 `toml:"colour"`
	// Vertex positions as x,y,z triplets.
	Positions []float32 `toml:"positions"`
	// Alternative to Positions: base64 of a blob the geometry-decompression
	// stage expands into little-endian float32 triplets.
	PackedPositions string   `toml:"packed_positions"`
	Indices         []uint32 `toml:"indices"`
}

type clipDoc struct {
	Name     string     `toml:"name"`
	Duration float32    `toml:"duration"`
	Tracks   []trackDoc `toml:"tracks"`
}

type trackDoc struct {
	Target   string    `toml:"target"`
	Property string    `toml:"property"`
	Times    []float32 `toml:"times"`
	// Flattened x,y,z,w quadruplets, one per time.
	Values []float32 `toml:"values"`
}

// DemoCodec decodes TOML scene documents. It plays the role of the external
// asset-decoding service for the demo viewer, including routing packed
// vertex data through the decompression stage.
type DemoCodec struct{}

func (DemoCodec) Decode(ctx context.Context, data []byte, decompressor decoder.Decompressor) (*scene.Scene, error) {
	var doc sceneDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid scene document: %w", err)
	}
	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("scene document '%s' contains no meshes", doc.Name)
	}

	root := scene.NewGroup(doc.Name)
	for _, mesh := range doc.Meshes {
		node, err := buildMeshNode(ctx, mesh, decompressor)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, node)
	}

	clips := make([]*scene.AnimationClip, 0, len(doc.Clips))
	for _, clip := range doc.Clips {
		built, err := buildClip(clip)
		if err != nil {
			return nil, err
		}
		clips = append(clips, built)
	}

	return scene.New(root, clips...), nil
}

func buildMeshNode(ctx context.Context, doc meshDoc, decompressor decoder.Decompressor) (*scene.Node, error) {
	positions := doc.Positions
	if doc.PackedPositions != "" {
		blob, err := base64.StdEncoding.DecodeString(doc.PackedPositions)
		if err != nil {
			return nil, fmt.Errorf("mesh '%s': bad packed positions: %w", doc.Name, err)
		}
		expanded, err := decompressor.Decompress(ctx, blob)
		if err != nil {
			return nil, fmt.Errorf("mesh '%s': decompression failed: %w", doc.Name, err)
		}
		positions, err = bytesToFloats(expanded)
		if err != nil {
			return nil, fmt.Errorf("mesh '%s': %w", doc.Name, err)
		}
	}
	if len(positions) == 0 || len(positions)%3 != 0 {
		return nil, fmt.Errorf("mesh '%s': positions must be x,y,z triplets", doc.Name)
	}
	vertexCount := uint32(len(positions) / 3)
	for _, index := range doc.Indices {
		if index >= vertexCount {
			return nil, fmt.Errorf("mesh '%s': index %d out of range for %d vertices", doc.Name, index, vertexCount)
		}
	}

	vertices := make([]math.Vertex3D, len(positions)/3)
	for i := range vertices {
		vertices[i].Position = math.Vec3{
			X: positions[i*3+0],
			Y: positions[i*3+1],
			Z: positions[i*3+2],
		}
	}

	colour := math.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	if len(doc.Colour) == 4 {
		colour = math.Vec4{X: doc.Colour[0], Y: doc.Colour[1], Z: doc.Colour[2], W: doc.Colour[3]}
	}

	geometry := &scene.Geometry{
		Name:     doc.Name,
		Vertices: vertices,
		Indices:  doc.Indices,
	}
	material := &scene.Material{
		Name:          doc.Name + "_material",
		DiffuseColour: colour,
		Shininess:     8.0,
	}
	return scene.NewMeshNode(doc.Name, geometry, material), nil
}

func buildClip(doc clipDoc) (*scene.AnimationClip, error) {
	clip := &scene.AnimationClip{
		Name:     doc.Name,
		Duration: doc.Duration,
	}
	for _, track := range doc.Tracks {
		if len(track.Values) != len(track.Times)*4 {
			return nil, fmt.Errorf("clip '%s': track on '%s' needs 4 values per keyframe", doc.Name, track.Target)
		}
		property, err := parseProperty(track.Property)
		if err != nil {
			return nil, fmt.Errorf("clip '%s': %w", doc.Name, err)
		}
		values := make([]math.Vec4, len(track.Times))
		for i := range values {
			values[i] = math.Vec4{
				X: track.Values[i*4+0],
				Y: track.Values[i*4+1],
				Z: track.Values[i*4+2],
				W: track.Values[i*4+3],
			}
		}
		clip.Tracks = append(clip.Tracks, &scene.KeyframeTrack{
			TargetNode: track.Target,
			Property:   property,
			Times:      track.Times,
			Values:     values,
		})
	}
	return clip, nil
}

func parseProperty(name string) (scene.TrackProperty, error) {
	switch name {
	case "position":
		return scene.TrackPropertyPosition, nil
	case "rotation":
		return scene.TrackPropertyRotation, nil
	case "scale":
		return scene.TrackPropertyScale, nil
	default:
		return 0, fmt.Errorf("unknown track property '%s'", name)
	}
}

func bytesToFloats(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("expanded blob length %d is not a multiple of 4", len(b))
	}
	floats := make([]float32, len(b)/4)
	for i := range floats {
		bits := binary.LittleEndian.Uint32(b[i*4:])
		floats[i] = m.Float32frombits(bits)
	}
	return floats, nil
}
