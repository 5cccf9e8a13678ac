package decoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spaghettifunk/vetrina/engine/scene"
)

/** @brief Configuration for the decode service binding. Set once at process start. */
type Config struct {
	/** @brief Fixed network location of the geometry-decompression stage. */
	DecompressorEndpoint string
	/** @brief Per-request timeout against the decompression stage. */
	Timeout time.Duration
}

const defaultTimeout = 30 * time.Second

/**
 * @brief Binding owns the configured connection to the external decode
 * service and its secondary geometry-decompression stage. It is stateless
 * beyond configuration and safe to reuse across decode calls.
 */
type Binding struct {
	codec        Codec
	decompressor Decompressor
}

func NewBinding(codec Codec, config Config) (*Binding, error) {
	if codec == nil {
		return nil, fmt.Errorf("decoder binding requires a codec")
	}
	if config.DecompressorEndpoint == "" {
		return nil, fmt.Errorf("decoder binding requires a decompressor endpoint")
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Binding{
		codec: codec,
		decompressor: &httpDecompressor{
			endpoint: config.DecompressorEndpoint,
			client:   &http.Client{Timeout: timeout},
		},
	}, nil
}

// Decode runs the payload through the decode service. Failures are wrapped
// in *DecodeError; a nil or rootless scene from the codec counts as one, as
// does a scene whose index buffers point outside their vertex buffers.
func (b *Binding) Decode(ctx context.Context, data []byte) (*scene.Scene, error) {
	s, err := b.codec.Decode(ctx, data, b.decompressor)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if s == nil || s.Root == nil {
		return nil, &DecodeError{Err: fmt.Errorf("decode service returned an empty scene")}
	}
	if err := validateGeometry(s); err != nil {
		return nil, &DecodeError{Err: err}
	}
	return s, nil
}

// validateGeometry rejects scenes whose indices reference vertices that do
// not exist. Post-processing indexes vertex buffers directly, so nothing
// past this point re-checks.
func validateGeometry(s *scene.Scene) error {
	for _, node := range s.Meshes() {
		geometry := node.Mesh.Geometry
		if geometry == nil {
			continue
		}
		vertexCount := uint32(len(geometry.Vertices))
		for _, index := range geometry.Indices {
			if index >= vertexCount {
				return fmt.Errorf("geometry '%s': index %d out of range for %d vertices",
					geometry.Name, index, vertexCount)
			}
		}
	}
	return nil
}

// httpDecompressor posts compressed vertex blobs to the fixed decompression
// endpoint and returns the expanded bytes.
type httpDecompressor struct {
	endpoint string
	client   *http.Client
}

func (d *httpDecompressor) Decompress(ctx context.Context, blob []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("decompressor returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
