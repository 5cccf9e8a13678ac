package decoder

import (
	"context"
	"fmt"

	"github.com/spaghettifunk/vetrina/engine/scene"
)

// Decoder turns a raw asset payload into a decoded scene graph. The payload
// container format is opaque to this engine; implementations wrap an
// external decode service.
type Decoder interface {
	Decode(ctx context.Context, data []byte) (*scene.Scene, error)
}

// Codec is the client of the external asset-decoding service. It receives
// the decompressor for the secondary geometry stage so compressed vertex
// blobs inside the container can be expanded during decode.
type Codec interface {
	Decode(ctx context.Context, data []byte, decompressor Decompressor) (*scene.Scene, error)
}

// Decompressor expands a compressed vertex data blob (the secondary
// geometry-decompression stage). Implementations must be safe for reuse
// across decode calls.
type Decompressor interface {
	Decompress(ctx context.Context, blob []byte) ([]byte, error)
}

/**
 * @brief The error surfaced when the decode service rejects or fails to
 * decode a payload. Always carries the underlying cause.
 */
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("asset decode failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
