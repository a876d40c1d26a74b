package codec

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/poly2dev/poly2/internal/ir"
)

// MIMEPNG is the MIME type of every encoded result.
const MIMEPNG = "image/png"

// EncodePNG encodes RGBA pixels as a PNG file.
func EncodePNG(img *ir.RGBAImage) ([]byte, error) {
	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, err)
	}
	if img.Width == 0 || img.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, img.Width, img.Height)
	}

	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, ToImage(img)); err != nil {
		return nil, fmt.Errorf("codec: encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
