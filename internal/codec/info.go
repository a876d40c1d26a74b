package codec

import (
	"bytes"
	"fmt"
	"image"
)

// ImageInfo contains metadata about an encoded image.
type ImageInfo struct {
	Width    int
	Height   int
	Format   string // name registered with the image package: "png", "jpeg", "webp", ...
	MIMEType string
}

// GetInfo reads the image header without decoding the pixel data.
func GetInfo(data []byte) (*ImageInfo, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec: decode config: %w", err)
	}

	return &ImageInfo{
		Width:    cfg.Width,
		Height:   cfg.Height,
		Format:   format,
		MIMEType: "image/" + format,
	}, nil
}
