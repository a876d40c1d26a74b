package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/poly2dev/poly2/internal/ir"
)

// Decoding errors.
var (
	// ErrEmptyData is returned when there are no bytes to decode.
	ErrEmptyData = errors.New("codec: empty data")

	// ErrInvalidSize is returned for images with no pixels or a pixel
	// buffer that does not match the declared dimensions.
	ErrInvalidSize = errors.New("codec: invalid image dimensions")
)

// DecodeRGBA decodes any registered raster format into straight
// (non-premultiplied) RGBA pixels.
func DecodeRGBA(data []byte) (*ir.RGBAImage, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec: decode: %w", err)
	}

	b := src.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: %s image is %dx%d", ErrInvalidSize, format, b.Dx(), b.Dy())
	}

	return FromImage(src), nil
}

// FromImage copies an image.Image into an RGBAImage with its origin at 0,0.
func FromImage(src image.Image) *ir.RGBAImage {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if n, ok := src.(*image.NRGBA); ok && n.Stride == w*4 {
		out := ir.New(w, h)
		copy(out.Pixels, n.Pix[n.PixOffset(b.Min.X, b.Min.Y):])
		return out
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), src, b.Min, xdraw.Src)
	return &ir.RGBAImage{Width: w, Height: h, Pixels: dst.Pix}
}

// ToImage wraps the pixel buffer as an *image.NRGBA without copying.
func ToImage(img *ir.RGBAImage) *image.NRGBA {
	return &image.NRGBA{
		Pix:    img.Pixels,
		Stride: img.Width * 4,
		Rect:   image.Rect(0, 0, img.Width, img.Height),
	}
}
