package ir

import "fmt"

// RGBAImage is the intermediate representation passed between the decoder,
// the retro filter engine and the PNG encoder. Pixels are stored as
// interleaved R,G,B,A bytes (4 bytes per pixel, row-major, top to bottom).
type RGBAImage struct {
	Width  int
	Height int
	Pixels []byte // len = Width * Height * 4
}

// New allocates a zeroed image of the given size.
func New(width, height int) *RGBAImage {
	return &RGBAImage{
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*4),
	}
}

// Validate reports whether the dimensions and the pixel buffer agree.
func (m *RGBAImage) Validate() error {
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("invalid dimensions %dx%d", m.Width, m.Height)
	}
	if expected := m.Width * m.Height * 4; len(m.Pixels) != expected {
		return fmt.Errorf("expected %d RGBA bytes for %dx%d, got %d", expected, m.Width, m.Height, len(m.Pixels))
	}
	return nil
}

