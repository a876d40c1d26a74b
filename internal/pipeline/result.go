package pipeline

import (
	"fmt"
	"time"

	"github.com/poly2dev/poly2/internal/codec"
	"github.com/poly2dev/poly2/internal/retro"
)

// Mode records which path produced a result.
type Mode int

const (
	ModeLocal Mode = iota // local pixel filter engine
	ModeAI                // remote generative model
)

func (m Mode) String() string {
	if m == ModeAI {
		return "ai"
	}
	return "local"
}

// Result holds the output of one transformation.
type Result struct {
	Data      []byte // PNG, whatever the mode
	Width     int
	Height    int
	Preset    retro.Preset
	Mode      Mode
	Fallback  error     // AI failure that forced ModeLocal, nil otherwise
	CreatedAt time.Time // when the result was produced
}

// DataURI returns the result as a PNG data URI for display or download.
func (r *Result) DataURI() string {
	return codec.DataURI(codec.MIMEPNG, r.Data)
}

// Filename returns the download name: poly2-<preset>-<mode>-<unix millis>.png.
func (r *Result) Filename() string {
	return fmt.Sprintf("poly2-%s-%s-%d.png", r.Preset, r.Mode, r.CreatedAt.UnixMilli())
}

// Status returns the user-facing message for the result.
func (r *Result) Status() string {
	switch {
	case r.Mode == ModeAI:
		return "AI transformation complete!"
	case r.Fallback != nil:
		return "AI service unavailable, using local transformation."
	default:
		return "Local transformation complete!"
	}
}
