package retro

import "fmt"

// Preset selects one retro console look.
type Preset int

// Preset constants, in display order.
const (
	PlayStation1 Preset = iota
	Nintendo64
	Saturn
	Early3D
)

// DefaultPreset is used when a caller supplies an unknown identifier.
const DefaultPreset = PlayStation1

// Presets returns every preset in display order.
func Presets() []Preset {
	return []Preset{PlayStation1, Nintendo64, Saturn, Early3D}
}

// String returns the preset identifier used on the command line and in
// output filenames.
func (p Preset) String() string {
	switch p {
	case PlayStation1:
		return "playstation1"
	case Nintendo64:
		return "nintendo64"
	case Saturn:
		return "saturn"
	case Early3D:
		return "early3d"
	default:
		return fmt.Sprintf("Preset(%d)", int(p))
	}
}

// Title returns a human-readable console name.
func (p Preset) Title() string {
	switch p {
	case PlayStation1:
		return "PlayStation 1"
	case Nintendo64:
		return "Nintendo 64"
	case Saturn:
		return "Sega Saturn"
	case Early3D:
		return "Early 3D"
	default:
		return p.String()
	}
}

// Valid reports whether p is one of the four known presets.
func (p Preset) Valid() bool {
	return p >= PlayStation1 && p <= Early3D
}

// Prompt returns the natural-language instruction sent to the remote image
// model for this preset.
func (p Preset) Prompt() string {
	return profileFor(p).prompt
}

// ParsePreset converts a preset identifier to a Preset.
// "psx" is accepted as an alias of early3d.
func ParsePreset(s string) (Preset, error) {
	switch s {
	case "playstation1":
		return PlayStation1, nil
	case "nintendo64":
		return Nintendo64, nil
	case "saturn":
		return Saturn, nil
	case "early3d", "psx":
		return Early3D, nil
	default:
		return 0, fmt.Errorf("unknown console preset: %q", s)
	}
}

// PresetOrDefault is ParsePreset with unknown identifiers mapped to
// DefaultPreset.
func PresetOrDefault(s string) Preset {
	p, err := ParsePreset(s)
	if err != nil {
		return DefaultPreset
	}
	return p
}
