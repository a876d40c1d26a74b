package retro

import "testing"

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    Preset
		wantErr bool
	}{
		{"playstation1", PlayStation1, false},
		{"nintendo64", Nintendo64, false},
		{"saturn", Saturn, false},
		{"early3d", Early3D, false},
		{"psx", Early3D, false},
		{"dreamcast", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParsePreset(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPresetOrDefault(t *testing.T) {
	if got := PresetOrDefault("virtualboy"); got != PlayStation1 {
		t.Errorf("PresetOrDefault(unknown) = %s, want playstation1", got)
	}
	if got := PresetOrDefault("saturn"); got != Saturn {
		t.Errorf("PresetOrDefault(saturn) = %s", got)
	}
}

func TestPresetStringRoundTrip(t *testing.T) {
	for _, p := range Presets() {
		got, err := ParsePreset(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePreset(%q) = %v, %v", p.String(), got, err)
		}
		if p.Prompt() == "" {
			t.Errorf("%s has no prompt", p)
		}
	}
}

func TestPromptsAreDistinct(t *testing.T) {
	seen := make(map[string]Preset)
	for _, p := range Presets() {
		if other, ok := seen[p.Prompt()]; ok {
			t.Errorf("%s and %s share a prompt", p, other)
		}
		seen[p.Prompt()] = p
	}
	if Preset(99).Prompt() != PlayStation1.Prompt() {
		t.Error("unknown preset should use the default prompt")
	}
}
