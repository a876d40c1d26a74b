package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/poly2dev/poly2/internal/retro"
	"github.com/spf13/cobra"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Apply a preset to raw RGBA pixels (raw output + JSON sidecar)",
	RunE:  runFilter,
}

func init() {
	filterCmd.Flags().StringP("input", "i", "", "Input raw RGBA file")
	filterCmd.Flags().StringP("output", "o", "", "Output raw RGBA file")
	filterCmd.Flags().Int("width", 0, "Image width")
	filterCmd.Flags().Int("height", 0, "Image height")
	filterCmd.Flags().StringP("preset", "p", retro.DefaultPreset.String(), "Console preset")
	filterCmd.MarkFlagRequired("input")
	filterCmd.MarkFlagRequired("output")
	filterCmd.MarkFlagRequired("width")
	filterCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(filterCmd)
}

type filterMeta struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Preset string `json:"preset"`
}

func runFilter(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	presetStr, _ := cmd.Flags().GetString("preset")

	preset, err := retro.ParsePreset(presetStr)
	if err != nil {
		return err
	}

	pixels, err := readRGBA(inputPath, width, height)
	if err != nil {
		return err
	}

	filtered := retro.Apply(pixels, width, height, preset)
	if err := os.WriteFile(outputPath, filtered, 0644); err != nil {
		return fmt.Errorf("writing raw RGBA: %w", err)
	}

	meta := filterMeta{
		Width:  width,
		Height: height,
		Format: "RGBA8",
		Preset: preset.String(),
	}
	metaJSON, _ := json.MarshalIndent(meta, "", "  ")
	metaPath := strings.TrimSuffix(outputPath, ".raw") + ".json"
	if err := os.WriteFile(metaPath, metaJSON, 0644); err != nil {
		return fmt.Errorf("writing sidecar: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Filtered %dx%d with %s → %s (%d bytes)\n", width, height, preset.Title(), outputPath, len(filtered))
	fmt.Fprintf(cmd.OutOrStdout(), "Sidecar: %s\n", metaPath)
	return nil
}

// readRGBA loads a raw RGBA buffer and checks it against the dimensions.
func readRGBA(path string, width, height int) ([]byte, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid dimensions %dx%d", width, height)
	}
	pixels, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	expected := width * height * 4
	if len(pixels) != expected {
		return nil, fmt.Errorf("expected %d bytes for %dx%d RGBA, got %d", expected, width, height, len(pixels))
	}
	return pixels, nil
}
