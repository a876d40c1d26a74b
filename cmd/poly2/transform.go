package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/poly2dev/poly2/internal/config"
	"github.com/poly2dev/poly2/internal/pipeline"
	"github.com/poly2dev/poly2/internal/retro"
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Transform an image into a retro console style (AI first, local filters as fallback)",
	RunE:  runTransform,
}

func init() {
	transformCmd.Flags().StringP("input", "i", "", "Input image file")
	transformCmd.Flags().StringP("output", "o", "", "Output PNG file (default poly2-<preset>-<mode>-<timestamp>.png)")
	transformCmd.Flags().StringP("preset", "p", retro.DefaultPreset.String(), "Console preset (playstation1, nintendo64, saturn, early3d)")
	transformCmd.Flags().Bool("lenient", false, "Fall back to playstation1 for unknown presets instead of failing")
	transformCmd.Flags().Bool("local", false, "Skip the AI path and use the local filters only")
	transformCmd.Flags().String("api-key", "", "API key for this run (overrides the stored key)")
	transformCmd.Flags().Duration("timeout", config.DefaultTimeout, "Timeout for the AI request")
	transformCmd.Flags().Bool("data-uri", false, "Also print the result as a PNG data URI")
	transformCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(transformCmd)
}

func runTransform(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	presetStr, _ := cmd.Flags().GetString("preset")
	lenient, _ := cmd.Flags().GetBool("lenient")
	printURI, _ := cmd.Flags().GetBool("data-uri")

	preset, err := retro.ParsePreset(presetStr)
	if err != nil {
		if !lenient {
			return err
		}
		preset = retro.PresetOrDefault(presetStr)
	}

	// --api-key, --timeout and --local override the stored and env settings.
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Refuse oversized files before reading them.
	fi, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	if fi.Size() > cfg.MaxInputBytes {
		return fmt.Errorf("image file too large (%.1f MB). Please select a file under %d MB",
			float64(fi.Size())/(1<<20), cfg.MaxInputBytes>>20)
	}

	inputData, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	o := pipeline.New(cfg)
	if o.AIEnabled() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Mode: AI Generation (%s)\n", o.Config().Model)
	} else {
		fmt.Fprintln(cmd.ErrOrStderr(), "Mode: Local Filters")
	}

	result, err := o.Run(cmd.Context(), pipeline.Request{
		Data:     inputData,
		Filename: inputPath,
		Preset:   preset,
	})
	switch {
	case errors.Is(err, pipeline.ErrInputRejected):
		return fmt.Errorf("please select a valid image file: %w", err)
	case err != nil:
		return fmt.Errorf("error transforming image, please try again: %w", err)
	}

	if outputPath == "" {
		outputPath = result.Filename()
	}
	if err := os.WriteFile(outputPath, result.Data, 0644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Status())
	if result.Fallback != nil {
		fmt.Fprintf(out, "AI error: %v\n", result.Fallback)
	}
	fmt.Fprintf(out, "Transformed %dx%d → %s (%s mode, %s)\n",
		result.Width, result.Height, preset.Title(), result.Mode, result.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "Input:  %s (%d bytes)\n", inputPath, len(inputData))
	fmt.Fprintf(out, "Output: %s (%d bytes)\n", outputPath, len(result.Data))
	if printURI {
		fmt.Fprintln(out, result.DataURI())
	}
	return nil
}

// loadConfig layers the settings file, the environment and the flags of cmd.
// A missing config directory only disables the stored key.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	store, err := config.DefaultStore()
	if err != nil {
		store = nil
	}
	return config.Load(store, cmd.Flags())
}
