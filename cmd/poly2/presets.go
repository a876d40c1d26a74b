package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/poly2dev/poly2/internal/retro"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the console presets",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func init() {
	presetsCmd.Flags().Bool("prompts", false, "Show the prompt sent to the AI model for each preset")
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	showPrompts, _ := cmd.Flags().GetBool("prompts")

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, p := range retro.Presets() {
		def := ""
		if p == retro.DefaultPreset {
			def = "(default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p, p.Title(), def)
		if showPrompts {
			fmt.Fprintf(tw, "\t%s\t\n", p.Prompt())
		}
	}
	return tw.Flush()
}
