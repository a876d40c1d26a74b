package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/poly2dev/poly2/internal/config"
	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage the stored API key for AI transformations",
}

var keySetCmd = &cobra.Command{
	Use:   "set [key]",
	Short: "Store an API key (read from stdin when omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runKeySet,
}

var keyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API key",
	Args:  cobra.NoArgs,
	RunE:  runKeyClear,
}

var keyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show whether an API key is configured",
	Args:  cobra.NoArgs,
	RunE:  runKeyShow,
}

func init() {
	keyCmd.AddCommand(keySetCmd, keyClearCmd, keyShowCmd)
	rootCmd.AddCommand(keyCmd)
}

func runKeySet(cmd *cobra.Command, args []string) error {
	var key string
	if len(args) == 1 {
		key = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading key from stdin: %w", err)
		}
		key = line
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("empty API key; use \"poly2 key clear\" to remove the stored key")
	}

	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	if err := store.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "API key saved successfully! (%s)\n", store.Path())
	return nil
}

func runKeyClear(cmd *cobra.Command, args []string) error {
	store, err := config.DefaultStore()
	if err != nil {
		return err
	}
	if err := store.SetAPIKey(""); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "API key removed")
	return nil
}

func runKeyShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if cfg.APIKey == "" {
		fmt.Fprintln(out, "No API key configured, transformations use the local filters")
		return nil
	}
	fmt.Fprintf(out, "API key configured ✓ %s\n", config.MaskKey(cfg.APIKey))
	fmt.Fprintf(out, "Model: %s\n", cfg.Model)
	return nil
}
