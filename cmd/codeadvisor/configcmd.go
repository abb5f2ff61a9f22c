package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codeadvisor/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage codeadvisor configuration",
	}
	cmd.AddCommand(newConfigInitCmd(), newConfigSetCmd(), newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with defaults",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			created, err := config.Init(path)
			if err != nil {
				return exitError(3, "config init failed: %v", err)
			}
			fmt.Printf("Created %s\n", created)
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Where to write the config file (default: ./"+config.ConfigFileName+")")
	return cmd
}

func newConfigSetCmd() *cobra.Command {
	var model string
	var configPath string

	cmd := &cobra.Command{
		Use:   "set <provider> <api-key>",
		Short: "Store a provider credential (and optional model) in the config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return exitError(3, "failed to load config: %v", err)
			}
			if err := cfg.SetProvider(args[0], args[1], model); err != nil {
				return exitError(3, "failed to save config: %v", err)
			}
			fmt.Printf("Saved %s configuration to %s\n", args[0], cfg.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Model ID for this provider")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: standard locations)")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the active configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return exitError(3, "failed to load config: %v", err)
			}
			file := cfg.Path()
			if file == "" {
				file = "(built-in defaults)"
			}
			configured := strings.Join(cfg.ConfiguredProviders(), ", ")
			if configured == "" {
				configured = "none"
			}
			fmt.Printf("Config file: %s\n", file)
			fmt.Printf("Default provider: %s\n", cfg.DefaultProvider)
			fmt.Printf("Configured providers: %s\n", configured)
			fmt.Printf("Max files per scan: %d\n", cfg.Analysis.MaxFiles)
			fmt.Printf("Excluded dirs: %s\n", strings.Join(cfg.Analysis.ExcludedDirs, ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: standard locations)")
	return cmd
}
