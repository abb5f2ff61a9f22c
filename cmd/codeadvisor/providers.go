package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"codeadvisor/internal/config"
	"codeadvisor/internal/llm"
)

func newProvidersCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List configured providers with model and token metadata",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return exitError(3, "failed to load config: %v", err)
			}

			configured := cfg.ConfiguredProviders()
			if len(configured) == 0 {
				fmt.Println("No providers configured. Set an API key in the config file or environment.")
				return nil
			}

			for _, kind := range configured {
				provCfg, err := cfg.ProviderConfig(kind)
				if err != nil {
					continue
				}
				p, err := llm.New(provCfg)
				if err != nil {
					return exitError(4, "provider error: %v", err)
				}
				marker := " "
				if kind == cfg.DefaultProvider {
					marker = "*"
				}
				fmt.Printf("%s %-10s model=%s max_context_tokens=%d\n", marker, p.Name(), p.ModelName(), p.MaxContextTokens())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path (default: standard locations)")
	return cmd
}
