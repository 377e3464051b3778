package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harrison/sweepsafe/internal/classifier"
	"github.com/harrison/sweepsafe/internal/config"
)

// NewRulesCommand creates and returns the rules subcommand
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective classification rules as YAML",
		Long: `Print the classification rules after merging the config file over the
built-in defaults. The output is valid as the rules section of a config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				if p, err := config.DefaultConfigPath(); err == nil {
					configPath = p
				}
			}

			cfg := config.DefaultConfig()
			if configPath != "" {
				loaded, err := config.LoadConfig(configPath)
				if err != nil {
					return fmt.Errorf("failed to load config: %w", err)
				}
				cfg = loaded
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			cls, err := classifier.New(cfg.ClassifierRules())
			if err != nil {
				return fmt.Errorf("invalid rules: %w", err)
			}

			out := struct {
				Rules config.RulesConfig `yaml:"rules"`
			}{Rules: config.RulesFromClassifier(cls.Rules())}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("failed to encode rules: %w", err)
			}
			return enc.Close()
		},
	}

	cmd.Flags().String("config", "", "Path to config file (default: <user config dir>/sweepsafe/config.yaml)")

	return cmd
}
