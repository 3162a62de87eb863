package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/menusheet/internal/config"
	"github.com/oakwood-commons/menusheet/pkg/loader"
)

func newConfigCommand(root *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the merged configuration",
		Long: `Config prints the embedded defaults merged with the config file and flags.

The config file is --config-file, else the first of config.yaml, config.yml,
config.toml or config.json in $XDG_CONFIG_HOME/menusheet (~/.config/menusheet).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := loader.ParseFormat(output)
			if err != nil {
				return err
			}
			data, err := loader.Encode(root.cfg, format)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml|json|toml")

	cmd.AddCommand(&cobra.Command{
		Use:   "default",
		Short: "Print the built-in default config with comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(config.DefaultConfigYAML())
			return err
		},
	})
	return cmd
}
