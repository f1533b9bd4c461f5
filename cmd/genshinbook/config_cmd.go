package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"genshinbook/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default " + config.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configFile
			if path == "" {
				path = config.FileName
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.DefaultConfig()
			if opts.baseURL != "" {
				cfg.API.BaseURL = strings.TrimRight(opts.baseURL, "/")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.NewConfigService().SaveToPath(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	configCmd.AddCommand(initCmd)
	return configCmd
}
