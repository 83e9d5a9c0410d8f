package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dhlink/internal/app"
	"dhlink/internal/ui"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the config file",
	}
	cmd.AddCommand(configInitCmd(), configShowCmd())
	return cmd
}

// config init: persist the effective settings so later runs need no flags.
func configInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFilePath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", path)
			}
			if err := app.SaveConfigFile(path, cfg); err != nil {
				return err
			}
			fmt.Printf("%s wrote %s\n", ui.Success.Sprint("✓"), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("config     %s\n", configFilePath())
			fmt.Printf("home       %s\n", cfg.Home)
			fmt.Printf("relay      %s\n", cfg.RelayURL)
			fmt.Printf("user       %s\n", cfg.User)
			fmt.Printf("timeout    %s\n", cfg.Timeout)
			fmt.Printf("kdf        %s\n", cfg.KDF)
			fmt.Printf("log-level  %s\n", cfg.LogLevel)
			return nil
		},
	}
}

func configFilePath() string {
	if configPath != "" {
		return configPath
	}
	return filepath.Join(cfg.Home, app.ConfigFile)
}
