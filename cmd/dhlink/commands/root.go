package commands

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"dhlink/internal/app"
	"dhlink/internal/domain"
	"dhlink/internal/services/session"
)

var (
	cfg     app.Config
	wire    *app.Wire
	verbose bool

	home       string
	configPath string
	relayURL   string
	username   string
	kdfName    string
	logLevel   string
	timeout    time.Duration
)

func Execute() error {
	root := &cobra.Command{
		Use:           "dhlink",
		Short:         "Diffie-Hellman key exchange and encrypted messaging over a relay",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if home == "" {
				dir, err := app.DefaultHome()
				if err != nil {
					return err
				}
				home = dir
			}
			if err := os.MkdirAll(home, 0o700); err != nil {
				return err
			}

			cfg = app.DefaultConfig(home)
			path := configPath
			if path == "" {
				path = filepath.Join(home, app.ConfigFile)
			}
			if err := app.LoadConfigFile(path, &cfg); err != nil {
				return err
			}
			applyFlags(cmd)

			w, err := app.NewWire(cfg)
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&home, "home", "", "config dir (default ~/.dhlink)")
	flags.StringVar(&configPath, "config", "", "config file (default <home>/config.toml)")
	flags.StringVar(&relayURL, "relay", "", "relay base URL (default "+app.DefaultRelayURL+")")
	flags.StringVarP(&username, "user", "u", "", "username to act as on the relay")
	flags.DurationVar(&timeout, "timeout", session.DefaultTimeout, "bound on each network step")
	flags.StringVar(&kdfName, "kdf", "", "key derivation: sha256 or hkdf-sha256")
	flags.StringVar(&logLevel, "log-level", "", "off, error, warn, info, debug or trace")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log progress instead of showing a spinner")

	root.AddCommand(
		paramsCmd(),
		handshakeCmd(),
		sendCmd(),
		chatCmd(),
		revealCmd(),
		outboxCmd(),
		configCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		printError(err)
		return err
	}
	return nil
}

// applyFlags overrides file settings with the flags the user actually set.
func applyFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("relay") {
		cfg.RelayURL = relayURL
	}
	if flags.Changed("user") {
		cfg.User = domain.Username(username)
	}
	if flags.Changed("timeout") {
		cfg.Timeout = timeout
	}
	if flags.Changed("kdf") {
		cfg.KDF = kdfName
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	} else if verbose && cfg.LogLevel == "off" {
		cfg.LogLevel = "info"
	}
}
