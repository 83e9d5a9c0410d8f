package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dhlink/internal/app"
	"dhlink/internal/crypto"
	"dhlink/internal/responder"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		addr     string
		kdfName  string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:          "relay",
		Short:        "In-memory development relay for dhlink",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			kdf, err := crypto.KDFByName(kdfName)
			if err != nil {
				return err
			}
			lf, err := app.NewLoggerFactory(logLevel, os.Stderr)
			if err != nil {
				return err
			}

			r := responder.New(responder.Config{KDF: kdf, LoggerFactory: lf})
			srv := &http.Server{
				Addr:              addr,
				Handler:           r.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.ListenAndServe() }()
			if lf != nil {
				lf.NewLogger("relay").Infof("listening on %s (%d-bit group, kdf %s)",
					addr, r.Parameters().Modulus.BitLen(), kdfName)
			}

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&kdfName, "kdf", crypto.KDFSHA256, "key derivation: sha256 or hkdf-sha256")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "off, error, warn, info, debug or trace")
	return cmd
}
