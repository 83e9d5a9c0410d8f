package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"dhlink/internal/crypto"
	"dhlink/internal/ui"
)

// params: fetch and display the domain parameters served by the relay.
func paramsCmd() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Show the Diffie-Hellman group served by the relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()

			params, err := wire.Relay.FetchParameters(ctx)
			if err != nil {
				return err
			}
			if err := crypto.ValidateParameters(params); err != nil {
				return err
			}
			fmt.Printf("modulus    %d bits %s\n", params.Modulus.BitLen(),
				ui.Fingerprint.Sprint(crypto.FingerprintInt(params.Modulus)))
			fmt.Printf("generator  %s\n", params.Generator)
			if full {
				fmt.Printf("p          %s\n", crypto.EncodePublicValue(params.Modulus))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "print the modulus in hex")
	return cmd
}
