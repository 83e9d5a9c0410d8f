package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"dhlink/internal/crypto"
	"dhlink/internal/ui"
)

// handshake: run the key exchange and report the resulting session.
func handshakeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "handshake",
		Short: "Establish a session key with the relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := establish(cmd.Context()); err != nil {
				return err
			}
			params, _ := wire.Sessions.Parameters()
			fmt.Printf("user       %s\n", ui.Peer.Sprint(cfg.User))
			fmt.Printf("group      %d bits %s\n", params.Modulus.BitLen(),
				ui.Fingerprint.Sprint(crypto.FingerprintInt(params.Modulus)))
			fmt.Printf("kdf        %s\n", cfg.KDF)
			fmt.Printf("state      %s\n", wire.Sessions.State())
			return nil
		},
	}
}
