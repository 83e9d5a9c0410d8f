package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dhlink/internal/domain"
	"dhlink/internal/ui"
)

// reveal <id>: the relay decrypts a message we sent with the key it currently
// holds for us. Only works until the next handshake replaces that key.
func revealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reveal <id>",
		Short: "Ask the relay to decrypt a message you sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return reveal(cmd.Context(), domain.MessageID(args[0]))
		},
	}
}

func reveal(ctx context.Context, id domain.MessageID) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	out, err := wire.Relay.RevealMessage(ctx, id)
	if err != nil {
		return err
	}
	when := time.Unix(out.Timestamp, 0).Format(time.DateTime)
	fmt.Printf("%s %s %s %s\n", ui.Muted.Sprint(out.MessageID), ui.Peer.Sprint(out.From),
		ui.Muted.Sprint(when), out.DecryptedContent)
	return nil
}
