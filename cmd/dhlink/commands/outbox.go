package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dhlink/internal/ui"
)

// outbox: list envelopes recorded locally, oldest first. Only ciphertext is
// stored, so nothing here can be decrypted after the session ends.
func outboxCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "List sent envelopes recorded locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recs, err := wire.Outbox.ListOutbox(limit)
			if err != nil {
				return err
			}
			if len(recs) == 0 {
				fmt.Println(ui.Muted.Sprint("outbox is empty"))
				return nil
			}
			for _, r := range recs {
				ct := r.Envelope.Ciphertext
				if len(ct) > 24 {
					ct = ct[:24] + "…"
				}
				fmt.Printf("%s %s → %s key %s %s\n",
					ui.Muted.Sprint(r.ID),
					time.Unix(r.SentUTC, 0).Format(time.DateTime),
					ui.Peer.Sprint(r.To),
					ui.Fingerprint.Sprint(r.KeyFingerprint),
					ct)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n records (0 for all)")
	return cmd
}
