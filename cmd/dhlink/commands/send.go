package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dhlink/internal/domain"
	"dhlink/internal/services/message"
	"dhlink/internal/ui"
)

// send <message>: establish a session, encrypt and send, then wait for the
// relay's receipt.
func sendCmd() *cobra.Command {
	var (
		to   string
		wait bool
	)
	cmd := &cobra.Command{
		Use:   "send <message>",
		Short: "Encrypt and send a message through the relay",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := establish(ctx); err != nil {
				return err
			}

			text := strings.Join(args, " ")
			id, err := wire.Messages.Send(ctx, domain.Username(to), []byte(text))
			switch {
			case errors.Is(err, message.ErrOutbox):
				fmt.Println(ui.Warning.Sprint("!") + " " + err.Error())
			case err != nil:
				return err
			}
			fmt.Printf("%s sent %s\n", ui.Success.Sprint("✓"), ui.Muted.Sprint(id))

			if !wait {
				return nil
			}
			return awaitMessages(ctx)
		},
	}
	cmd.Flags().StringVar(&to, "to", "relay", "recipient recorded with the message")
	cmd.Flags().BoolVar(&wait, "wait", true, "wait for the relay's receipt")
	return cmd
}
