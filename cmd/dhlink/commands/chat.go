package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dhlink/internal/domain"
	"dhlink/internal/services/message"
	"dhlink/internal/ui"
)

const chatHelp = `/refresh   discard the key and run the handshake again
/reveal ID ask the relay to decrypt message ID
/state     show the session state
/quit      end the session on both sides and leave`

// chat: interactive session. Each line is encrypted and sent; receipts are
// printed as they arrive.
func chatCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Send messages interactively over one session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := establish(ctx); err != nil {
				return err
			}
			fmt.Println(ui.Muted.Sprint("type /help for commands"))

			in := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !in.Scan() {
					return in.Err()
				}
				line := strings.TrimSpace(in.Text())
				if line == "" {
					continue
				}

				switch cmdName, arg, _ := strings.Cut(line, " "); cmdName {
				case "/quit", "/exit":
					wire.Sessions.Reset()
					endCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
					defer cancel()
					return wire.Relay.EndSession(endCtx)
				case "/help":
					fmt.Println(chatHelp)
					continue
				case "/state":
					fp, ok := wire.Sessions.KeyFingerprint()
					if !ok {
						fmt.Println(wire.Sessions.State())
					} else {
						fmt.Println(wire.Sessions.State(), ui.Fingerprint.Sprint(fp))
					}
					continue
				case "/refresh":
					s, cleanup := startSpinner("Refreshing session key")
					if err := wire.Sessions.Refresh(ctx); err != nil {
						fail(s, "Refresh failed: %v", err)
					} else {
						fp, _ := wire.Sessions.KeyFingerprint()
						succeed(s, "New key %s", ui.Fingerprint.Sprint(fp))
					}
					cleanup()
					continue
				case "/reveal":
					if err := reveal(ctx, domain.MessageID(strings.TrimSpace(arg))); err != nil {
						printError(err)
					}
					continue
				}

				id, err := wire.Messages.Send(ctx, domain.Username(to), []byte(line))
				if err != nil && !errors.Is(err, message.ErrOutbox) {
					printError(err)
					continue
				}
				fmt.Printf("%s %s\n", ui.Success.Sprint("✓"), ui.Muted.Sprint(id))
				if err := awaitMessages(ctx); err != nil {
					printError(err)
				}
			}
		},
	}
	cmd.Flags().StringVar(&to, "to", "relay", "recipient recorded with each message")
	return cmd
}
