package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dhlink/internal/domain"
	"dhlink/internal/services/message"
	"dhlink/internal/ui"
)

// establish runs the handshake behind a spinner.
func establish(ctx context.Context) error {
	s, cleanup := startSpinner("Establishing session with " + cfg.RelayURL)
	defer cleanup()

	start := time.Now()
	if err := wire.Sessions.Establish(ctx); err != nil {
		fail(s, "Handshake failed")
		return err
	}
	fp, _ := wire.Sessions.KeyFingerprint()
	succeed(s, "Session ready %s %s", ui.Fingerprint.Sprint(fp),
		ui.Muted.Sprint(time.Since(start).Round(time.Millisecond)))
	return nil
}

// awaitMessages polls the relay until at least one message arrives or the
// configured timeout passes, and prints what it received.
func awaitMessages(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()
	for {
		msgs, err := wire.Messages.Receive(ctx, 0)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				fmt.Println(ui.Warning.Sprint("!") + " No reply yet")
				return nil
			}
			return err
		}
		if len(msgs) > 0 {
			printMessages(msgs)
			return nil
		}
		select {
		case <-ctx.Done():
			fmt.Println(ui.Warning.Sprint("!") + " No reply yet")
			return nil
		case <-tick.C:
		}
	}
}

func printMessages(msgs []domain.DecryptedMessage) {
	for _, m := range msgs {
		when := time.Unix(m.Timestamp, 0).Format(time.TimeOnly)
		if m.Err != nil {
			reason := "unreadable"
			if !errors.Is(m.Err, message.ErrUnreadable) {
				reason = m.Err.Error()
			}
			fmt.Printf("%s %s %s %s\n", ui.Warning.Sprint("!"), ui.Peer.Sprint(m.From),
				ui.Muted.Sprint(m.ID), reason)
			continue
		}
		fmt.Printf("%s %s %s %s\n", ui.Info.Sprint("←"), ui.Peer.Sprint(m.From),
			ui.Muted.Sprint(when), m.Plaintext)
	}
}
