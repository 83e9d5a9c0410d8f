package interfaces

import domaintypes "dhlink/internal/domain/types"

// OutboxStore keeps a local log of envelopes we sent. It holds ciphertext only.
type OutboxStore interface {
	AppendOutbox(record domaintypes.OutboxRecord) error
	ListOutbox(limit int) ([]domaintypes.OutboxRecord, error)
}
