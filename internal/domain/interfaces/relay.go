package interfaces

import (
	"context"
	"math/big"

	domaintypes "dhlink/internal/domain/types"
)

// ParameterSource supplies the domain parameters for a session.
type ParameterSource interface {
	FetchParameters(ctx context.Context) (domaintypes.DomainParameters, error)
}

// PeerExchange accepts our public value and returns the peer's counterpart,
// computed under the same domain parameters.
type PeerExchange interface {
	ExchangePublicValue(ctx context.Context, own *big.Int) (*big.Int, error)
}

// MessageTransport delivers encrypted envelopes and returns the ones queued
// for us. It never sees keys or plaintext.
type MessageTransport interface {
	SendEnvelope(
		ctx context.Context,
		envelope domaintypes.EncryptedEnvelope,
	) (domaintypes.MessageID, error)
	FetchMessages(ctx context.Context, limit int) ([]domaintypes.Message, error)
	AckMessages(ctx context.Context, count int) error
}

// RelayClient is the full surface of the relay used by the CLI.
type RelayClient interface {
	ParameterSource
	PeerExchange
	MessageTransport
}
