package domain

import (
	interfaces "dhlink/internal/domain/interfaces"
	types "dhlink/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username          = types.Username
	Fingerprint       = types.Fingerprint
	MessageID         = types.MessageID
	DomainParameters  = types.DomainParameters
	KeyPair           = types.KeyPair
	SharedSecret      = types.SharedSecret
	SymmetricKey      = types.SymmetricKey
	EncryptedEnvelope = types.EncryptedEnvelope
	Message           = types.Message
	DecryptedMessage  = types.DecryptedMessage
	OutboxRecord      = types.OutboxRecord
	SessionState      = types.SessionState
)

// Session states.
const (
	StateUninitialized    = types.StateUninitialized
	StateParamsReceived   = types.StateParamsReceived
	StateKeyPairGenerated = types.StateKeyPairGenerated
	StateReady            = types.StateReady
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	ParameterSource  = interfaces.ParameterSource
	PeerExchange     = interfaces.PeerExchange
	MessageTransport = interfaces.MessageTransport
	RelayClient      = interfaces.RelayClient
	Cipher           = interfaces.Cipher
	SessionService   = interfaces.SessionService
	MessageService   = interfaces.MessageService
	OutboxStore      = interfaces.OutboxStore
)

// Constructors for the types whose fields are unexported.
var (
	NewKeyPair      = types.NewKeyPair
	NewSharedSecret = types.NewSharedSecret
)
