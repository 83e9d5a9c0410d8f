package types

// SessionState is the externally visible phase of a session orchestrator.
type SessionState int

const (
	StateUninitialized SessionState = iota
	StateParamsReceived
	StateKeyPairGenerated
	StateReady
)

// StateSecretEstablished is the same phase as StateReady.
const StateSecretEstablished = StateReady

func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateParamsReceived:
		return "params-received"
	case StateKeyPairGenerated:
		return "keypair-generated"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}
