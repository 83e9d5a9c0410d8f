package session

import "errors"

var (
	// ErrParametersUnavailable is returned when the parameter source cannot
	// be reached, times out or serves unusable parameters. The session stays
	// uninitialized and the fetch may be retried.
	ErrParametersUnavailable = errors.New("session: domain parameters unavailable")

	// ErrHandshakeFailed is returned when the peer exchange fails. The key
	// pair is retained for the next attempt unless the caller abandoned the
	// exchange.
	ErrHandshakeFailed = errors.New("session: handshake failed")

	// ErrSessionNotEstablished is returned by Encrypt and Decrypt outside the
	// ready state.
	ErrSessionNotEstablished = errors.New("session: not established")

	// ErrWrongState is returned when a step is requested from a state that
	// cannot take it.
	ErrWrongState = errors.New("session: step not valid in current state")

	// ErrStepInProgress is returned when another handshake step is already
	// waiting on the network.
	ErrStepInProgress = errors.New("session: handshake step already in progress")

	// ErrSuperseded is returned when the session was refreshed or reset while
	// a step was waiting; its result has been discarded.
	ErrSuperseded = errors.New("session: step superseded by refresh or reset")
)
