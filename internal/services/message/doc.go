// Package message sends and receives encrypted messages.
//
// It encrypts with the current session key, exchanges envelopes via the
// MessageTransport and records what it sent in the outbox.
package message
