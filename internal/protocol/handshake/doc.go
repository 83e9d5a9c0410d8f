// Package handshake holds the finite-field Diffie-Hellman exchange as a set
// of explicit states and pure transitions between them.
//
// A session moves Uninitialized -> ParamsReceived -> KeyPairGenerated ->
// Ready. Each state carries exactly the material valid in that phase, so a
// key cannot be used before the exchange completes:
//
//   - ParamsReceived holds the agreed group and, after a failed exchange,
//     the key pair retained for the next attempt.
//   - KeyPairGenerated holds the group and our key pair.
//   - Ready holds the derived AES-256 key and exposes Encrypt and Decrypt.
//
// Nothing here performs I/O or locking; services/session sequences the
// transitions against the network.
package handshake
