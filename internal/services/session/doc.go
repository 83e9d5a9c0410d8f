// Package session runs the Diffie-Hellman handshake against a parameter
// source and a peer, and exposes encryption once a key is established.
//
// The Service owns one handshake.State behind a mutex. Network calls run
// with the mutex released, so State, Encrypt and Decrypt stay responsive
// while a step is in flight. Results that arrive after a concurrent Refresh
// or Reset are discarded.
package session
