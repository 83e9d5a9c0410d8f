// Package responder is the server side of the dhlink exchange.
//
// It serves a fixed Diffie-Hellman group, answers each client's public value
// with one of its own (computed with github.com/monnand/dhkx), and keeps the
// derived AES key per user in memory. Clients post encrypted messages; the
// responder decrypts each to confirm receipt and queues an encrypted receipt
// back to the sender. A stored message can later be decrypted on request, and
// a client can ask for its key to be dropped.
//
// All state is held in memory and lost on process exit.
package responder
