// Package store provides file-based persistence for dhlink's local data.
//
// Only the outbox is persisted: a JSON log of envelopes we sent, kept for
// reference. Key material (private exponents, shared secrets, derived keys)
// is never written to disk. Writes go through a temp file and an atomic
// rename, and the store serialises access with a mutex.
package store
