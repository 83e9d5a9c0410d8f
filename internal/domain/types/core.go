package types

// Username identifies the local party to the relay.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// Fingerprint is a short identifier for public values presented to users.
type Fingerprint string

// String returns the string form of the fingerprint.
func (f Fingerprint) String() string { return string(f) }

// MessageID identifies a message held by the relay.
type MessageID string

// String returns the string form of the message identifier.
func (id MessageID) String() string { return string(id) }
