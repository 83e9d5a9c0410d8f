package types

// EncryptedEnvelope is the transport form of one encrypted message. Both fields
// are standard base64; IV decodes to 16 bytes and is never reused with a key.
type EncryptedEnvelope struct {
	Ciphertext string `json:"encrypted_content"`
	IV         string `json:"iv"`
}

// Message is an envelope queued on the relay.
type Message struct {
	ID        MessageID         `json:"id"`
	From      Username          `json:"from"`
	To        Username          `json:"to"`
	Envelope  EncryptedEnvelope `json:"envelope"`
	Timestamp int64             `json:"timestamp"`
}

// DecryptedMessage is what MessageService.Receive returns. Err is set when the
// envelope could not be decrypted under the current key; Plaintext is nil then.
type DecryptedMessage struct {
	ID        MessageID `json:"id"`
	From      Username  `json:"from"`
	Plaintext []byte    `json:"plaintext,omitempty"`
	Timestamp int64     `json:"timestamp"`
	Err       error     `json:"-"`
}

// OutboxRecord is the local log entry kept for every sent envelope.
type OutboxRecord struct {
	ID             MessageID         `json:"id"`
	To             Username          `json:"to"`
	Envelope       EncryptedEnvelope `json:"envelope"`
	KeyFingerprint Fingerprint       `json:"key_fingerprint"`
	SentUTC        int64             `json:"sent_utc"`
}
