package relay

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"dhlink/internal/crypto"
	"dhlink/internal/domain"
)

// UserHeader names the caller on every request. The relay keys sessions and
// mailboxes by it.
const UserHeader = "X-Dhlink-User"

// ErrMalformed is returned when a relay payload cannot be parsed.
var ErrMalformed = errors.New("relay: malformed payload")

// Integer is a wire integer. It decodes from a JSON number (decimal) or a
// JSON string (hex with or without 0x, or decimal digits).
type Integer struct {
	text   string
	number bool
}

// HexInteger encodes v as a "0x"-prefixed hex string.
func HexInteger(v *big.Int) Integer {
	return Integer{text: crypto.EncodePublicValue(v)}
}

// NumberInteger encodes v as a bare JSON number.
func NumberInteger(v *big.Int) Integer {
	return Integer{text: v.Text(10), number: true}
}

// MarshalJSON implements json.Marshaler.
func (i Integer) MarshalJSON() ([]byte, error) {
	if i.number {
		return []byte(i.text), nil
	}
	return json.Marshal(i.text)
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Integer) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*i = Integer{text: s}
		return nil
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: integer %s", ErrMalformed, truncate(b))
		}
	}
	*i = Integer{text: string(b), number: true}
	return nil
}

// Int parses the integer.
func (i Integer) Int() (*big.Int, error) {
	if i.number {
		v, ok := new(big.Int).SetString(i.text, 10)
		if !ok {
			return nil, fmt.Errorf("%w: integer %q", ErrMalformed, i.text)
		}
		return v, nil
	}
	return crypto.ParseInteger(i.text)
}

// ParamsResponse is the body of GET /handshake/params.
type ParamsResponse struct {
	P Integer `json:"p"`
	G Integer `json:"g"`
}

// NewParamsResponse encodes params with p as hex and g as a number.
func NewParamsResponse(params domain.DomainParameters) ParamsResponse {
	return ParamsResponse{
		P: HexInteger(params.Modulus),
		G: NumberInteger(params.Generator),
	}
}

// Parameters converts the response to domain parameters. It checks encoding
// only; group validation is the session's job.
func (r ParamsResponse) Parameters() (domain.DomainParameters, error) {
	p, err := r.P.Int()
	if err != nil {
		return domain.DomainParameters{}, fmt.Errorf("%w: p: %w", ErrMalformed, err)
	}
	g, err := r.G.Int()
	if err != nil {
		return domain.DomainParameters{}, fmt.Errorf("%w: g: %w", ErrMalformed, err)
	}
	return domain.DomainParameters{Modulus: p, Generator: g}, nil
}

// ExchangeMessage is both the request and the response of
// POST /handshake/exchange.
type ExchangeMessage struct {
	PublicKey string `json:"public_key"`
}

// NewExchangeMessage encodes a public value.
func NewExchangeMessage(v *big.Int) ExchangeMessage {
	return ExchangeMessage{PublicKey: crypto.EncodePublicValue(v)}
}

// Value parses the public value.
func (m ExchangeMessage) Value() (*big.Int, error) {
	v, err := crypto.ParsePublicValue(m.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: public_key: %w", ErrMalformed, err)
	}
	return v, nil
}

// SendResponse is the body returned by POST /messages.
type SendResponse struct {
	MessageID domain.MessageID `json:"message_id"`
}

// MessageDTO is one entry of GET /messages.
type MessageDTO struct {
	ID               domain.MessageID `json:"id"`
	From             domain.Username  `json:"from"`
	To               domain.Username  `json:"to"`
	EncryptedContent string           `json:"encrypted_content"`
	IV               string           `json:"iv"`
	Timestamp        int64            `json:"timestamp"`
}

// NewMessageDTO flattens a domain message.
func NewMessageDTO(m domain.Message) MessageDTO {
	return MessageDTO{
		ID:               m.ID,
		From:             m.From,
		To:               m.To,
		EncryptedContent: m.Envelope.Ciphertext,
		IV:               m.Envelope.IV,
		Timestamp:        m.Timestamp,
	}
}

// Message converts back to the domain form.
func (d MessageDTO) Message() domain.Message {
	return domain.Message{
		ID:   d.ID,
		From: d.From,
		To:   d.To,
		Envelope: domain.EncryptedEnvelope{
			Ciphertext: d.EncryptedContent,
			IV:         d.IV,
		},
		Timestamp: d.Timestamp,
	}
}

// AckRequest is the body of POST /messages/ack.
type AckRequest struct {
	Count int `json:"count"`
}

// DecryptResponse is the body of POST /messages/{id}/decrypt.
type DecryptResponse struct {
	MessageID        domain.MessageID `json:"message_id"`
	From             domain.Username  `json:"from"`
	DecryptedContent string           `json:"decrypted_content"`
	Timestamp        int64            `json:"timestamp"`
}

// ErrorResponse carries the reason for a non-2xx status.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func truncate(b []byte) string {
	const limit = 24
	if len(b) <= limit {
		return string(b)
	}
	return string(b[:limit]) + "..."
}
