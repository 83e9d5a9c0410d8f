package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pion/logging"

	"dhlink/internal/domain"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("relay %s %s: %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// HTTP is the relay client. It is safe for concurrent use.
type HTTP struct {
	Base string
	User domain.Username
	HTTP *http.Client
	log  logging.LeveledLogger
}

// NewHTTP returns a client for the relay at base acting as user.
func NewHTTP(base string, user domain.Username) *HTTP {
	return &HTTP{
		Base: strings.TrimRight(base, "/"),
		User: user,
		HTTP: http.DefaultClient,
	}
}

// WithLogger enables request logging under the "relay" scope.
func (c *HTTP) WithLogger(f logging.LoggerFactory) *HTTP {
	if f != nil {
		c.log = f.NewLogger("relay")
	}
	return c
}

// FetchParameters implements domain.ParameterSource.
func (c *HTTP) FetchParameters(ctx context.Context) (domain.DomainParameters, error) {
	var out ParamsResponse
	if err := c.do(ctx, http.MethodGet, "/handshake/params", nil, &out); err != nil {
		return domain.DomainParameters{}, err
	}
	return out.Parameters()
}

// ExchangePublicValue implements domain.PeerExchange.
func (c *HTTP) ExchangePublicValue(ctx context.Context, own *big.Int) (*big.Int, error) {
	var out ExchangeMessage
	if err := c.do(ctx, http.MethodPost, "/handshake/exchange", NewExchangeMessage(own), &out); err != nil {
		return nil, err
	}
	return out.Value()
}

// EndSession asks the relay to drop the key it holds for us.
func (c *HTTP) EndSession(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/handshake", nil, nil)
}

// SendEnvelope posts an envelope and returns the relay's message ID.
func (c *HTTP) SendEnvelope(ctx context.Context, env domain.EncryptedEnvelope) (domain.MessageID, error) {
	var out SendResponse
	if err := c.do(ctx, http.MethodPost, "/messages", env, &out); err != nil {
		return "", err
	}
	return out.MessageID, nil
}

// FetchMessages returns up to limit envelopes queued for us. A limit of zero
// or less fetches all.
func (c *HTTP) FetchMessages(ctx context.Context, limit int) ([]domain.Message, error) {
	path := "/messages"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var dtos []MessageDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]domain.Message, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.Message())
	}
	return out, nil
}

// AckMessages drops the first count queued envelopes.
func (c *HTTP) AckMessages(ctx context.Context, count int) error {
	return c.do(ctx, http.MethodPost, "/messages/ack", AckRequest{Count: count}, nil)
}

// RevealMessage asks the relay to decrypt a message we sent, using the key it
// holds for us.
func (c *HTTP) RevealMessage(ctx context.Context, id domain.MessageID) (DecryptResponse, error) {
	var out DecryptResponse
	path := "/messages/" + url.PathEscape(string(id)) + "/decrypt"
	if err := c.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return DecryptResponse{}, err
	}
	return out, nil
}

func (c *HTTP) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return err
		}
		body = buf
	}
	u := c.Base + path
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.User != "" {
		req.Header.Set(UserHeader, string(c.User))
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if c.log != nil {
		c.log.Debugf("%s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start))
	}

	limited := io.LimitReader(resp.Body, maxResponseBytes)
	if resp.StatusCode/100 != 2 {
		se := &StatusError{Method: method, URL: u, Code: resp.StatusCode}
		var er ErrorResponse
		if json.NewDecoder(limited).Decode(&er) == nil {
			se.Detail = er.Detail
		}
		return se
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(limited).Decode(out); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrMalformed, method, path, err)
	}
	return nil
}

var _ domain.RelayClient = (*HTTP)(nil)
