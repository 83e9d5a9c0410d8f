package app

import (
	"net/http"

	"github.com/pion/logging"

	"dhlink/internal/crypto"
	"dhlink/internal/domain"
	"dhlink/internal/relay"
	messagesvc "dhlink/internal/services/message"
	sessionsvc "dhlink/internal/services/session"
	"dhlink/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Relay    *relay.HTTP
	Sessions *sessionsvc.Service
	Messages domain.MessageService
	Outbox   domain.OutboxStore
	Logger   logging.LoggerFactory
	HTTP     *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kdf, err := crypto.KDFByName(cfg.KDF)
	if err != nil {
		return nil, err
	}
	lf, err := NewLoggerFactory(cfg.LogLevel, cfg.LogWriter)
	if err != nil {
		return nil, err
	}

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	rc := relay.NewHTTP(cfg.RelayURL, cfg.User).WithLogger(lf)
	rc.HTTP = httpClient

	outbox := store.NewOutboxFileStore(cfg.Home)

	sessions := sessionsvc.New(sessionsvc.Config{
		Params:        rc,
		Peer:          rc,
		KDF:           kdf,
		Timeout:       cfg.Timeout,
		LoggerFactory: lf,
	})
	messages := messagesvc.New(messagesvc.Config{
		Session:       sessions,
		Transport:     rc,
		Outbox:        outbox,
		LoggerFactory: lf,
	})

	return &Wire{
		Relay:    rc,
		Sessions: sessions,
		Messages: messages,
		Outbox:   outbox,
		Logger:   lf,
		HTTP:     httpClient,
	}, nil
}
