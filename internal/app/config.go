package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pion/logging"

	"dhlink/internal/crypto"
	"dhlink/internal/domain"
	"dhlink/internal/services/session"
)

// ConfigFile is the name of the optional TOML config inside Home.
const ConfigFile = "config.toml"

// DefaultRelayURL is used when neither the file nor a flag names a relay.
const DefaultRelayURL = "http://127.0.0.1:8080"

// ErrUnknownLogLevel is returned for a log level name we do not recognise.
var ErrUnknownLogLevel = errors.New("app: unknown log level")

// Config holds runtime wiring options for building the app.
type Config struct {
	Home     string          // config directory, e.g. $HOME/.dhlink
	RelayURL string          // relay base URL, e.g. http://127.0.0.1:8080
	User     domain.Username // name we act as on the relay
	Timeout  time.Duration   // bound on each network step
	KDF      string          // "sha256" or "hkdf-sha256"
	LogLevel string          // off, error, warn, info, debug, trace
	HTTP     *http.Client    // optional; defaults to http.DefaultClient

	// LogWriter receives log output. If nil, os.Stderr is used.
	LogWriter io.Writer
}

// fileConfig is the on-disk form of Config.
type fileConfig struct {
	Relay    string `toml:"relay"`
	User     string `toml:"user"`
	Timeout  string `toml:"timeout"`
	KDF      string `toml:"kdf"`
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the built-in defaults rooted at home.
func DefaultConfig(home string) Config {
	user := os.Getenv("USER")
	if user == "" {
		user = "anonymous"
	}
	return Config{
		Home:     home,
		RelayURL: DefaultRelayURL,
		User:     domain.Username(user),
		Timeout:  session.DefaultTimeout,
		KDF:      crypto.KDFSHA256,
		LogLevel: "off",
	}
}

// DefaultHome returns $HOME/.dhlink.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".dhlink"), nil
}

// LoadConfigFile overlays the values set in the TOML file at path onto cfg.
// A missing file leaves cfg unchanged.
func LoadConfigFile(path string, cfg *Config) error {
	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config %s: %w", path, err)
	}
	if fc.Relay != "" {
		cfg.RelayURL = fc.Relay
	}
	if fc.User != "" {
		cfg.User = domain.Username(fc.User)
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return fmt.Errorf("config %s: timeout: %w", path, err)
		}
		cfg.Timeout = d
	}
	if fc.KDF != "" {
		cfg.KDF = fc.KDF
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return nil
}

// SaveConfigFile writes cfg to path as TOML, creating parent directories.
func SaveConfigFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(fileConfig{
		Relay:    cfg.RelayURL,
		User:     string(cfg.User),
		Timeout:  cfg.Timeout.String(),
		KDF:      cfg.KDF,
		LogLevel: cfg.LogLevel,
	})
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	if c.RelayURL == "" {
		return errors.New("app: relay URL is empty")
	}
	if c.User == "" {
		return errors.New("app: user is empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("app: timeout must be positive, got %s", c.Timeout)
	}
	if _, err := crypto.KDFByName(c.KDF); err != nil {
		return err
	}
	_, err := ParseLogLevel(c.LogLevel)
	return err
}

// ParseLogLevel maps a level name to a pion log level. "off" and the empty
// string map to LogLevelDisabled.
func ParseLogLevel(name string) (logging.LogLevel, error) {
	switch strings.ToLower(name) {
	case "", "off", "disabled":
		return logging.LogLevelDisabled, nil
	case "error":
		return logging.LogLevelError, nil
	case "warn", "warning":
		return logging.LogLevelWarn, nil
	case "info":
		return logging.LogLevelInfo, nil
	case "debug":
		return logging.LogLevelDebug, nil
	case "trace":
		return logging.LogLevelTrace, nil
	default:
		return logging.LogLevelDisabled, fmt.Errorf("%w: %q", ErrUnknownLogLevel, name)
	}
}

// NewLoggerFactory returns a factory logging at level to w, or nil when the
// level is off.
func NewLoggerFactory(level string, w io.Writer) (logging.LoggerFactory, error) {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return nil, err
	}
	if lvl == logging.LogLevelDisabled {
		return nil, nil
	}
	if w == nil {
		w = os.Stderr
	}
	f := logging.NewDefaultLoggerFactory()
	f.Writer = w
	f.DefaultLogLevel = lvl
	return f, nil
}
