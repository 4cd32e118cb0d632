package httpc

import (
	"time"

	"github.com/xraph/httpc/connector"
	"github.com/xraph/httpc/internal/obs/log"
	"github.com/xraph/httpc/internal/obs/metrics"
	"github.com/xraph/httpc/request"
	"github.com/xraph/httpc/timed"
	"github.com/xraph/httpc/val"
)

// Config is the set of options a Client is generic over: which
// Connector and Timer it dials through, how it auto-manages
// compression/timeouts/redirects, and what it reports to.
type Config struct {
	// Decompress controls whether Accept-Encoding is opportunistically
	// added — only when Range is already present.
	// Defaults to true via DefaultConfig/New; a Config{} literal passed
	// to NewWithConfig gets the zero value (false) like any other bool.
	Decompress bool `validate:"-"`

	// Timeout bounds send/redirect_send. nil means unset, and withDefaults
	// fills it with DefaultConfig's 30s; a non-nil zero explicitly disables
	// the deadline, which a bare time.Duration field couldn't distinguish
	// from "unset".
	Timeout *time.Duration `validate:"omitnil,gte=0"`

	// MaxRedirectNum is the hop budget the redirect driver starts with.
	MaxRedirectNum int `validate:"gte=0"`

	// ByteLimit is filled from DefaultConfig and validated, but the Client
	// does not pass it on: the Response body sinks take their limit as an
	// argument and do not read this field.
	ByteLimit int `validate:"gte=0"`

	// DefaultHeaders, when set, is invoked on every built request before
	// dispatch (e.g. to inject User-Agent, Host).
	DefaultHeaders func(*request.Request)

	Connector connector.Connector
	Timer     timed.Timer
	Collector metrics.Collector
	Logger    log.Logger
}

// DefaultConfig returns the Config a zero-value Client effectively runs
// with: decompression on, a 30s timeout, an 8-hop redirect budget, a
// 2 MiB byte limit, an HTTPS connector, the system timer, and no-op
// collector/logger.
func DefaultConfig() Config {
	timeout := 30 * time.Second

	return Config{
		Decompress:     true,
		Timeout:        &timeout,
		MaxRedirectNum: 8,
		ByteLimit:      2 * 1024 * 1024,
		Connector:      connector.NewHTTPS(),
		Timer:          timed.SystemTimer{},
		Collector:      metrics.Noop(),
		Logger:         log.Noop(),
	}
}

// withDefaults fills any zero-valued field from DefaultConfig, then
// validates the result.
func (c Config) withDefaults() (Config, error) {
	defaults := DefaultConfig()

	if c.Timeout == nil {
		c.Timeout = defaults.Timeout
	}

	if c.MaxRedirectNum == 0 {
		c.MaxRedirectNum = defaults.MaxRedirectNum
	}

	if c.ByteLimit == 0 {
		c.ByteLimit = defaults.ByteLimit
	}

	if c.Connector == nil {
		c.Connector = defaults.Connector
	}

	if c.Timer == nil {
		c.Timer = defaults.Timer
	}

	if c.Collector == nil {
		c.Collector = defaults.Collector
	}

	if c.Logger == nil {
		c.Logger = defaults.Logger
	}

	if verr := val.Validate(c); verr.HasErrors() {
		return Config{}, verr
	}

	return c, nil
}
