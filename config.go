package constellation

import (
	"time"
)

// DefaultTimeout applies when NetworkConfig.Timeout is unset.
const DefaultTimeout = 30 * time.Second

// NetworkConfig holds the endpoints for connecting to L1 nodes. A client
// captures the relevant URL and timeout at construction; the config is
// never read again afterwards.
type NetworkConfig struct {
	// L1URL is the Currency L1 endpoint (e.g. "http://localhost:9010")
	L1URL string
	// DataL1URL is the Data L1 endpoint (e.g. "http://localhost:8080")
	DataL1URL string
	// Timeout is the default request timeout (default: 30s)
	Timeout time.Duration
}

// EffectiveTimeout resolves the configured timeout against the default.
func (c NetworkConfig) EffectiveTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}

// RequestOptions overrides transport behaviour for a single call. The zero
// value changes nothing.
type RequestOptions struct {
	// Timeout replaces the client-level timeout for this call
	Timeout time.Duration
	// Headers are set on the request after the defaults, so they can
	// override Content-Type and Accept
	Headers map[string]string
}
