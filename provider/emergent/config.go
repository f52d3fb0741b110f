package emergent

import "time"

// DefaultBaseURL is the hosted session-data endpoint.
const DefaultBaseURL = "https://demobackend.emergentagent.com/auth/v1/env/oauth/session-data"

// DefaultTimeout bounds the verification call. There is no retry; a slow
// provider fails the login.
const DefaultTimeout = 10 * time.Second

// Config holds the Emergent provider settings.
type Config struct {
	// BaseURL is the session-data endpoint. Default: DefaultBaseURL.
	BaseURL string

	// Timeout bounds the HTTP exchange. Default: DefaultTimeout.
	Timeout time.Duration
}

// DefaultConfig returns a Config with the hosted endpoint and timeout.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return DefaultBaseURL
}

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}
