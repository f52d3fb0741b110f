package storefront

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Identity is the verified identity the external provider hands back for an
// exchange session. The provider also mints the session token we persist.
type Identity interface {
	Email() string
	Name() string
	Picture() string
	SessionToken() string
}

// IdentityVerifier exchanges an external session identifier for a verified
// identity. Implemented by provider/emergent; mocked in tests.
type IdentityVerifier interface {
	VerifySession(ctx context.Context, sessionID string) (Identity, error)
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] STORE "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] STORE "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] STORE "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
