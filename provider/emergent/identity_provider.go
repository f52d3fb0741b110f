package emergent

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	storefront "github.com/goliatone/go-storefront"
)

// sessionHeader carries the external session identifier on the verify call.
const sessionHeader = "X-Session-ID"

// sessionData is the provider's response payload.
type sessionData struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// Identity is the verified identity returned by the provider.
type Identity struct {
	data sessionData
}

var _ storefront.Identity = (*Identity)(nil)

func (i *Identity) Email() string        { return i.data.Email }
func (i *Identity) Name() string         { return i.data.Name }
func (i *Identity) Picture() string      { return i.data.Picture }
func (i *Identity) SessionToken() string { return i.data.SessionToken }

// IdentityProvider implements storefront.IdentityVerifier against the
// Emergent session-data endpoint.
type IdentityProvider struct {
	config Config
	client *resty.Client
}

var _ storefront.IdentityVerifier = (*IdentityProvider)(nil)

// NewIdentityProvider creates the provider client with the configured
// endpoint and timeout.
func NewIdentityProvider(cfg Config) *IdentityProvider {
	client := resty.New().
		SetBaseURL(cfg.baseURL()).
		SetTimeout(cfg.timeout())

	return &IdentityProvider{
		config: cfg,
		client: client,
	}
}

// VerifySession exchanges the external session identifier for the verified
// identity. Any transport failure, timeout, or non-2xx response fails the
// exchange; the caller decides how that surfaces to the client.
func (p *IdentityProvider) VerifySession(ctx context.Context, sessionID string) (storefront.Identity, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("emergent: session ID is required")
	}

	var data sessionData
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader(sessionHeader, sessionID).
		SetResult(&data).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("emergent: session verification failed: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("emergent: session verification failed: status %d: %s",
			resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	if data.Email == "" || data.SessionToken == "" {
		return nil, fmt.Errorf("emergent: session data is incomplete")
	}

	return &Identity{data: data}, nil
}
