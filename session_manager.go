package storefront

import (
	"context"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// SessionTTL is how long a freshly created session lives. The original
// storefront pinned this at seven days; there is no per-session override.
const SessionTTL = 7 * 24 * time.Hour

// SessionManager owns the session lifecycle: login (verify with the identity
// provider, provision the user, rotate sessions), resolve (token to user with
// lazy expiry), and logout.
type SessionManager struct {
	repo     RepositoryManager
	verifier IdentityVerifier
	ttl      time.Duration
	logger   Logger
	now      func() time.Time
}

type SessionManagerOption func(*SessionManager)

func NewSessionManager(repo RepositoryManager, verifier IdentityVerifier, opts ...SessionManagerOption) *SessionManager {
	m := &SessionManager{
		repo:     repo,
		verifier: verifier,
		ttl:      SessionTTL,
		logger:   defLogger{},
		now:      time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return m
}

func WithSessionTTL(ttl time.Duration) SessionManagerOption {
	return func(m *SessionManager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

func WithSessionLogger(logger Logger) SessionManagerOption {
	return func(m *SessionManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSessionClock overrides the time source. Tests use it to step past
// session expiry without sleeping.
func WithSessionClock(now func() time.Time) SessionManagerOption {
	return func(m *SessionManager) {
		if now != nil {
			m.now = now
		}
	}
}

// TTL returns the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Resolve maps a session token to its user. An unknown token, an expired
// session, or a session whose user no longer exists all resolve to
// ErrNotAuthenticated. Expired rows are deleted as a side effect of the
// check; there is no background sweep.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	session, err := m.repo.Sessions().Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(m.now()) {
		if err := m.repo.Sessions().Delete(ctx, token); err != nil {
			m.logger.Error("failed to delete expired session: %v", err)
		}
		return nil, ErrNotAuthenticated
	}

	user, err := m.repo.Users().GetByUserID(ctx, session.UserID)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}

	return user, nil
}

// Login exchanges the external session identifier for a verified identity,
// provisions the user on first sight (first user ever becomes owner), deletes
// every prior session of that user, and stores a new session under the
// provider-issued token.
func (m *SessionManager) Login(ctx context.Context, externalSessionID string) (*User, *UserSession, error) {
	if externalSessionID == "" {
		return nil, nil, ErrSessionIDRequired
	}

	identity, err := m.verifier.VerifySession(ctx, externalSessionID)
	if err != nil {
		return nil, nil, WrapIdentityProviderError(err)
	}

	var user *User
	var session *UserSession

	err = m.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record := &User{
			Email:   identity.Email(),
			Name:    identity.Name(),
			Picture: identity.Picture(),
		}

		var err error
		user, _, err = m.repo.Users().GetOrProvisionTx(ctx, tx, record)
		if err != nil {
			return err
		}

		if err := m.repo.Sessions().DeleteForUserTx(ctx, tx, user.ID); err != nil {
			return err
		}

		session = &UserSession{
			Token:     identity.SessionToken(),
			UserID:    user.ID,
			ExpiresAt: m.now().Add(m.ttl),
		}

		return m.repo.Sessions().CreateTx(ctx, tx, session)
	})
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

// Logout deletes the session row for the token. Unknown or empty tokens are
// not errors; logout is idempotent.
func (m *SessionManager) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.repo.Sessions().Delete(ctx, token)
}
