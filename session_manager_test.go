package storefront_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storefront "github.com/goliatone/go-storefront"
)

func TestLoginProvisionsFirstUserAsOwner(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	verifier := &fakeVerifier{identity: testIdentity{
		email:   "first@example.com",
		name:    "First User",
		picture: "https://img.example.com/first.png",
		token:   "tok-first",
	}}

	manager := storefront.NewSessionManager(repo, verifier)

	user, session, err := manager.Login(ctx, "ext-session-1")
	require.NoError(t, err)

	assert.Equal(t, "first@example.com", user.Email)
	assert.True(t, user.IsAdmin)
	assert.True(t, user.IsOwner)
	assert.Equal(t, "tok-first", session.Token)
	assert.Equal(t, user.ID, session.UserID)
	assert.Equal(t, []string{"ext-session-1"}, verifier.calls)

	verifier.identity = testIdentity{
		email: "second@example.com",
		name:  "Second User",
		token: "tok-second",
	}

	second, _, err := manager.Login(ctx, "ext-session-2")
	require.NoError(t, err)

	assert.False(t, second.IsAdmin)
	assert.False(t, second.IsOwner)
}

func TestLoginReusesExistingUser(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	verifier := &fakeVerifier{identity: testIdentity{
		email: "repeat@example.com",
		name:  "Repeat",
		token: "tok-a",
	}}

	manager := storefront.NewSessionManager(repo, verifier)

	first, _, err := manager.Login(ctx, "ext-1")
	require.NoError(t, err)

	verifier.identity = testIdentity{
		email: "repeat@example.com",
		name:  "Repeat",
		token: "tok-b",
	}

	again, session, err := manager.Login(ctx, "ext-2")
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "tok-b", session.Token)
}

func TestLoginRotatesSessions(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	verifier := &fakeVerifier{identity: testIdentity{
		email: "rotate@example.com",
		name:  "Rotate",
		token: "tok-old",
	}}

	manager := storefront.NewSessionManager(repo, verifier)

	_, _, err := manager.Login(ctx, "ext-1")
	require.NoError(t, err)

	verifier.identity = testIdentity{
		email: "rotate@example.com",
		name:  "Rotate",
		token: "tok-new",
	}

	_, _, err = manager.Login(ctx, "ext-2")
	require.NoError(t, err)

	_, err = manager.Resolve(ctx, "tok-old")
	assert.ErrorIs(t, err, storefront.ErrNotAuthenticated)

	user, err := manager.Resolve(ctx, "tok-new")
	require.NoError(t, err)
	assert.Equal(t, "rotate@example.com", user.Email)
}

func TestLoginRequiresSessionID(t *testing.T) {
	repo := newTestRepo(t)
	verifier := &fakeVerifier{}
	manager := storefront.NewSessionManager(repo, verifier)

	_, _, err := manager.Login(context.Background(), "")
	assert.ErrorIs(t, err, storefront.ErrSessionIDRequired)
	assert.Empty(t, verifier.calls)
}

func TestLoginSurfacesVerifierFailure(t *testing.T) {
	repo := newTestRepo(t)
	upstream := errors.New("upstream timeout")
	verifier := &fakeVerifier{err: upstream}
	manager := storefront.NewSessionManager(repo, verifier)

	_, _, err := manager.Login(context.Background(), "ext-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)

	var richErr *goerrors.Error
	require.ErrorAs(t, err, &richErr)
	assert.Equal(t, storefront.TextCodeIdentityVerifyFail, richErr.TextCode)
}

func TestResolveDeletesExpiredSession(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	verifier := &fakeVerifier{identity: testIdentity{
		email: "expiry@example.com",
		name:  "Expiry",
		token: "tok-exp",
	}}

	current := time.Now()
	manager := storefront.NewSessionManager(repo, verifier,
		storefront.WithSessionClock(func() time.Time { return current }),
	)

	_, session, err := manager.Login(ctx, "ext-1")
	require.NoError(t, err)

	user, err := manager.Resolve(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "expiry@example.com", user.Email)

	current = current.Add(manager.TTL() + time.Minute)

	_, err = manager.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, storefront.ErrNotAuthenticated)

	// the expired row is gone, so the same token stays dead even if the
	// clock rolls back
	current = current.Add(-manager.TTL())
	_, err = manager.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, storefront.ErrNotAuthenticated)
}

func TestResolveUnknownToken(t *testing.T) {
	repo := newTestRepo(t)
	manager := storefront.NewSessionManager(repo, &fakeVerifier{})

	_, err := manager.Resolve(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, storefront.ErrNotAuthenticated)

	_, err = manager.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, storefront.ErrNotAuthenticated)
}

func TestLogoutIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	verifier := &fakeVerifier{identity: testIdentity{
		email: "logout@example.com",
		name:  "Logout",
		token: "tok-out",
	}}

	manager := storefront.NewSessionManager(repo, verifier)

	_, session, err := manager.Login(ctx, "ext-1")
	require.NoError(t, err)

	require.NoError(t, manager.Logout(ctx, session.Token))
	require.NoError(t, manager.Logout(ctx, session.Token))
	require.NoError(t, manager.Logout(ctx, ""))

	_, err = manager.Resolve(ctx, session.Token)
	assert.ErrorIs(t, err, storefront.ErrNotAuthenticated)
}
