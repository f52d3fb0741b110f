package storefront_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	storefront "github.com/goliatone/go-storefront"
)

// testIdentity is what the fake verifier hands back.
type testIdentity struct {
	email   string
	name    string
	picture string
	token   string
}

func (t testIdentity) Email() string        { return t.email }
func (t testIdentity) Name() string         { return t.name }
func (t testIdentity) Picture() string      { return t.picture }
func (t testIdentity) SessionToken() string { return t.token }

// fakeVerifier returns a canned identity or error without any network.
type fakeVerifier struct {
	identity storefront.Identity
	err      error
	calls    []string
}

func (f *fakeVerifier) VerifySession(ctx context.Context, sessionID string) (storefront.Identity, error) {
	f.calls = append(f.calls, sessionID)
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	persistence := storefront.NewPersistence(storefront.PersistenceConfig{
		Driver: storefront.DriverSQLite,
		DSN:    ":memory:",
	})

	db, err := persistence.Connect()
	require.NoError(t, err)

	// One in-memory database per test; a second connection would see a
	// different empty database without this.
	db.SetMaxOpenConns(1)

	require.NoError(t, storefront.Migrate(context.Background(), db))

	t.Cleanup(func() {
		_ = persistence.Close()
	})

	return db
}

func newTestRepo(t *testing.T) storefront.RepositoryManager {
	t.Helper()

	repo := storefront.NewRepositoryManager(newTestDB(t))
	require.NoError(t, repo.Validate())

	return repo
}
