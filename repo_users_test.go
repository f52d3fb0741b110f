package storefront_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storefront "github.com/goliatone/go-storefront"
)

func provisionUser(t *testing.T, repo storefront.RepositoryManager, email, name string) *storefront.User {
	t.Helper()

	user, _, err := repo.Users().GetOrProvision(context.Background(), &storefront.User{
		Email: email,
		Name:  name,
	})
	require.NoError(t, err)
	return user
}

func TestGetOrProvisionFirstUserBecomesOwner(t *testing.T) {
	repo := newTestRepo(t)

	first := provisionUser(t, repo, "first@example.com", "First")
	assert.True(t, first.IsAdmin)
	assert.True(t, first.IsOwner)

	second := provisionUser(t, repo, "second@example.com", "Second")
	assert.False(t, second.IsAdmin)
	assert.False(t, second.IsOwner)
}

func TestGetOrProvisionReturnsExisting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := provisionUser(t, repo, "user@example.com", "User")

	again, created, err := repo.Users().GetOrProvision(ctx, &storefront.User{
		Email: "user@example.com",
		Name:  "Different Name",
	})
	require.NoError(t, err)

	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, "User", again.Name)
}

func TestGetByEmailMissingIsRecordNotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Users().GetByEmail(ctx, "nobody@example.com")
	require.Error(t, err)
	assert.True(t, repository.IsRecordNotFound(err))

	_, err = repo.Users().GetByUserID(ctx, uuid.New())
	require.Error(t, err)
	assert.True(t, repository.IsRecordNotFound(err))
}

func TestSetAdmin(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	provisionUser(t, repo, "owner@example.com", "Owner")
	target := provisionUser(t, repo, "user@example.com", "User")

	updated, err := repo.Users().SetAdmin(ctx, "user@example.com", true)
	require.NoError(t, err)
	assert.True(t, updated.IsAdmin)
	assert.False(t, updated.IsOwner)
	assert.Equal(t, target.ID, updated.ID)

	updated, err = repo.Users().SetAdmin(ctx, "user@example.com", false)
	require.NoError(t, err)
	assert.False(t, updated.IsAdmin)
}

func TestSetAdminRefusesOwnerTarget(t *testing.T) {
	repo := newTestRepo(t)

	provisionUser(t, repo, "owner@example.com", "Owner")

	_, err := repo.Users().SetAdmin(context.Background(), "owner@example.com", false)
	assert.ErrorIs(t, err, storefront.ErrOwnerImmutable)
}

func TestSetAdminUnknownUser(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.Users().SetAdmin(context.Background(), "nobody@example.com", true)
	assert.ErrorIs(t, err, storefront.ErrUserNotFound)
}

func TestIsElevated(t *testing.T) {
	var nilUser *storefront.User
	assert.False(t, nilUser.IsElevated())
	assert.False(t, (&storefront.User{}).IsElevated())
	assert.True(t, (&storefront.User{IsAdmin: true}).IsElevated())
	assert.True(t, (&storefront.User{IsOwner: true}).IsElevated())
}
