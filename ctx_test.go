package storefront_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storefront "github.com/goliatone/go-storefront"
)

func TestUserContextRoundTrip(t *testing.T) {
	user := &storefront.User{
		ID:    uuid.New(),
		Email: "ctx@example.com",
	}

	ctx := storefront.WithContext(context.Background(), user)

	got, ok := storefront.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestFromContextMissing(t *testing.T) {
	got, ok := storefront.FromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, got)
}
