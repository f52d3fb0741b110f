package storefront_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	storefront "github.com/goliatone/go-storefront"
)

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	session := &storefront.UserSession{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, session.Expired(now))
	assert.False(t, session.Expired(now.Add(time.Hour)))
	assert.True(t, session.Expired(now.Add(time.Hour+time.Second)))
}
