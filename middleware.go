package storefront

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie the login endpoint sets and the
// authentication middleware reads.
const SessionCookieName = "session_token"

const userLocalKey = "storefront_user"

// TokenFromRequest extracts the session token from the request. The cookie
// wins over the Authorization header; an empty string means no credentials
// were presented.
func TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookieName); token != "" {
		return token
	}

	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// RequireUser resolves the request's session token to a user and stores it
// in both fiber locals and the request context. Requests without a valid
// live session are rejected.
func RequireUser(manager *SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := manager.Resolve(c.UserContext(), TokenFromRequest(c))
		if err != nil {
			return err
		}

		c.Locals(userLocalKey, user)
		c.SetUserContext(WithContext(c.UserContext(), user))

		return c.Next()
	}
}

// RequireAdmin resolves the session like RequireUser and additionally
// rejects users without the admin or owner flag.
func RequireAdmin(manager *SessionManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := manager.Resolve(c.UserContext(), TokenFromRequest(c))
		if err != nil {
			return err
		}

		if !user.IsElevated() {
			return ErrAdminRequired
		}

		c.Locals(userLocalKey, user)
		c.SetUserContext(WithContext(c.UserContext(), user))

		return c.Next()
	}
}

// UserFromFiber returns the authenticated user stored by RequireUser.
func UserFromFiber(c *fiber.Ctx) (*User, bool) {
	user, ok := c.Locals(userLocalKey).(*User)
	return user, ok
}
