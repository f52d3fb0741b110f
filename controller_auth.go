package storefront

import (
	"github.com/gofiber/fiber/v2"
)

// SessionIDHeader carries the provider-issued session identifier on login.
const SessionIDHeader = "X-Session-ID"

// AuthController handles login, current-user lookup, and logout.
type AuthController struct {
	Logger   Logger
	Sessions *SessionManager
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Sessions == nil {
		panic("Missing SessionManager in auth controller...")
	}

	return c
}

func WithAuthSessionManager(manager *SessionManager) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Sessions = manager
		return c
	}
}

func WithAuthLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// Login exchanges the X-Session-ID header for a local session and sets the
// session cookie. The response body is the resolved user.
func (a *AuthController) Login(c *fiber.Ctx) error {
	user, session, err := a.Sessions.Login(c.UserContext(), c.Get(SessionIDHeader))
	if err != nil {
		return err
	}

	a.Logger.Info("session created for %s", user.Email)

	c.Cookie(a.sessionCookie(session.Token, int(a.Sessions.TTL().Seconds())))

	return c.JSON(user)
}

// CurrentUser returns the caller resolved by RequireUser.
func (a *AuthController) CurrentUser(c *fiber.Ctx) error {
	user, ok := UserFromFiber(c)
	if !ok {
		return ErrNotAuthenticated
	}
	return c.JSON(user)
}

// Logout deletes the caller's session, if any, and clears the cookie. It
// succeeds even when no session was presented.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	if err := a.Sessions.Logout(c.UserContext(), TokenFromRequest(c)); err != nil {
		return err
	}

	c.Cookie(a.sessionCookie("", -1))

	return c.JSON(MessageResponse{Message: "Logged out successfully"})
}

// The cookie is cross-site so the hosted storefront can send it: http-only,
// secure, SameSite=None, rooted at /.
func (a *AuthController) sessionCookie(token string, maxAge int) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}
