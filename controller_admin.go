package storefront

import (
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

// AdminController manages user listing and admin-flag changes.
type AdminController struct {
	Logger Logger
	Repo   RepositoryManager
}

type AdminControllerOption func(*AdminController) *AdminController

func NewAdminController(opts ...AdminControllerOption) *AdminController {
	c := &AdminController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in admin controller...")
	}

	return c
}

func WithAdminRepository(repo RepositoryManager) AdminControllerOption {
	return func(c *AdminController) *AdminController {
		c.Repo = repo
		return c
	}
}

func WithAdminLogger(logger Logger) AdminControllerOption {
	return func(c *AdminController) *AdminController {
		c.Logger = logger
		return c
	}
}

// ListUsers returns every user, newest first.
func (a *AdminController) ListUsers(c *fiber.Ctx) error {
	records, err := a.Repo.Users().List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(records)
}

// AdminUpdateRequest is the payload for admin-flag changes.
type AdminUpdateRequest struct {
	IsAdmin *bool `json:"is_admin"`
}

// Validate will run validation rules
func (r AdminUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.IsAdmin, validation.NotNil),
	)
}

// SetUserAdmin grants or revokes the admin flag on the user addressed by
// email. Only the owner may do this, and the owner's own flags are immutable.
func (a *AdminController) SetUserAdmin(c *fiber.Ctx) error {
	caller, ok := UserFromFiber(c)
	if !ok {
		return ErrNotAuthenticated
	}

	if !caller.IsOwner {
		return ErrOwnerRequired
	}

	payload := new(AdminUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return invalidBody(err)
	}

	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		email = c.Params("email")
	}

	user, err := a.Repo.Users().SetAdmin(c.UserContext(), email, *payload.IsAdmin)
	if err != nil {
		return err
	}

	a.Logger.Info("admin flag for %s set to %t by %s", user.Email, user.IsAdmin, caller.Email)

	return c.JSON(MessageResponse{Message: "User admin status updated"})
}
