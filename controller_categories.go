package storefront

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
)

// CategoryController exposes category CRUD. Reads are public; writes sit
// behind the admin gate at route registration.
type CategoryController struct {
	Logger Logger
	Repo   RepositoryManager
}

type CategoryControllerOption func(*CategoryController) *CategoryController

func NewCategoryController(opts ...CategoryControllerOption) *CategoryController {
	c := &CategoryController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in category controller...")
	}

	return c
}

func WithCategoryRepository(repo RepositoryManager) CategoryControllerOption {
	return func(c *CategoryController) *CategoryController {
		c.Repo = repo
		return c
	}
}

func WithCategoryLogger(logger Logger) CategoryControllerOption {
	return func(c *CategoryController) *CategoryController {
		c.Logger = logger
		return c
	}
}

// CategoryCreateRequest is the creation payload.
type CategoryCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate will run validation rules
func (r CategoryCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// CategoryUpdateRequest is the partial-update payload. Absent fields keep
// their current value; an all-absent payload is rejected.
type CategoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Validate will run validation rules
func (r CategoryUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Description, validation.Length(0, 2000)),
	)
}

// List returns every category, newest first.
func (k *CategoryController) List(c *fiber.Ctx) error {
	records, err := k.Repo.Categories().List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(records)
}

// Get returns one category by id.
func (k *CategoryController) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id", ErrCategoryNotFound)
	if err != nil {
		return err
	}

	record, err := k.Repo.Categories().GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// Create inserts a category. Names collide case-insensitively.
func (k *CategoryController) Create(c *fiber.Ctx) error {
	payload := new(CategoryCreateRequest)
	if err := c.BodyParser(payload); err != nil {
		return invalidBody(err)
	}

	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	record, err := k.Repo.Categories().CreateUnique(c.UserContext(), &Category{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		return err
	}

	k.Logger.Info("category created: %s", record.Name)

	return c.JSON(record)
}

// Update applies a partial update and returns the updated category.
func (k *CategoryController) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id", ErrCategoryNotFound)
	if err != nil {
		return err
	}

	payload := new(CategoryUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return invalidBody(err)
	}

	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	record, err := k.Repo.Categories().UpdateFields(c.UserContext(), id, CategoryPatch{
		Name:        payload.Name,
		Description: payload.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// Delete removes a category by id.
func (k *CategoryController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id", ErrCategoryNotFound)
	if err != nil {
		return err
	}

	if err := k.Repo.Categories().DeleteByID(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(MessageResponse{Message: "Category deleted successfully"})
}
