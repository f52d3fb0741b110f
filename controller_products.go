package storefront

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// ProductController exposes product CRUD plus the filtered listing the
// storefront drives. Reads are public; writes sit behind the admin gate.
type ProductController struct {
	Logger Logger
	Repo   RepositoryManager
}

type ProductControllerOption func(*ProductController) *ProductController

func NewProductController(opts ...ProductControllerOption) *ProductController {
	c := &ProductController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Repo == nil {
		panic("Missing RepositoryManager in product controller...")
	}

	return c
}

func WithProductRepository(repo RepositoryManager) ProductControllerOption {
	return func(c *ProductController) *ProductController {
		c.Repo = repo
		return c
	}
}

func WithProductLogger(logger Logger) ProductControllerOption {
	return func(c *ProductController) *ProductController {
		c.Logger = logger
		return c
	}
}

// ProductCreateRequest is the creation payload.
type ProductCreateRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"imageUrl"`
	Stock       int     `json:"stock"`
}

// Validate will run validation rules
func (r ProductCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Price, validation.Min(0.0)),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// ProductUpdateRequest is the partial-update payload.
type ProductUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	Stock       *int     `json:"stock"`
}

// Validate will run validation rules
func (r ProductUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Category, validation.NilOrNotEmpty, validation.Length(1, 200)),
		validation.Field(&r.Price, validation.Min(0.0)),
		validation.Field(&r.Stock, validation.Min(0)),
	)
}

// List returns products matching the query string filters. Unknown values
// for stock_status or sort_by fall back to no filter and newest-first.
func (p *ProductController) List(c *fiber.Ctx) error {
	filter := ProductFilter{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		StockStatus: c.Query("stock_status"),
		SortBy:      c.Query("sort_by"),
	}

	var err error
	if filter.MinPrice, err = queryPrice(c, "min_price"); err != nil {
		return err
	}
	if filter.MaxPrice, err = queryPrice(c, "max_price"); err != nil {
		return err
	}

	records, err := p.Repo.Products().List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	return c.JSON(records)
}

// Get returns one product by id.
func (p *ProductController) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id", ErrProductNotFound)
	if err != nil {
		return err
	}

	record, err := p.Repo.Products().GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// Create inserts a product.
func (p *ProductController) Create(c *fiber.Ctx) error {
	payload := new(ProductCreateRequest)
	if err := c.BodyParser(payload); err != nil {
		return invalidBody(err)
	}

	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	record, err := p.Repo.Products().CreateProduct(c.UserContext(), &Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		ImageURL:    payload.ImageURL,
		Stock:       payload.Stock,
	})
	if err != nil {
		return err
	}

	p.Logger.Info("product created: %s", record.Name)

	return c.JSON(record)
}

// Update applies a partial update and returns the updated product.
func (p *ProductController) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id", ErrProductNotFound)
	if err != nil {
		return err
	}

	payload := new(ProductUpdateRequest)
	if err := c.BodyParser(payload); err != nil {
		return invalidBody(err)
	}

	if err := payload.Validate(); err != nil {
		return invalidPayload(err)
	}

	record, err := p.Repo.Products().UpdateFields(c.UserContext(), id, ProductPatch{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		ImageURL:    payload.ImageURL,
		Stock:       payload.Stock,
	})
	if err != nil {
		return err
	}

	return c.JSON(record)
}

// Delete removes a product by id.
func (p *ProductController) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id", ErrProductNotFound)
	if err != nil {
		return err
	}

	if err := p.Repo.Products().DeleteByID(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(MessageResponse{Message: "Product deleted successfully"})
}

func queryPrice(c *fiber.Ctx, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New("invalid "+name, errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest)
	}

	return &value, nil
}
