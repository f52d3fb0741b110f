package storefront

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/goliatone/go-storefront/imagekit"
)

// UploadController pushes catalog images to the hosted image store and hands
// the frontend its public configuration.
type UploadController struct {
	Logger Logger
	Images *imagekit.Client
}

type UploadControllerOption func(*UploadController) *UploadController

func NewUploadController(opts ...UploadControllerOption) *UploadController {
	c := &UploadController{
		Logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Images == nil {
		c.Images = imagekit.New(imagekit.Config{})
	}

	return c
}

func WithUploadClient(client *imagekit.Client) UploadControllerOption {
	return func(c *UploadController) *UploadController {
		c.Images = client
		return c
	}
}

func WithUploadLogger(logger Logger) UploadControllerOption {
	return func(c *UploadController) *UploadController {
		c.Logger = logger
		return c
	}
}

// UploadImage stores the multipart "file" field and returns the hosted URL,
// file id, and final name.
func (u *UploadController) UploadImage(c *fiber.Ctx) error {
	if !u.Images.Configured() {
		return ErrImageStoreNotConfigured
	}

	header, err := c.FormFile("file")
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "missing file upload").
			WithCode(errors.CodeBadRequest)
	}

	file, err := header.Open()
	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "unreadable file upload").
			WithCode(errors.CodeBadRequest)
	}
	defer file.Close()

	result, err := u.Images.Upload(c.UserContext(), header.Filename, file)
	if err != nil {
		return WrapImageStoreError(err)
	}

	u.Logger.Info("image uploaded: %s", result.Name)

	return c.JSON(result)
}

// Config returns the public image store settings the frontend needs.
func (u *UploadController) Config(c *fiber.Ctx) error {
	if !u.Images.Configured() {
		return ErrImageStoreNotConfigured
	}

	return c.JSON(u.Images.PublicConfig())
}
