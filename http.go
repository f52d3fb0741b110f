package storefront

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// MessageResponse is the body for endpoints that only confirm an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body every failed request gets.
type ErrorResponse struct {
	Error    string `json:"error"`
	TextCode string `json:"text_code,omitempty"`
}

// ErrorHandler renders any error bubbled out of a handler. Rich errors carry
// their own status and text code; anything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var richErr *errors.Error
	if stderrors.As(err, &richErr) {
		return c.Status(HTTPStatus(richErr)).JSON(ErrorResponse{
			Error:    richErr.Message,
			TextCode: richErr.TextCode,
		})
	}

	var fiberErr *fiber.Error
	if stderrors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(ErrorResponse{
			Error: fiberErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: "internal server error",
	})
}

func invalidBody(err error) error {
	return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
		WithCode(errors.CodeBadRequest)
}

func invalidPayload(err error) error {
	return errors.Wrap(err, errors.CategoryValidation, err.Error()).
		WithCode(errors.CodeBadRequest)
}

// parseID turns a path parameter into a UUID. Malformed ids behave like
// absent records so the API answers 404 either way.
func parseID(c *fiber.Ctx, param string, notFound *errors.Error) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}
