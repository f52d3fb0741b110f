package storefront

import (
	"net/http"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeNotAuthenticated   = "not_authenticated"
	TextCodeAdminRequired      = "admin_access_required"
	TextCodeOwnerRequired      = "owner_access_required"
	TextCodeOwnerImmutable     = "owner_flags_immutable"
	TextCodeSessionIDRequired  = "session_id_required"
	TextCodeUserNotFound       = "user_not_found"
	TextCodeCategoryNotFound   = "category_not_found"
	TextCodeProductNotFound    = "product_not_found"
	TextCodeDuplicateCategory  = "duplicate_category_name"
	TextCodeNoUpdateFields     = "no_update_fields"
	TextCodeIdentityVerifyFail = "identity_verification_failed"
	TextCodeImageStoreFail     = "image_store_failed"
	TextCodeImageStoreMissing  = "image_store_not_configured"
)

// ErrNotAuthenticated is returned when no session resolves for the caller:
// missing token, unknown token, expired session, or orphaned session row.
var ErrNotAuthenticated = errors.New("not authenticated", errors.CategoryAuth).
	WithTextCode(TextCodeNotAuthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrAdminRequired is returned when the caller resolved but is neither admin
// nor owner.
var ErrAdminRequired = errors.New("admin access required", errors.CategoryAuthz).
	WithTextCode(TextCodeAdminRequired).
	WithCode(errors.CodeForbidden)

// ErrOwnerRequired is returned when an admin who is not owner tries to change
// another user's admin flag.
var ErrOwnerRequired = errors.New("only owner can modify admin access", errors.CategoryAuthz).
	WithTextCode(TextCodeOwnerRequired).
	WithCode(errors.CodeForbidden)

// ErrOwnerImmutable is returned when the target of an admin-flag change is
// themselves owner. There is no API path that strips owner status.
var ErrOwnerImmutable = errors.New("cannot modify owner's admin status", errors.CategoryBadInput).
	WithTextCode(TextCodeOwnerImmutable).
	WithCode(errors.CodeBadRequest)

// ErrSessionIDRequired is returned by login when the X-Session-ID header is
// missing.
var ErrSessionIDRequired = errors.New("session ID required", errors.CategoryBadInput).
	WithTextCode(TextCodeSessionIDRequired).
	WithCode(errors.CodeBadRequest)

var ErrUserNotFound = errors.New("user not found", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

var ErrCategoryNotFound = errors.New("category not found", errors.CategoryNotFound).
	WithTextCode(TextCodeCategoryNotFound).
	WithCode(errors.CodeNotFound)

var ErrProductNotFound = errors.New("product not found", errors.CategoryNotFound).
	WithTextCode(TextCodeProductNotFound).
	WithCode(errors.CodeNotFound)

// ErrDuplicateCategoryName is returned when a create or rename collides with
// an existing category name, compared case-insensitively.
var ErrDuplicateCategoryName = errors.New("a category with this name already exists", errors.CategoryValidation).
	WithTextCode(TextCodeDuplicateCategory).
	WithCode(errors.CodeBadRequest)

// ErrNoUpdateFields is returned when a partial update carries an empty change
// set.
var ErrNoUpdateFields = errors.New("no fields to update", errors.CategoryBadInput).
	WithTextCode(TextCodeNoUpdateFields).
	WithCode(errors.CodeBadRequest)

// ErrImageStoreNotConfigured is returned when upload endpoints are hit without
// image store credentials in the environment.
var ErrImageStoreNotConfigured = errors.New("image store not configured", errors.CategoryOperation).
	WithTextCode(TextCodeImageStoreMissing).
	WithCode(errors.CodeInternal)

// WrapIdentityProviderError tags an upstream identity verification failure so
// the HTTP layer can surface it as a bad gateway with the upstream text.
func WrapIdentityProviderError(err error) error {
	return errors.Wrap(err, errors.CategoryOperation, "failed to validate session").
		WithTextCode(TextCodeIdentityVerifyFail).
		WithCode(errors.CodeInternal)
}

// WrapImageStoreError tags an upstream image store failure.
func WrapImageStoreError(err error) error {
	return errors.Wrap(err, errors.CategoryOperation, "failed to upload image").
		WithTextCode(TextCodeImageStoreFail).
		WithCode(errors.CodeInternal)
}

// HTTPStatus maps a rich error to the status the API responds with. Upstream
// failures carry internal codes but surface as gateway errors; everything else
// uses the code the sentinel was declared with.
func HTTPStatus(richErr *errors.Error) int {
	if richErr == nil {
		return http.StatusInternalServerError
	}

	switch richErr.TextCode {
	case TextCodeIdentityVerifyFail, TextCodeImageStoreFail:
		return http.StatusBadGateway
	case TextCodeImageStoreMissing:
		return http.StatusServiceUnavailable
	}

	if richErr.Code > 0 {
		return richErr.Code
	}
	return http.StatusInternalServerError
}
