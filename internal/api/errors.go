package api

import (
	"errors"
	"net/http"

	"github.com/mdelucas/libris-api/internal/api/shared"
	"github.com/mdelucas/libris-api/internal/service/auth"
	"github.com/mdelucas/libris-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Uniqueness
// conflicts deliberately map to 400, matching the API's documented contract.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	case errors.Is(err, auth.ErrInactiveUser):
		return http.StatusForbidden

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns the stable, client-facing message for an
// error. Internal detail never leaks through this boundary.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrAuthorNotFound):
		return "Author not found."
	case errors.Is(err, store.ErrCategoryNotFound):
		return "Category not found."
	case errors.Is(err, store.ErrPublisherNotFound):
		return "Publisher not found."
	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found."
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found."

	case errors.Is(err, store.ErrAuthorExists):
		return "Author already exists."
	case errors.Is(err, store.ErrCategoryExists):
		return "Category already exists."
	case errors.Is(err, store.ErrPublisherExists):
		return "Publisher already exists."
	case errors.Is(err, store.ErrBookExists):
		return "Book already exists."
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data."

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken):
		return "Could not validate credentials"

	case errors.Is(err, auth.ErrInactiveUser):
		return "Inactive user"

	default:
		return "Something went wrong."
	}
}

// HandleAPIError translates err into a status code and safe message and
// writes the response, logging the underlying error. Every mutating handler
// funnels unanticipated failures through here.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
