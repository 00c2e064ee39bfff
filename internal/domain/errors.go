// Package domain defines the core catalog entities and their validation rules.
package domain

import "errors"

// Common validation errors shared across entities.
var (
	// ErrEmptyName is returned when a catalog entity is missing its name.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrNameTooLong is returned when a name exceeds the storage limit.
	ErrNameTooLong = errors.New("name must be at most 200 characters")

	// ErrMissingAuthorID is returned when a book has no author reference.
	ErrMissingAuthorID = errors.New("author_id is required")

	// ErrMissingCategoryID is returned when a book has no category reference.
	ErrMissingCategoryID = errors.New("category_id is required")

	// ErrMissingPublisherID is returned when a book has no publisher reference.
	ErrMissingPublisherID = errors.New("publisher_id is required")

	// ErrEmptyEmail is returned when a user has no email address.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyPassword is returned when a user carries neither a plaintext
	// password nor a stored hash.
	ErrEmptyPassword = errors.New("password cannot be empty")

	// ErrPasswordTooLong is returned when a password exceeds bcrypt's
	// practical 72 byte limit.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

const maxNameLength = 200

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}
