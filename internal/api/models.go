package api

import (
	"github.com/mdelucas/libris-api/internal/domain"
)

// Common request/response structures

// AckResponse is the simple success acknowledgment returned by delete and
// register operations.
type AckResponse struct {
	OK bool `json:"ok"`
}

// Ack is the canonical success acknowledgment.
var Ack = AckResponse{OK: true}

// TokenResponse is the successful response of the login endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ResourceRef is a minimal {id, name} reference to a parent row, embedded in
// book responses.
type ResourceRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Authors

// CreateAuthorRequest defines the payload for creating an author.
type CreateAuthorRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// UpdateAuthorRequest defines the partial-update payload for an author.
type UpdateAuthorRequest struct {
	Name Optional[string] `json:"name"`
}

// Apply merges the fields present in the request into the fetched row.
func (req *UpdateAuthorRequest) Apply(author *domain.Author) {
	if req.Name.Set {
		author.Name = req.Name.Value
	}
}

// AuthorResponse is the read model for an author. Books is populated only by
// the get-by-id endpoint; empty collections are omitted.
type AuthorResponse struct {
	ID    int64         `json:"id"`
	Name  string        `json:"name"`
	Books []domain.Book `json:"books,omitempty"`
}

func authorToResponse(author *domain.Author, books []domain.Book) AuthorResponse {
	return AuthorResponse{ID: author.ID, Name: author.Name, Books: books}
}

// Categories

// CreateCategoryRequest defines the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// UpdateCategoryRequest defines the partial-update payload for a category.
// An explicit null description clears the stored value.
type UpdateCategoryRequest struct {
	Name        Optional[string]  `json:"name"`
	Description Optional[*string] `json:"description"`
}

// Apply merges the fields present in the request into the fetched row.
func (req *UpdateCategoryRequest) Apply(category *domain.Category) {
	if req.Name.Set {
		category.Name = req.Name.Value
	}
	if req.Description.Set {
		category.Description = req.Description.Value
	}
}

// CategoryResponse is the read model for a category.
type CategoryResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Books       []domain.Book `json:"books,omitempty"`
}

func categoryToResponse(category *domain.Category, books []domain.Book) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		Books:       books,
	}
}

// Publishers

// CreatePublisherRequest defines the payload for creating a publisher.
type CreatePublisherRequest struct {
	Name        string  `json:"name"        validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// UpdatePublisherRequest defines the partial-update payload for a publisher.
type UpdatePublisherRequest struct {
	Name        Optional[string]  `json:"name"`
	Description Optional[*string] `json:"description"`
}

// Apply merges the fields present in the request into the fetched row.
func (req *UpdatePublisherRequest) Apply(publisher *domain.Publisher) {
	if req.Name.Set {
		publisher.Name = req.Name.Value
	}
	if req.Description.Set {
		publisher.Description = req.Description.Value
	}
}

// PublisherResponse is the read model for a publisher.
type PublisherResponse struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Books       []domain.Book `json:"books,omitempty"`
}

func publisherToResponse(publisher *domain.Publisher, books []domain.Book) PublisherResponse {
	return PublisherResponse{
		ID:          publisher.ID,
		Name:        publisher.Name,
		Description: publisher.Description,
		Books:       books,
	}
}

// Books

// CreateBookRequest defines the payload for creating a book.
type CreateBookRequest struct {
	Name        string  `json:"name"         validate:"required,max=200"`
	Description *string `json:"description"  validate:"omitempty,max=2000"`
	AuthorID    int64   `json:"author_id"    validate:"required,gt=0"`
	CategoryID  int64   `json:"category_id"  validate:"required,gt=0"`
	PublisherID int64   `json:"publisher_id" validate:"required,gt=0"`
}

// UpdateBookRequest defines the partial-update payload for a book.
type UpdateBookRequest struct {
	Name        Optional[string]  `json:"name"`
	Description Optional[*string] `json:"description"`
	AuthorID    Optional[int64]   `json:"author_id"`
	CategoryID  Optional[int64]   `json:"category_id"`
	PublisherID Optional[int64]   `json:"publisher_id"`
}

// Apply merges the fields present in the request into the fetched row.
func (req *UpdateBookRequest) Apply(book *domain.Book) {
	if req.Name.Set {
		book.Name = req.Name.Value
	}
	if req.Description.Set {
		book.Description = req.Description.Value
	}
	if req.AuthorID.Set {
		book.AuthorID = req.AuthorID.Value
	}
	if req.CategoryID.Set {
		book.CategoryID = req.CategoryID.Value
	}
	if req.PublisherID.Set {
		book.PublisherID = req.PublisherID.Value
	}
}

// BookResponse is the read model for a book, embedding its parent rows as
// {id, name} references.
type BookResponse struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	Author      ResourceRef `json:"author"`
	Category    ResourceRef `json:"category"`
	Publisher   ResourceRef `json:"publisher"`
}

func bookToResponse(detail *domain.BookDetail) BookResponse {
	return BookResponse{
		ID:          detail.ID,
		Name:        detail.Name,
		Description: detail.Description,
		Author:      ResourceRef{ID: detail.AuthorID, Name: detail.AuthorName},
		Category:    ResourceRef{ID: detail.CategoryID, Name: detail.CategoryName},
		Publisher:   ResourceRef{ID: detail.PublisherID, Name: detail.PublisherName},
	}
}

func booksToResponse(details []domain.BookDetail) []BookResponse {
	responses := make([]BookResponse, 0, len(details))
	for i := range details {
		responses = append(responses, bookToResponse(&details[i]))
	}
	return responses
}

// plainBooks strips the joined parent names for embedding under a parent
// resource.
func plainBooks(details []domain.BookDetail) []domain.Book {
	books := make([]domain.Book, 0, len(details))
	for _, detail := range details {
		books = append(books, detail.Book)
	}
	return books
}

// Users

// RegisterUserRequest defines the payload for the user registration endpoint.
type RegisterUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// UserResponse is the read model for a user. The password hash never
// appears here.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

func userToResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email, IsActive: user.IsActive}
}
