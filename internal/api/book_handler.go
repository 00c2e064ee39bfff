package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mdelucas/libris-api/internal/api/shared"
	"github.com/mdelucas/libris-api/internal/domain"
	"github.com/mdelucas/libris-api/internal/store"
)

// BookHandler handles book resource requests.
type BookHandler struct {
	books      store.BookStore
	authors    store.AuthorStore
	categories store.CategoryStore
	publishers store.PublisherStore
	tx         store.Transactor
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewBookHandler creates a BookHandler with the given dependencies.
func NewBookHandler(
	books store.BookStore,
	authors store.AuthorStore,
	categories store.CategoryStore,
	publishers store.PublisherStore,
	tx store.Transactor,
	logger *slog.Logger,
) *BookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookHandler{
		books:      books,
		authors:    authors,
		categories: categories,
		publishers: publishers,
		tx:         tx,
		validator:  validator.New(),
		logger:     logger.With(slog.String("component", "book_handler")),
	}
}

// Create handles POST /books/. Name uniqueness and all three parent
// references are pre-validated inside the insert transaction so failures
// surface as 400s with a friendly message instead of raw constraint errors.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	book, err := domain.NewBook(req.Name, req.Description, req.AuthorID, req.CategoryID, req.PublisherID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid book data: "+err.Error())
		return
	}

	var created *domain.BookDetail
	err = h.tx.RunInTransaction(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		books := h.books.WithTx(tx)

		exists, err := books.ExistsByName(ctx, book.Name)
		if err != nil {
			return err
		}
		if exists {
			return store.ErrBookExists
		}

		author, err := h.authors.WithTx(tx).GetByID(ctx, book.AuthorID)
		if err != nil {
			return err
		}
		category, err := h.categories.WithTx(tx).GetByID(ctx, book.CategoryID)
		if err != nil {
			return err
		}
		publisher, err := h.publishers.WithTx(tx).GetByID(ctx, book.PublisherID)
		if err != nil {
			return err
		}

		if err := books.Create(ctx, book); err != nil {
			return err
		}

		created = &domain.BookDetail{
			Book:          *book,
			AuthorName:    author.Name,
			CategoryName:  category.Name,
			PublisherName: publisher.Name,
		}
		return nil
	})
	if err != nil {
		h.respondCreateError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, bookToResponse(created))
}

// respondCreateError maps pre-check failures during book creation to 400s.
// A missing parent is a validation failure here, not a 404.
func (h *BookHandler) respondCreateError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrBookExists):
		shared.RespondWithError(w, r, http.StatusBadRequest, "Book already exists.")
	case errors.Is(err, store.ErrAuthorNotFound):
		shared.RespondWithError(w, r, http.StatusBadRequest, "Author not found.")
	case errors.Is(err, store.ErrCategoryNotFound):
		shared.RespondWithError(w, r, http.StatusBadRequest, "Category not found.")
	case errors.Is(err, store.ErrPublisherNotFound):
		shared.RespondWithError(w, r, http.StatusBadRequest, "Publisher not found.")
	default:
		HandleAPIError(w, r, err)
	}
}

// GetByID handles GET /books/{id}.
func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	detail, err := h.books.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(detail))
}

// List handles GET /books/ with optional name, author_id, category_id and
// publisher_id filters, combined with logical AND.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	nameFilter, err := getNameFilter(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	filter := store.BookFilter{Name: nameFilter}
	for _, p := range []struct {
		param string
		dst   **int64
	}{
		{"author_id", &filter.AuthorID},
		{"category_id", &filter.CategoryID},
		{"publisher_id", &filter.PublisherID},
	} {
		id, err := getOptionalIDParam(r, p.param)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		*p.dst = id
	}

	details, err := h.books.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, booksToResponse(details))
}

// Update handles PATCH /books/{id}.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	var req UpdateBookRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	var updated *domain.BookDetail
	err = h.tx.RunInTransaction(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		books := h.books.WithTx(tx)

		detail, err := books.GetByID(ctx, id)
		if err != nil {
			return err
		}

		book := detail.Book
		req.Apply(&book)
		if err := books.Update(ctx, &book); err != nil {
			return err
		}

		// Re-read for fresh parent names in case a reference changed.
		updated, err = books.GetByID(ctx, id)
		return err
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, bookToResponse(updated))
}

// Delete handles DELETE /books/{id}. Book deletion cascades to nothing.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	err = h.tx.RunInTransaction(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		books := h.books.WithTx(tx)

		if _, err := books.GetByID(ctx, id); err != nil {
			return err
		}
		return books.Delete(ctx, id)
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, Ack)
}
