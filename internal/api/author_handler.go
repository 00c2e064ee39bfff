// Package api provides HTTP handlers for the catalog API.
package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/mdelucas/libris-api/internal/api/shared"
	"github.com/mdelucas/libris-api/internal/domain"
	"github.com/mdelucas/libris-api/internal/store"
)

// AuthorHandler handles author resource requests.
type AuthorHandler struct {
	authors   store.AuthorStore
	books     store.BookStore
	tx        store.Transactor
	validator *validator.Validate
	logger    *slog.Logger
}

// NewAuthorHandler creates an AuthorHandler with the given dependencies.
func NewAuthorHandler(
	authors store.AuthorStore,
	books store.BookStore,
	tx store.Transactor,
	logger *slog.Logger,
) *AuthorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthorHandler{
		authors:   authors,
		books:     books,
		tx:        tx,
		validator: validator.New(),
		logger:    logger.With(slog.String("component", "author_handler")),
	}
}

// Create handles POST /authors/.
func (h *AuthorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAuthorRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	author, err := domain.NewAuthor(req.Name)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid author data: "+err.Error())
		return
	}

	if err := h.authors.Create(r.Context(), author); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, authorToResponse(author, nil))
}

// GetByID handles GET /authors/{id}. The response embeds the author's books.
func (h *AuthorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	author, err := h.authors.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	books, err := h.books.List(r.Context(), store.BookFilter{AuthorID: &id})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, authorToResponse(author, plainBooks(books)))
}

// List handles GET /authors/ with an optional ?name= substring filter.
func (h *AuthorHandler) List(w http.ResponseWriter, r *http.Request) {
	nameFilter, err := getNameFilter(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	authors, err := h.authors.List(r.Context(), nameFilter)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	responses := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		responses = append(responses, authorToResponse(&authors[i], nil))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Update handles PATCH /authors/{id}. Only fields present in the payload are
// applied; absence of the fetched row, not of the payload, drives the 404.
func (h *AuthorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	var req UpdateAuthorRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	var updated *domain.Author
	err = h.tx.RunInTransaction(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		authors := h.authors.WithTx(tx)

		author, err := authors.GetByID(ctx, id)
		if err != nil {
			return err
		}

		req.Apply(author)
		if err := authors.Update(ctx, author); err != nil {
			return err
		}

		updated = author
		return nil
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, authorToResponse(updated, nil))
}

// Delete handles DELETE /authors/{id}. The author's books are removed in the
// same transaction by the schema's cascade rule.
func (h *AuthorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	err = h.tx.RunInTransaction(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		authors := h.authors.WithTx(tx)

		if _, err := authors.GetByID(ctx, id); err != nil {
			return err
		}
		return authors.Delete(ctx, id)
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, Ack)
}
