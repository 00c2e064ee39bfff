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

// CategoryHandler handles category resource requests.
type CategoryHandler struct {
	categories store.CategoryStore
	books      store.BookStore
	tx         store.Transactor
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler with the given dependencies.
func NewCategoryHandler(
	categories store.CategoryStore,
	books store.BookStore,
	tx store.Transactor,
	logger *slog.Logger,
) *CategoryHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryHandler{
		categories: categories,
		books:      books,
		tx:         tx,
		validator:  validator.New(),
		logger:     logger.With(slog.String("component", "category_handler")),
	}
}

// Create handles POST /categories/.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	category, err := domain.NewCategory(req.Name, req.Description)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category data: "+err.Error())
		return
	}

	if err := h.categories.Create(r.Context(), category); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, categoryToResponse(category, nil))
}

// GetByID handles GET /categories/{id}. The response embeds the category's
// books.
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	category, err := h.categories.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	books, err := h.books.List(r.Context(), store.BookFilter{CategoryID: &id})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categoryToResponse(category, plainBooks(books)))
}

// List handles GET /categories/ with an optional ?name= substring filter.
// Filtered results are ordered by id.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	nameFilter, err := getNameFilter(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := h.categories.List(r.Context(), nameFilter)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, categoryToResponse(&categories[i], nil))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Update handles PATCH /categories/{id}.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	var req UpdateCategoryRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	var updated *domain.Category
	err = h.tx.RunInTransaction(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		categories := h.categories.WithTx(tx)

		category, err := categories.GetByID(ctx, id)
		if err != nil {
			return err
		}

		req.Apply(category)
		if err := categories.Update(ctx, category); err != nil {
			return err
		}

		updated = category
		return nil
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, categoryToResponse(updated, nil))
}

// Delete handles DELETE /categories/{id}, cascading to the category's books.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	err = h.tx.RunInTransaction(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		categories := h.categories.WithTx(tx)

		if _, err := categories.GetByID(ctx, id); err != nil {
			return err
		}
		return categories.Delete(ctx, id)
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, Ack)
}
