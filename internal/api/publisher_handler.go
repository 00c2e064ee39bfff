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

// PublisherHandler handles publisher resource requests.
type PublisherHandler struct {
	publishers store.PublisherStore
	books      store.BookStore
	tx         store.Transactor
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewPublisherHandler creates a PublisherHandler with the given dependencies.
func NewPublisherHandler(
	publishers store.PublisherStore,
	books store.BookStore,
	tx store.Transactor,
	logger *slog.Logger,
) *PublisherHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PublisherHandler{
		publishers: publishers,
		books:      books,
		tx:         tx,
		validator:  validator.New(),
		logger:     logger.With(slog.String("component", "publisher_handler")),
	}
}

// Create handles POST /publishers/.
func (h *PublisherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePublisherRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	publisher, err := domain.NewPublisher(req.Name, req.Description)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid publisher data: "+err.Error())
		return
	}

	if err := h.publishers.Create(r.Context(), publisher); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, publisherToResponse(publisher, nil))
}

// GetByID handles GET /publishers/{id}. The response embeds the publisher's
// books.
func (h *PublisherHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	publisher, err := h.publishers.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	books, err := h.books.List(r.Context(), store.BookFilter{PublisherID: &id})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, publisherToResponse(publisher, plainBooks(books)))
}

// List handles GET /publishers/ with an optional ?name= substring filter.
func (h *PublisherHandler) List(w http.ResponseWriter, r *http.Request) {
	nameFilter, err := getNameFilter(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	publishers, err := h.publishers.List(r.Context(), nameFilter)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	responses := make([]PublisherResponse, 0, len(publishers))
	for i := range publishers {
		responses = append(responses, publisherToResponse(&publishers[i], nil))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// Update handles PATCH /publishers/{id}.
func (h *PublisherHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	var req UpdatePublisherRequest
	if err := DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	var updated *domain.Publisher
	err = h.tx.RunInTransaction(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		publishers := h.publishers.WithTx(tx)

		publisher, err := publishers.GetByID(ctx, id)
		if err != nil {
			return err
		}

		req.Apply(publisher)
		if err := publishers.Update(ctx, publisher); err != nil {
			return err
		}

		updated = publisher
		return nil
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, publisherToResponse(updated, nil))
}

// Delete handles DELETE /publishers/{id}, cascading to the publisher's books.
func (h *PublisherHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid id.")
		return
	}

	err = h.tx.RunInTransaction(r.Context(), func(ctx context.Context, tx *sql.Tx) error {
		publishers := h.publishers.WithTx(tx)

		if _, err := publishers.GetByID(ctx, id); err != nil {
			return err
		}
		return publishers.Delete(ctx, id)
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, Ack)
}
