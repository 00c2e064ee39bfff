package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mdelucas/libris-api/internal/service/auth"
	"github.com/mdelucas/libris-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid token", err: auth.ErrInvalidToken, want: http.StatusUnauthorized},
		{name: "expired token", err: auth.ErrExpiredToken, want: http.StatusUnauthorized},
		{name: "missing token", err: auth.ErrMissingToken, want: http.StatusUnauthorized},
		{name: "inactive user", err: auth.ErrInactiveUser, want: http.StatusForbidden},
		{name: "author not found", err: store.ErrAuthorNotFound, want: http.StatusNotFound},
		{name: "wrapped not found", err: fmt.Errorf("loading: %w", store.ErrBookNotFound), want: http.StatusNotFound},
		{name: "duplicate author", err: store.ErrAuthorExists, want: http.StatusBadRequest},
		{name: "duplicate email", err: store.ErrEmailExists, want: http.StatusBadRequest},
		{name: "invalid entity", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{name: "transaction failure", err: store.ErrTransactionFailed, want: http.StatusInternalServerError},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "author not found", err: store.ErrAuthorNotFound, want: "Author not found."},
		{name: "category not found", err: store.ErrCategoryNotFound, want: "Category not found."},
		{name: "publisher not found", err: store.ErrPublisherNotFound, want: "Publisher not found."},
		{name: "book not found", err: store.ErrBookNotFound, want: "Book not found."},
		{name: "author exists", err: store.ErrAuthorExists, want: "Author already exists."},
		{name: "category exists", err: store.ErrCategoryExists, want: "Category already exists."},
		{name: "publisher exists", err: store.ErrPublisherExists, want: "Publisher already exists."},
		{name: "book exists", err: store.ErrBookExists, want: "Book already exists."},
		{name: "email exists", err: store.ErrEmailExists, want: "Email already exists"},
		{name: "invalid token", err: auth.ErrInvalidToken, want: "Could not validate credentials"},
		{name: "inactive user", err: auth.ErrInactiveUser, want: "Inactive user"},
		{name: "wrapped error keeps its message", err: fmt.Errorf("db: %w", store.ErrBookExists), want: "Book already exists."},
		{name: "internal detail never leaks", err: errors.New("pq: connection refused"), want: "Something went wrong."},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}
