package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates author", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/authors/", CreateAuthorRequest{Name: "Tolkien"})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp AuthorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Tolkien", resp.Name)
		assert.Empty(t, resp.Books)
	})

	t.Run("duplicate name", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedAuthor(t, "Tolkien")

		rec := env.do(t, http.MethodPost, "/authors/", CreateAuthorRequest{Name: "Tolkien"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Author already exists.", errorDetail(t, rec))
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/authors/", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPost, "/authors/", "{not json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid request format", errorDetail(t, rec))
	})
}

func TestAuthorGetByID(t *testing.T) {
	t.Parallel()

	t.Run("found with books", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		author := env.seedAuthor(t, "Tolkien")
		category := env.seedCategory(t, "Fantasy")
		publisher := env.seedPublisher(t, "Allen & Unwin")
		env.seedBook(t, "The Hobbit", author.ID, category.ID, publisher.ID)

		rec := env.do(t, http.MethodGet, "/authors/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Tolkien", resp.Name)
		require.Len(t, resp.Books, 1)
		assert.Equal(t, "The Hobbit", resp.Books[0].Name)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/authors/42", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Author not found.", errorDetail(t, rec))
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/authors/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("no books key when empty", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedAuthor(t, "Tolkien")

		rec := env.do(t, http.MethodGet, "/authors/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, rec.Body.String(), `"books"`)
	})
}

func TestAuthorList(t *testing.T) {
	t.Parallel()

	t.Run("all authors", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedAuthor(t, "Tolkien")
		env.seedAuthor(t, "Le Guin")

		rec := env.do(t, http.MethodGet, "/authors/", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []AuthorResponse
		decodeBody(t, rec, &resp)
		require.Len(t, resp, 2)
		assert.Equal(t, "Tolkien", resp[0].Name)
		assert.Equal(t, "Le Guin", resp[1].Name)
	})

	t.Run("empty result is an array", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/authors/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})

	t.Run("name filter matches substring case-insensitively", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedAuthor(t, "Tolkien")
		env.seedAuthor(t, "Le Guin")

		rec := env.do(t, http.MethodGet, "/authors/?name=tol", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp []AuthorResponse
		decodeBody(t, rec, &resp)
		require.Len(t, resp, 1)
		assert.Equal(t, "Tolkien", resp[0].Name)
	})

	t.Run("name filter bounds", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		for _, name := range []string{"ab", "123456789012345678901"} {
			rec := env.do(t, http.MethodGet, "/authors/?name="+name, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "filter %q", name)
		}
	})
}

func TestAuthorUpdate(t *testing.T) {
	t.Parallel()

	t.Run("renames author", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedAuthor(t, "Tolkein")

		rec := env.do(t, http.MethodPatch, "/authors/1", map[string]string{"name": "Tolkien"})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Tolkien", resp.Name)
	})

	t.Run("empty payload leaves row unchanged", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedAuthor(t, "Tolkien")

		rec := env.do(t, http.MethodPatch, "/authors/1", map[string]string{})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthorResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Tolkien", resp.Name)
	})

	t.Run("missing row", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodPatch, "/authors/42", map[string]string{"name": "Tolkien"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Author not found.", errorDetail(t, rec))
	})

	t.Run("rename onto existing name", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedAuthor(t, "Tolkien")
		env.seedAuthor(t, "Le Guin")

		rec := env.do(t, http.MethodPatch, "/authors/2", map[string]string{"name": "Tolkien"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Author already exists.", errorDetail(t, rec))
	})
}

func TestAuthorDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes and acknowledges", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.seedAuthor(t, "Tolkien")

		rec := env.do(t, http.MethodDelete, "/authors/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"ok": true}`, rec.Body.String())

		rec = env.do(t, http.MethodGet, "/authors/1", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing row", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(t, http.MethodDelete, "/authors/42", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Author not found.", errorDetail(t, rec))
	})

	t.Run("no books survive the author", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		author := env.seedAuthor(t, "Tolkien")
		category := env.seedCategory(t, "Fantasy")
		publisher := env.seedPublisher(t, "Allen & Unwin")
		env.seedBook(t, "The Hobbit", author.ID, category.ID, publisher.ID)
		env.seedBook(t, "The Silmarillion", author.ID, category.ID, publisher.ID)

		rec := env.do(t, http.MethodDelete, "/authors/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		// The database does this through ON DELETE CASCADE; the in-memory
		// store mirrors it explicitly.
		env.books.DeleteByAuthor(author.ID)

		rec = env.do(t, http.MethodGet, "/books/", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, "[]", rec.Body.String())
	})
}
