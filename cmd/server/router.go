package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mdelucas/libris-api/internal/api"
	apiMiddleware "github.com/mdelucas/libris-api/internal/api/middleware"
	"github.com/mdelucas/libris-api/internal/api/shared"
)

// setupRouter builds the chi router with all middleware, handlers and
// routes. Reads are public; mutating category routes always require a
// bearer token, and mutating book routes require one unless
// auth.protect_book_writes is disabled.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(apiMiddleware.Trace)

	authorHandler := api.NewAuthorHandler(app.authorStore, app.bookStore, app.transactor, app.logger)
	categoryHandler := api.NewCategoryHandler(app.categoryStore, app.bookStore, app.transactor, app.logger)
	publisherHandler := api.NewPublisherHandler(app.publisherStore, app.bookStore, app.transactor, app.logger)
	bookHandler := api.NewBookHandler(
		app.bookStore,
		app.authorStore,
		app.categoryStore,
		app.publisherStore,
		app.transactor,
		app.logger,
	)
	userHandler := api.NewUserHandler(app.userStore, app.passwordHasher, app.logger)
	authHandler := api.NewAuthHandler(app.userStore, app.tokenService, app.passwordHasher, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.tokenService, app.userStore)

	r.Post("/auth/token", authHandler.Token)

	r.Route("/authors", func(r chi.Router) {
		r.Get("/", authorHandler.List)
		r.Post("/", authorHandler.Create)
		r.Get("/{id}", authorHandler.GetByID)
		r.Patch("/{id}", authorHandler.Update)
		r.Delete("/{id}", authorHandler.Delete)
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", categoryHandler.List)
		r.Get("/{id}", categoryHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/", categoryHandler.Create)
			r.Patch("/{id}", categoryHandler.Update)
			r.Delete("/{id}", categoryHandler.Delete)
		})
	})

	r.Route("/publishers", func(r chi.Router) {
		r.Get("/", publisherHandler.List)
		r.Post("/", publisherHandler.Create)
		r.Get("/{id}", publisherHandler.GetByID)
		r.Patch("/{id}", publisherHandler.Update)
		r.Delete("/{id}", publisherHandler.Delete)
	})

	r.Route("/books", func(r chi.Router) {
		r.Get("/", bookHandler.List)
		r.Get("/{id}", bookHandler.GetByID)

		r.Group(func(r chi.Router) {
			if app.config.Auth.ProtectBookWrites {
				r.Use(authMiddleware.Authenticate)
			}
			r.Post("/", bookHandler.Create)
			r.Patch("/{id}", bookHandler.Update)
			r.Delete("/{id}", bookHandler.Delete)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Register)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/me", userHandler.Me)
		})
	})

	r.Get("/health_check", func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"message": "Up and running :)"})
	})

	return r
}
