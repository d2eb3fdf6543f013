package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ktgktg/blogsmith/internal/api"
	apiMiddleware "github.com/ktgktg/blogsmith/internal/api/middleware"
	"github.com/ktgktg/blogsmith/internal/store"
)

// routerDeps are the collaborators the HTTP routes need.
type routerDeps struct {
	logger         *slog.Logger
	allowedOrigins []string
	requestTimeout time.Duration
	cookie         api.CookieConfig

	tokens        apiMiddleware.TokenValidator
	authenticator api.Authenticator
	generator     api.Generator
	library       api.ArticleLibrary
	credentials   store.CredentialStore
	providers     api.ProviderStatus
	storage       bool
}

// setupRouter wires the application's services into the HTTP routes.
func (app *application) setupRouter() http.Handler {
	return newRouter(routerDeps{
		logger:         app.logger,
		allowedOrigins: app.config.Server.CORSAllowedOrigins,
		requestTimeout: app.config.Server.RequestTimeout,
		cookie: api.CookieConfig{
			Secure: app.config.Auth.CookieSecure,
			Domain: app.config.Auth.CookieDomain,
		},
		tokens:        app.jwtService,
		authenticator: app.authService,
		generator:     app.generation,
		library:       app.generation,
		credentials:   app.credentials,
		providers:     app.pipeline,
		storage:       app.articles != nil,
	})
}

// newRouter creates and configures the router with all routes and middleware.
func newRouter(deps routerDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(deps.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", apiMiddleware.SessionHeaderName},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if deps.requestTimeout > 0 {
		r.Use(middleware.Timeout(deps.requestTimeout))
	}

	authHandler := api.NewAuthHandler(deps.authenticator, deps.cookie, deps.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(deps.tokens)
	generationHandler := api.NewGenerationHandler(deps.generator, deps.logger)
	articleHandler := api.NewArticleHandler(deps.library, deps.logger)
	settingsHandler := api.NewSettingsHandler(deps.credentials, deps.logger)
	healthHandler := api.NewHealthHandler(deps.providers, deps.storage)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)
		r.Post("/auth/refresh", authHandler.RefreshToken)
		r.Get("/health", healthHandler.Health)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/check", authHandler.Check)

			r.Post("/generate/title", generationHandler.GenerateTitle)
			r.Post("/generate/content", generationHandler.GenerateContent)
			r.Post("/generate/draft", generationHandler.GenerateDraft)
			r.Post("/analyze/draft", generationHandler.AnalyzeDraft)
			r.Post("/generate/final", generationHandler.SynthesizeFinal)

			r.Post("/save/article", articleHandler.SaveArticle)
			r.Get("/history/articles", articleHandler.ListArticles)

			r.Get("/settings/api-keys", settingsHandler.GetAPIKeys)
			r.Post("/settings/api-keys", settingsHandler.SaveAPIKeys)
		})
	})

	return r
}
