package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/draftwise/draftwise-api/internal/api"
	apiMiddleware "github.com/draftwise/draftwise-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		&app.config.Auth,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	articleHandler := api.NewArticleHandler(app.articleService, app.pageScraper)
	notificationHandler := api.NewNotificationHandler(app.notificationService)
	slackHandler := api.NewSlackHandler(app.slackService)
	triggerHandler := api.NewTriggerHandler(app.triggerService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Slack redirects the user's browser here after consent, so the
		// callback cannot carry a bearer token. The signed state parameter
		// ties the request back to the initiating user.
		r.Get("/slack/oauth/callback", slackHandler.OAuthCallback)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Article endpoints
			r.Post("/articles/research-brief", articleHandler.GenerateResearchBrief)
			r.Post("/articles/{id}/generate", articleHandler.GenerateArticle)
			r.Get("/articles/brief/{id}", articleHandler.GetBrief)
			r.Get("/articles/user/{userID}", articleHandler.GetUserArticles)
			r.Put("/articles/brief/{id}/brandtone", articleHandler.UpdateBrandTone)
			r.Delete("/articles/{id}", articleHandler.DeleteArticle)
			r.Get("/articles/{id}/html", articleHandler.RenderHTML)
			r.Post("/articles/scrape", articleHandler.Scrape)

			// Notification endpoints
			r.Post("/notifications/send", notificationHandler.Send)
			r.Get("/notifications/history/{userID}", notificationHandler.GetHistory)

			// Slack workspace endpoints
			r.Get("/slack/oauth/start", slackHandler.OAuthStart)
			r.Post("/slack/send-message", slackHandler.SendMessage)
			r.Get("/slack/status", slackHandler.Status)
			r.Put("/slack/channel", slackHandler.UpdateChannel)
			r.Delete("/slack/disconnect", slackHandler.Disconnect)

			// Event trigger endpoints
			r.Post("/triggers/send", triggerHandler.Send)
			r.Post("/triggers/test", triggerHandler.SendTest)
			r.Get("/triggers/supported-events", triggerHandler.SupportedEvents)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
