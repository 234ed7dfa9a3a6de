package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/phaseGateTwo/cms-backend/internal/handlers"
	"github.com/phaseGateTwo/cms-backend/internal/middleware"
	"github.com/phaseGateTwo/cms-backend/internal/services"
	"github.com/phaseGateTwo/cms-backend/internal/storage"
)

// PublicPaths is the allow-list the auth gate skips: the auth endpoints
// themselves plus the health probes. Entries ending in "/" match as
// prefixes, except the bare root which only matches itself.
func PublicPaths() []string {
	return []string{"/", "/health", "/api/auth/"}
}

// SetupRoutes configures the auth gate and all API routes
func SetupRoutes(app *fiber.App, store storage.Store, auth *services.AuthService, tokens *services.TokenService) {

	// The gate runs once per request, before any protected handler.
	app.Use(middleware.RequireAuth(tokens, PublicPaths()...))

	authHandler := handlers.NewAuthHandler(auth)
	profileHandler := handlers.NewProfileHandler(services.NewProfileService(store))
	contactHandler := handlers.NewContactHandler(services.NewContactService(store))

	api := app.Group("/api")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/verify", authHandler.Verify)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/signup/confirm", authHandler.ConfirmSignup)
	authGroup.Post("/login/confirm", authHandler.ConfirmLogin)

	// Profile routes (protected)
	api.Get("/profile", profileHandler.View)
	api.Put("/profile", profileHandler.Update)

	// Contact routes (protected)
	contactGroup := api.Group("/contacts")
	contactGroup.Post("/", contactHandler.Add)
	contactGroup.Get("/", contactHandler.List)
	contactGroup.Get("/:id", contactHandler.Get)
	contactGroup.Put("/:id", contactHandler.Edit)
	contactGroup.Delete("/:id", contactHandler.Delete)
}
