package routes

import (
	"github.com/go-chi/chi/v5"

	"lostark-hub/partyfinder/internal/api"
	"lostark-hub/partyfinder/internal/middleware"
)

// RegisterAuthRoutes registers the Discord login flow and session endpoints.
func RegisterAuthRoutes(r chi.Router, handlers *api.Handlers, limiter *middleware.RateLimiter) {
	r.Group(func(authed chi.Router) {
		authed.Use(limiter.Middleware)
		authed.Post("/login", handlers.Login())
		authed.Get("/discord/redirect", handlers.DiscordRedirect())
		authed.Post("/logout", handlers.Logout())
		authed.Post("/change-language", handlers.ChangeLanguage())
	})
}

// RegisterAPIRoutes registers the character and party finder JSON API.
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, limiter *middleware.RateLimiter) {
	r.Route("/api", func(a chi.Router) {
		// Public reads
		a.Get("/catalog/{contentType}", handlers.GetCatalog())
		a.Get("/party-find-post", handlers.ListPosts())
		a.Get("/party-find-post/{id}", handlers.GetPost())

		// Signed-in users
		a.Group(func(user chi.Router) {
			user.Use(middleware.RequireSession)
			user.Use(limiter.Middleware)

			user.Get("/session", handlers.CurrentSession())

			user.Get("/character", handlers.ListCharacters())
			user.Post("/character/add", handlers.AddCharacter())
			user.Post("/character/{id}/edit", handlers.EditCharacter())
			user.Post("/character/{id}/delete", handlers.DeleteCharacter())

			user.Post("/party-find-post/add", handlers.CreatePost())
			user.Post("/party-find-post/{id}/edit", handlers.EditPost())
			user.Post("/party-find-post/{id}/delete", handlers.DeletePost())
			user.Post("/party-find-post/{id}/apply", handlers.ApplyPost())
			user.Post("/party-find-post/{id}/approve", handlers.ApprovePost())
			user.Post("/party-find-post/{id}/deny", handlers.DenyPost())
			user.Post("/party-find-post/{id}/kick", handlers.KickPost())
			user.Post("/party-find-post/{id}/leave", handlers.LeavePost())
		})
	})
}

// RegisterSeedRoutes registers the reference data loaders, gated by the Discord id allow-list.
func RegisterSeedRoutes(r chi.Router, handlers *api.Handlers, allowList []string) {
	r.Route("/seed", func(s chi.Router) {
		s.Use(middleware.RequireSession)
		s.Use(middleware.IsSeederMiddleware(allowList))

		s.Get("/regions", handlers.SeedRegions())
		s.Get("/all", handlers.SeedAll())
		s.Get("/{contentType}", handlers.SeedContent())
	})
}
