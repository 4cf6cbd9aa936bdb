package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/michae1michae1/tennis-backend/handlers"
	"github.com/michae1michae1/tennis-backend/middleware"
	"github.com/michae1michae1/tennis-backend/models"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	organizerRoles := []string{string(models.RoleOrganizer), string(models.RoleAdmin)}

	router.Post("/auth/signup", authHandler.SignUp)
	router.Post("/auth/login", authHandler.Login)

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.List)
		r.Get("/{id}", playerHandler.GetByID)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/", playerHandler.Create)
			r.Put("/{id}", playerHandler.Update)
			r.Post("/{id}/photo", playerHandler.UploadPhoto)

			r.With(auth.Authorize(organizerRoles...)).Delete("/{id}", playerHandler.Deactivate)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.List)
		r.Get("/{id}", tournamentHandler.GetByID)
		r.Get("/{id}/standings", tournamentHandler.Standings)
		r.Get("/{id}/bracket", tournamentHandler.Bracket)
		r.Get("/{id}/matches", matchHandler.ListByTournament)

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Post("/{id}/players", tournamentHandler.RegisterPlayer)
			r.Post("/{id}/matches", matchHandler.Schedule)

			r.Group(func(r chi.Router) {
				r.Use(auth.Authorize(organizerRoles...))
				r.Post("/", tournamentHandler.Create)
				r.Put("/{id}", tournamentHandler.Update)
				r.Patch("/{id}/status", tournamentHandler.UpdateStatus)
				r.Post("/{id}/phases/{phaseID}/bracket", tournamentHandler.GenerateBracket)
			})
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/{id}", matchHandler.GetByID)

		r.With(auth.Authenticate).Post("/{id}/score", matchHandler.ReportScore)
	})

	router.Get("/ws/tournaments/{id}", webSocketHandler.ServeWs)
}
