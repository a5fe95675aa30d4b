package routes

import (
	"log/slog"
	"net/http"

	_ "github.com/Dosada05/football-console/docs"
	"github.com/Dosada05/football-console/handlers"
	"github.com/Dosada05/football-console/metrics"
	"github.com/Dosada05/football-console/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	Logger         *slog.Logger
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	tournamentHandler *handlers.TournamentHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	matchHandler *handlers.MatchHandler,
	dashboardHandler *handlers.DashboardHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/healthz", handlers.Healthz)
	router.Method(http.MethodGet, "/metrics", metrics.Handler())
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket без JWT: браузер не передает заголовок Authorization при апгрейде
	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Route("/api/v1", func(r chi.Router) {
		// Recorder не поддерживает Hijack, поэтому метрики только здесь
		r.Use(metrics.InstrumentHandler)
		r.Use(middleware.Authenticate(opts.JWTSecret, logger))

		r.Get("/dashboard", dashboardHandler.Stats)

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", tournamentHandler.ListHandler)
			r.Post("/", tournamentHandler.CreateHandler)
			r.Get("/overview", tournamentHandler.OverviewHandler)

			r.Route("/{tournamentID}", func(r chi.Router) {
				r.Get("/", tournamentHandler.GetHandler)
				r.Put("/", tournamentHandler.UpdateHandler)
				r.Delete("/", tournamentHandler.DeleteHandler)

				r.Get("/standings", tournamentHandler.StandingsHandler)
				r.Post("/fixtures", tournamentHandler.GenerateFixturesHandler)

				r.Route("/teams", func(r chi.Router) {
					r.Get("/", tournamentHandler.ListTeamsHandler)
					r.Post("/", tournamentHandler.AssignTeamsHandler)
					r.Put("/", tournamentHandler.ReplaceTeamsHandler)
					r.Get("/available", tournamentHandler.AvailableTeamsHandler)
					r.Delete("/{teamID}", tournamentHandler.RemoveTeamHandler)
				})
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", teamHandler.ListTeams)
			r.Post("/", teamHandler.CreateTeam)
			r.Route("/{teamID}", func(r chi.Router) {
				r.Get("/", teamHandler.GetTeamByID)
				r.Put("/", teamHandler.UpdateTeam)
				r.Delete("/", teamHandler.DeleteTeam)
				r.Post("/logo", teamHandler.UploadTeamLogo)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", playerHandler.ListPlayers)
			r.Post("/", playerHandler.CreatePlayer)
			r.Delete("/{playerID}", playerHandler.DeletePlayer)
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.ListMatches)
			r.Post("/", matchHandler.ScheduleMatch)
			r.Route("/{matchID}", func(r chi.Router) {
				r.Get("/", matchHandler.GetMatch)
				r.Delete("/", matchHandler.DeleteMatch)
				r.Put("/score", matchHandler.RecordScore)
				r.Patch("/status", matchHandler.UpdateStatus)
			})
		})
	})
}
