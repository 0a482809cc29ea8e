package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/futliga/championship-system/handlers"
	"github.com/futliga/championship-system/middleware"
	"github.com/futliga/championship-system/models"
)

// SetupRoutes собирает все маршруты приложения.
// Чтение открыто всем, запись доступна админам и организаторам.
func SetupRoutes(
	router *chi.Mux,
	jwtSecretKey string,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	playerHandler *handlers.PlayerHandler,
	championshipHandler *handlers.ChampionshipHandler,
	matchHandler *handlers.MatchHandler,
	statisticsHandler *handlers.StatisticsHandler,
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

	authenticate := middleware.Authenticate(jwtSecretKey)
	manageOnly := middleware.Authorize(models.RoleAdmin, models.RoleOrganizer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Аутентификация и профиль
	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)
	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/auth/profile", authHandler.GetProfile)
		r.Put("/auth/profile", authHandler.UpdateProfile)
	})

	// Команды
	router.Route("/teams", func(r chi.Router) {
		r.Get("/", teamHandler.ListTeams)
		r.Get("/{teamID}", teamHandler.GetTeamByID)
		r.Get("/{teamID}/players", teamHandler.ListTeamPlayers)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(manageOnly)

			r.Post("/", teamHandler.CreateTeam)
			r.Put("/{teamID}", teamHandler.UpdateTeam)
			r.Delete("/{teamID}", teamHandler.DeleteTeam)
			r.Post("/{teamID}/logo", teamHandler.UploadLogo)
		})
	})

	// Игроки
	router.Route("/players", func(r chi.Router) {
		r.Get("/{playerID}", playerHandler.GetPlayerByID)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(manageOnly)

			r.Post("/", playerHandler.CreatePlayer)
			r.Put("/{playerID}", playerHandler.UpdatePlayer)
			r.Delete("/{playerID}", playerHandler.DeletePlayer)
		})
	})

	// Чемпионаты, заявки и календарь
	router.Route("/championships", func(r chi.Router) {
		r.Get("/", championshipHandler.ListChampionships)
		r.Get("/{championshipID}", championshipHandler.GetChampionshipByID)
		r.Get("/{championshipID}/teams", championshipHandler.ListTeams)
		r.Get("/{championshipID}/matches", championshipHandler.ListMatches)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(manageOnly)

			r.Post("/", championshipHandler.CreateChampionship)
			r.Put("/{championshipID}", championshipHandler.UpdateChampionship)
			r.Delete("/{championshipID}", championshipHandler.DeleteChampionship)
			r.Post("/{championshipID}/teams", championshipHandler.AddTeam)
			r.Delete("/{championshipID}/teams/{teamID}", championshipHandler.RemoveTeam)
			r.Post("/{championshipID}/fixtures", championshipHandler.GenerateFixtures)
		})
	})

	// Статистика (публичная)
	router.Route("/statistics/championships/{championshipID}", func(r chi.Router) {
		r.Get("/standings", statisticsHandler.GetStandings)
		r.Get("/top-scorers", statisticsHandler.GetTopScorers)
		r.Get("/cards", statisticsHandler.GetCardTally)
	})

	// Матчи и журнал событий
	router.Route("/matches", func(r chi.Router) {
		r.Get("/{matchID}", matchHandler.GetMatchByID)
		r.Get("/{matchID}/events", matchHandler.ListEvents)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Use(manageOnly)

			r.Post("/", matchHandler.CreateMatch)
			r.Put("/{matchID}", matchHandler.UpdateMatch)
			r.Delete("/{matchID}", matchHandler.DeleteMatch)
			r.Post("/{matchID}/events", matchHandler.RecordEvent)
		})
	})

	// Живая трансляция событий матча
	router.Get("/ws/matches/{matchID}", webSocketHandler.ServeMatch)
}
