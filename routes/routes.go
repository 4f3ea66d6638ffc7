package routes

import (
	"net/http"

	_ "github.com/Dosada05/tournament-badges/docs"
	"github.com/Dosada05/tournament-badges/handlers"
	"github.com/Dosada05/tournament-badges/middleware"
	"github.com/Dosada05/tournament-badges/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Badge     *handlers.BadgeHandler
	Team      *handlers.TeamHandler
	WebSocket *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	// AccessLog выключается в тестах
	AccessLog bool
}

func SetupRoutes(h Handlers, opts Options) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	if opts.AccessLog {
		router.Use(chiMiddleware.Logger)
	}
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(opts.JWTSecret)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Auth.Register)
		r.Post("/signin", h.Auth.Login)
	})

	router.Route("/users", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/me", h.User.GetMe)
		r.Get("/search", h.User.SearchUsers)
	})

	router.Route("/badges", func(r chi.Router) {
		r.Get("/", h.Badge.ListBadges)
		r.Get("/{badgeID}", h.Badge.GetBadge)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/managed", h.Badge.ListManagedBadges)
			r.Post("/{badgeID}/edit", h.Badge.EditBadge)
			r.Post("/{badgeID}/preview", h.Badge.PreviewChanges)
			r.With(middleware.Authorize(models.RoleAdmin)).Post("/{badgeID}/image", h.Badge.UploadImage)
		})
	})

	router.Route("/tournaments/{tournamentID}/teams", func(r chi.Router) {
		r.Use(authenticate)
		r.Post("/", h.Team.CreateTeam)
		r.Get("/mine", h.Team.GetMyTeam)
		r.Post("/join/{inviteCode}", h.Team.JoinTeam)
		r.Delete("/{teamID}", h.Team.DeleteTeam)
		r.Post("/{teamID}/leave", h.Team.LeaveTeam)
	})

	router.Route("/ws", func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/tournaments/{tournamentID}", h.WebSocket.ServeTournament)
		r.Get("/badges/{badgeID}", h.WebSocket.ServeBadge)
	})

	return router
}
