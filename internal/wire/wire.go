// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/cache"
	"movie-booking/pkg/events"
	"movie-booking/pkg/middleware"
	"movie-booking/pkg/pass"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Infra holds optional external services. A nil Redis client or Publisher disables them.
type Infra struct {
	Redis     *redis.Client
	Publisher events.Publisher
}

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, infra Infra, config *utils.Config, logger *zap.Logger) *App {
	movieCache := cache.New(infra.Redis, config.Redis.KeyPrefix, config.Redis.CacheTTL)
	passes := pass.NewIssuer(config.Pass.Secret, time.Duration(config.Pass.ExpiryHours)*time.Hour, config.App.Name)

	// Initialize services dan handlers
	service := usecase.NewService(repo, config, movieCache, infra.Publisher, passes, logger)
	handler := adaptor.NewHandler(service, config, logger)

	limiter := middleware.NewRateLimiter(infra.Redis, config.Redis.KeyPrefix, config.RateLimit.PerMinute)

	// Setup router
	router := setupRouter(handler, repo, limiter, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	limiter middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/movies", http.StatusFound)
	})

	// Apply routes
	wireAuth(r, handler.Auth, limiter, config, logger)
	wireMovie(r, handler.Movie, handler.Ticket, repo, logger)
	wireTicket(r, handler.Ticket, repo, logger)
	wirePayment(r, handler.Payment, repo, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

// authenticated is the middleware chain for routes that need a logged-in user
func authenticated(repo *repository.Repository, log *zap.Logger) func(http.Handler) http.Handler {
	return middleware.AuthSession(repo.Session, repo.User, log)
}
