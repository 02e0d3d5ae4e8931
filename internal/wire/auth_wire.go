package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/pkg/middleware"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	limiter middleware.RateLimiter,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/signup", authHandler.SignupPage)
	r.Get("/login", authHandler.LoginPage)

	// Form submit dibatasi per IP
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(limiter, config.RateLimit.PerMinute, log))

		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
	})

	// Logout works with or without a session
	r.Get("/logout", authHandler.Logout)
	r.Post("/logout", authHandler.Logout)
}
