package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	ticketHandler *adaptor.TicketHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /movies - List movies (public, anyone can view)
	r.Get("/movies", movieHandler.ListMovies)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Get("/movies/{id}/book", movieHandler.BookingPage)
		r.Post("/movies/{id}/book", ticketHandler.BookTicket)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/admin/movies", func(r chi.Router) {
		r.Use(authenticated(repo, log)) // Must be authenticated
		r.Use(middleware.Admin(log))    // Must be admin

		r.Post("/", movieHandler.CreateMovie)                // POST /admin/movies
		r.Post("/{id}/showtimes", movieHandler.AddShowTime) // POST /admin/movies/{id}/showtimes
	})
}
