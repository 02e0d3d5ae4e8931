package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireTicket(
	r chi.Router,
	ticketHandler *adaptor.TicketHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES ====================
	// Group, bukan Route: /tickets/{id}/payment* didaftarkan di wirePayment
	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Get("/tickets", ticketHandler.ListTickets)
		r.Get("/tickets/{id}/edit", ticketHandler.EditPage)
		r.Post("/tickets/{id}/edit", ticketHandler.UpdateTicket)
		r.Get("/tickets/{id}/delete", ticketHandler.DeletePage)
		r.Post("/tickets/{id}/delete", ticketHandler.DeleteTicket)
	})
}
