package adaptor

import (
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Movie   *MovieHandler
	Ticket  *TicketHandler
	Payment *PaymentHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, config.Session, log),
		Movie:   NewMovieHandler(service.Movie, log),
		Ticket:  NewTicketHandler(service.Ticket, log),
		Payment: NewPaymentHandler(service.Payment, log),
	}
}
