package usecase

import (
	"movie-booking/internal/data/repository"
	"movie-booking/pkg/cache"
	"movie-booking/pkg/events"
	"movie-booking/pkg/pass"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Movie   MovieService
	Ticket  TicketService
	Payment PaymentService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	movieCache *cache.Cache,
	publisher events.Publisher,
	passes *pass.Issuer,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Movie:   NewMovieService(repo, movieCache, log),
		Ticket:  NewTicketService(repo, log),
		Payment: NewPaymentService(repo, publisher, passes, log),
	}
}
