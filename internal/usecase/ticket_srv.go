package usecase

import (
	"context"
	"errors"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const msgTicketPaid = "This ticket has been paid and can no longer be changed."

type TicketService interface {
	BookTicket(ctx context.Context, userID uuid.UUID, movieID string, req *request.TicketRequest) (*response.TicketResponse, error)
	ListTickets(ctx context.Context, userID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error)
	GetTicket(ctx context.Context, userID uuid.UUID, ticketID string) (*response.TicketResponse, error)
	GetEditPage(ctx context.Context, userID uuid.UUID, ticketID string) (*response.TicketEditPage, error)
	UpdateTicket(ctx context.Context, userID uuid.UUID, ticketID string, req *request.TicketRequest) (*response.TicketResponse, error)
	DeleteTicket(ctx context.Context, userID uuid.UUID, ticketID string) error
}

type ticketService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTicketService(repo *repository.Repository, log *zap.Logger) TicketService {
	return &ticketService{
		repo: repo,
		log:  log.With(zap.String("service", "ticket")),
	}
}

// BookTicket creates one unpaid ticket for the caller. Seats are not checked
// for availability.
func (s *ticketService) BookTicket(ctx context.Context, userID uuid.UUID, movieID string, req *request.TicketRequest) (*response.TicketResponse, error) {
	mID, err := parseID(movieID, "Movie")
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, mID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, newError(ErrNotFound, "Movie not found")
	}

	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	showTimeID, err := showTimeIDFrom(req)
	if err != nil {
		return nil, err
	}

	showTime, err := s.repo.ShowTime.FindByIDAndMovie(ctx, showTimeID, movie.ID)
	if err != nil {
		return nil, err
	}
	if showTime == nil {
		return nil, newError(ErrNotFound, "Show time not found")
	}

	now := time.Now()
	ticket := &entity.Ticket{
		ID:          uuid.New(),
		UserID:      userID,
		MovieID:     movie.ID,
		ShowTimeID:  showTime.ID,
		Quantity:    req.QuantityOrDefault(),
		SeatNumber:  req.SeatNumber,
		BookingDate: now,
		IsPaid:      false,
		UpdatedAt:   now,
	}

	if err := s.repo.Ticket.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.log.Info("Ticket booked",
		zap.String("ticket_id", ticket.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("movie_id", movie.ID.String()),
		zap.Int("quantity", ticket.Quantity))

	resp := response.TicketToResponse(&entity.TicketDetail{
		Ticket:     *ticket,
		MovieTitle: movie.Title,
		MoviePrice: movie.Price,
		ShowTime:   showTime.ShowTime,
	})
	return &resp, nil
}

func (s *ticketService) ListTickets(ctx context.Context, userID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	page, limit := req.Page, req.Limit()
	if page < 1 {
		page = 1
	}

	tickets, err := s.repo.Ticket.FindByUserID(ctx, userID, req.Offset(), limit)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Ticket.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.TicketsToResponse(tickets), page, limit, total), nil
}

func (s *ticketService) GetTicket(ctx context.Context, userID uuid.UUID, ticketID string) (*response.TicketResponse, error) {
	ticket, err := findOwnedTicket(ctx, s.repo, userID, ticketID)
	if err != nil {
		return nil, err
	}

	resp := response.TicketToResponse(ticket)
	return &resp, nil
}

func (s *ticketService) GetEditPage(ctx context.Context, userID uuid.UUID, ticketID string) (*response.TicketEditPage, error) {
	ticket, err := findOwnedTicket(ctx, s.repo, userID, ticketID)
	if err != nil {
		return nil, err
	}

	showTimes, err := s.repo.ShowTime.FindByMovieID(ctx, ticket.MovieID)
	if err != nil {
		return nil, err
	}

	return &response.TicketEditPage{
		Ticket:    response.TicketToResponse(ticket),
		ShowTimes: response.ShowTimesToResponse(showTimes),
		Fields:    []string{"show_time", "quantity", "seat_number"},
	}, nil
}

// UpdateTicket changes showtime, quantity and seat. The showtime may belong to
// another movie; the ticket's movie follows it.
func (s *ticketService) UpdateTicket(ctx context.Context, userID uuid.UUID, ticketID string, req *request.TicketRequest) (*response.TicketResponse, error) {
	ticket, err := findOwnedTicket(ctx, s.repo, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsPaid {
		return nil, newError(ErrConflict, msgTicketPaid)
	}

	req.Normalize()
	if err := validate(req); err != nil {
		return nil, err
	}

	showTimeID, err := showTimeIDFrom(req)
	if err != nil {
		return nil, err
	}

	showTime, err := s.repo.ShowTime.FindByID(ctx, showTimeID)
	if err != nil {
		return nil, err
	}
	if showTime == nil {
		return nil, &ValidationError{Fields: map[string]string{"show_time": "Select a valid choice"}}
	}

	movie := &entity.Movie{Title: ticket.MovieTitle, Price: ticket.MoviePrice}
	if showTime.MovieID != ticket.MovieID {
		movie, err = s.repo.Movie.FindByID(ctx, showTime.MovieID)
		if err != nil {
			return nil, err
		}
		if movie == nil {
			return nil, newError(ErrNotFound, "Movie not found")
		}
	}

	updated := ticket.Ticket
	updated.MovieID = showTime.MovieID
	updated.ShowTimeID = showTime.ID
	updated.Quantity = req.QuantityOrDefault()
	updated.SeatNumber = req.SeatNumber
	updated.UpdatedAt = time.Now()

	if err := s.repo.Ticket.Update(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, repository.ErrLocked):
			return nil, newError(ErrConflict, msgTicketPaid)
		case errors.Is(err, repository.ErrNotFound):
			return nil, newError(ErrNotFound, "Ticket not found")
		}
		return nil, err
	}

	s.log.Info("Ticket updated",
		zap.String("ticket_id", updated.ID.String()),
		zap.String("user_id", userID.String()))

	resp := response.TicketToResponse(&entity.TicketDetail{
		Ticket:     updated,
		MovieTitle: movie.Title,
		MoviePrice: movie.Price,
		ShowTime:   showTime.ShowTime,
	})
	return &resp, nil
}

// DeleteTicket removes the ticket and, by cascade, its payment.
func (s *ticketService) DeleteTicket(ctx context.Context, userID uuid.UUID, ticketID string) error {
	id, err := parseID(ticketID, "Ticket")
	if err != nil {
		return err
	}

	if err := s.repo.Ticket.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, "Ticket not found")
		}
		return err
	}
	return nil
}

// findOwnedTicket loads a ticket owned by userID. Other users' tickets are not found.
func findOwnedTicket(ctx context.Context, repo *repository.Repository, userID uuid.UUID, ticketID string) (*entity.TicketDetail, error) {
	id, err := parseID(ticketID, "Ticket")
	if err != nil {
		return nil, err
	}

	ticket, err := repo.Ticket.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, newError(ErrNotFound, "Ticket not found")
	}
	return ticket, nil
}

func showTimeIDFrom(req *request.TicketRequest) (uuid.UUID, error) {
	id, err := uuid.Parse(req.ShowTimeID)
	if err != nil {
		return uuid.Nil, &ValidationError{Fields: map[string]string{"show_time": "Must be a valid UUID"}}
	}
	return id, nil
}
