package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/events"
	"movie-booking/pkg/pass"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const passQRCodeSize = 256

type PaymentService interface {
	GetPaymentPage(ctx context.Context, userID uuid.UUID, ticketID string) (*response.PaymentPage, error)
	CompletePayment(ctx context.Context, userID uuid.UUID, ticketID string, req *request.PaymentRequest) (*response.PaymentResponse, error)
	GetSuccessPage(ctx context.Context, userID uuid.UUID, ticketID string) (*response.PaymentSuccessPage, error)
	PassQRCode(ctx context.Context, userID uuid.UUID, ticketID string) ([]byte, error)
	VerifyPass(ctx context.Context, token string) (*response.PassVerification, error)
}

type paymentService struct {
	repo      *repository.Repository
	publisher events.Publisher
	passes    *pass.Issuer
	log       *zap.Logger
}

func NewPaymentService(repo *repository.Repository, publisher events.Publisher, passes *pass.Issuer, log *zap.Logger) PaymentService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &paymentService{
		repo:      repo,
		publisher: publisher,
		passes:    passes,
		log:       log.With(zap.String("service", "payment")),
	}
}

// GetPaymentPage gets or creates the ticket's payment.
func (s *paymentService) GetPaymentPage(ctx context.Context, userID uuid.UUID, ticketID string) (*response.PaymentPage, error) {
	var (
		ticket  *entity.TicketDetail
		payment *entity.Payment
	)

	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		var err error
		ticket, err = findOwnedTicket(ctx, tx, userID, ticketID)
		if err != nil {
			return err
		}
		payment, err = s.openPayment(ctx, tx, ticket)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &response.PaymentPage{
		Ticket:  response.TicketToResponse(ticket),
		Payment: response.PaymentToResponse(payment),
		Fields:  []string{"transaction_id"},
	}, nil
}

// CompletePayment marks the payment completed and the ticket paid. A payment
// that is already completed stays as it is.
func (s *paymentService) CompletePayment(ctx context.Context, userID uuid.UUID, ticketID string, req *request.PaymentRequest) (*response.PaymentResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	var (
		ticket        *entity.TicketDetail
		payment       *entity.Payment
		justCompleted bool
	)

	err := s.repo.InTx(ctx, func(tx *repository.Repository) error {
		var err error
		ticket, err = findOwnedTicket(ctx, tx, userID, ticketID)
		if err != nil {
			return err
		}

		payment, err = s.openPayment(ctx, tx, ticket)
		if err != nil {
			return err
		}

		if !payment.IsCompleted() {
			transactionID := utils.GenerateTransactionID()
			if req.TransactionID != nil {
				transactionID = *req.TransactionID
			}

			justCompleted, err = tx.Payment.Complete(ctx, payment.ID, transactionID)
			if err != nil {
				return err
			}

			if justCompleted {
				payment.Status = entity.PaymentStatusCompleted
				payment.TransactionID = &transactionID
				payment.UpdatedAt = time.Now()
			} else {
				// completed concurrently, take the stored row
				payment, err = tx.Payment.FindByTicketID(ctx, ticket.ID)
				if err != nil {
					return err
				}
				if payment == nil {
					return fmt.Errorf("payment for ticket %s disappeared", ticket.ID)
				}
			}
		}

		if !ticket.IsPaid {
			if err := tx.Ticket.MarkPaid(ctx, ticket.ID, userID); err != nil {
				return err
			}
			ticket.IsPaid = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if justCompleted {
		s.log.Info("Payment completed",
			zap.String("payment_id", payment.ID.String()),
			zap.String("ticket_id", ticket.ID.String()),
			zap.Float64("amount", payment.Amount))
		s.publishCompleted(ctx, userID, payment)
	}

	resp := response.PaymentToResponse(payment)
	return &resp, nil
}

func (s *paymentService) GetSuccessPage(ctx context.Context, userID uuid.UUID, ticketID string) (*response.PaymentSuccessPage, error) {
	ticket, err := findOwnedTicket(ctx, s.repo, userID, ticketID)
	if err != nil {
		return nil, err
	}

	payment, err := s.repo.Payment.FindByTicketID(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, newError(ErrNotFound, "Payment not found")
	}

	page := &response.PaymentSuccessPage{
		Ticket:  response.TicketToResponse(ticket),
		Payment: response.PaymentToResponse(payment),
	}

	if ticket.IsPaid && s.passes != nil {
		token, expiresAt, err := s.passes.Issue(ticket.ID.String(), userID.String())
		if err != nil {
			return nil, err
		}
		page.Pass = &response.PassResponse{
			Token:     token,
			ExpiresAt: expiresAt,
			QRCodeURL: fmt.Sprintf("/tickets/%s/pass.png", ticket.ID),
		}
	}

	return page, nil
}

// PassQRCode renders the pass of a paid ticket as a PNG.
func (s *paymentService) PassQRCode(ctx context.Context, userID uuid.UUID, ticketID string) ([]byte, error) {
	ticket, err := findOwnedTicket(ctx, s.repo, userID, ticketID)
	if err != nil {
		return nil, err
	}
	if !ticket.IsPaid {
		return nil, newError(ErrConflict, "This ticket has not been paid yet.")
	}
	if s.passes == nil {
		return nil, errors.New("pass issuer not configured")
	}

	token, _, err := s.passes.Issue(ticket.ID.String(), userID.String())
	if err != nil {
		return nil, err
	}

	return pass.QRCode(token, passQRCodeSize)
}

// VerifyPass checks a scanned pass: valid signature, not expired, and the
// ticket still exists, belongs to the pass holder and is paid.
func (s *paymentService) VerifyPass(ctx context.Context, token string) (*response.PassVerification, error) {
	invalid := newError(ErrNotFound, "Pass is invalid or expired")
	if s.passes == nil {
		return nil, invalid
	}

	claims, err := s.passes.Parse(token)
	if err != nil {
		return nil, invalid
	}

	ticketID, err := uuid.Parse(claims.TicketID)
	if err != nil {
		return nil, invalid
	}

	ticket, err := s.repo.Ticket.FindByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket == nil || !ticket.IsPaid || ticket.UserID.String() != claims.Subject {
		return nil, invalid
	}

	resp := &response.PassVerification{
		Valid:      true,
		TicketID:   ticket.ID.String(),
		MovieTitle: ticket.MovieTitle,
		ShowTime:   ticket.ShowTime.Format("15:04"),
		Quantity:   ticket.Quantity,
	}
	if ticket.SeatNumber != nil {
		resp.SeatNumber = *ticket.SeatNumber
	}
	return resp, nil
}

// openPayment returns the ticket's payment, creating it pending when absent.
// A pending amount follows the current price and quantity; a completed one is
// never touched.
func (s *paymentService) openPayment(ctx context.Context, tx *repository.Repository, ticket *entity.TicketDetail) (*entity.Payment, error) {
	amount := entity.AmountFor(ticket.MoviePrice, ticket.Quantity)

	payment, err := tx.Payment.FindByTicketID(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}

	if payment == nil {
		now := time.Now()
		candidate := &entity.Payment{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			TicketID: ticket.ID,
			Amount:   amount,
			Status:   entity.PaymentStatusPending,
		}

		created, err := tx.Payment.CreateIfAbsent(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if created {
			s.log.Info("Payment created",
				zap.String("payment_id", candidate.ID.String()),
				zap.String("ticket_id", ticket.ID.String()),
				zap.Float64("amount", amount))
			return candidate, nil
		}

		// another request created it first
		payment, err = tx.Payment.FindByTicketID(ctx, ticket.ID)
		if err != nil {
			return nil, err
		}
		if payment == nil {
			return nil, fmt.Errorf("payment for ticket %s not found after conflict", ticket.ID)
		}
	}

	if !payment.IsCompleted() && !sameAmount(payment.Amount, amount) {
		if err := tx.Payment.UpdateAmount(ctx, payment.ID, amount); err != nil {
			return nil, err
		}
		payment.Amount = amount
	}

	return payment, nil
}

func (s *paymentService) publishCompleted(ctx context.Context, userID uuid.UUID, payment *entity.Payment) {
	event := events.PaymentCompletedEvent{
		PaymentID:   payment.ID.String(),
		TicketID:    payment.TicketID.String(),
		UserID:      userID.String(),
		Amount:      payment.Amount,
		CompletedAt: payment.UpdatedAt,
	}
	if payment.TransactionID != nil {
		event.TransactionID = *payment.TransactionID
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := s.publisher.Publish(pubCtx, events.PaymentCompletedQueue, event); err != nil {
		s.log.Warn("Failed to publish payment completed event",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()))
	}
}

func sameAmount(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}
