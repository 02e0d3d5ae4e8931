package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PaymentRepository interface {
	CreateIfAbsent(ctx context.Context, payment *entity.Payment) (bool, error)
	FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*entity.Payment, error)
	UpdateAmount(ctx context.Context, id uuid.UUID, amount float64) error
	Complete(ctx context.Context, id uuid.UUID, transactionID string) (bool, error)
}

type paymentRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPaymentRepository(db database.Querier, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

// CreateIfAbsent inserts the payment unless the ticket already has one.
// It reports whether this call created the row.
func (r *paymentRepository) CreateIfAbsent(ctx context.Context, payment *entity.Payment) (bool, error) {
	query := `
		INSERT INTO payments (id, ticket_id, amount, status, transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (ticket_id) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.TicketID,
		payment.Amount,
		payment.Status,
		payment.TransactionID,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("ticket_id", payment.TicketID.String()),
		)
		return false, fmt.Errorf("create payment for ticket %s: %w", payment.TicketID, err)
	}

	return result.RowsAffected() == 1, nil
}

func (r *paymentRepository) FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, ticket_id, amount, status, transaction_id, created_at, updated_at
		FROM payments
		WHERE ticket_id = $1
	`

	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, ticketID).Scan(
		&payment.ID,
		&payment.TicketID,
		&payment.Amount,
		&payment.Status,
		&payment.TransactionID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ticket",
			zap.Error(err),
			zap.String("ticket_id", ticketID.String()),
		)
		return nil, fmt.Errorf("find payment for ticket %s: %w", ticketID, err)
	}

	return &payment, nil
}

// UpdateAmount only touches pending payments; a completed amount is frozen.
func (r *paymentRepository) UpdateAmount(ctx context.Context, id uuid.UUID, amount float64) error {
	query := `
		UPDATE payments
		SET amount = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	if _, err := r.db.Exec(ctx, query, id, amount); err != nil {
		r.log.Error("Failed to update payment amount",
			zap.Error(err),
			zap.String("payment_id", id.String()),
			zap.Float64("amount", amount),
		)
		return fmt.Errorf("update payment %s amount: %w", id, err)
	}

	return nil
}

// Complete moves a pending payment to completed. It reports false when the
// payment was already completed, leaving it untouched.
func (r *paymentRepository) Complete(ctx context.Context, id uuid.UUID, transactionID string) (bool, error) {
	query := `
		UPDATE payments
		SET status = 'completed', transaction_id = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id, transactionID)
	if err != nil {
		r.log.Error("Failed to complete payment",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return false, fmt.Errorf("complete payment %s: %w", id, err)
	}

	return result.RowsAffected() == 1, nil
}
