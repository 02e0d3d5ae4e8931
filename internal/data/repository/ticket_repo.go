package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

// TicketRepository scopes every read and write of a single ticket to its owner.
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TicketDetail, error)
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.TicketDetail, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.TicketDetail, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, ticket *entity.Ticket) error
	Delete(ctx context.Context, id, userID uuid.UUID) error
	MarkPaid(ctx context.Context, id, userID uuid.UUID) error
}

type ticketRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewTicketRepository(db database.Querier, log *zap.Logger) TicketRepository {
	return &ticketRepository{
		db:  db,
		log: log.With(zap.String("repository", "ticket")),
	}
}

const ticketDetailColumns = `
		t.id, t.user_id, t.movie_id, t.show_time_id, t.quantity, t.seat_number,
		t.booking_date, t.is_paid, t.updated_at,
		m.title, m.price, st.show_time
	FROM tickets t
	JOIN movies m ON m.id = t.movie_id
	JOIN show_times st ON st.id = t.show_time_id
`

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		INSERT INTO tickets (id, user_id, movie_id, show_time_id, quantity, seat_number,
		                     booking_date, is_paid, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.MovieID,
		ticket.ShowTimeID,
		ticket.Quantity,
		ticket.SeatNumber,
		ticket.BookingDate,
		ticket.IsPaid,
		ticket.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create ticket",
			zap.Error(err),
			zap.String("user_id", ticket.UserID.String()),
			zap.String("show_time_id", ticket.ShowTimeID.String()),
		)
		return fmt.Errorf("create ticket for user %s: %w", ticket.UserID, err)
	}

	return nil
}

// FindByID is unscoped; only pass verification uses it.
func (r *ticketRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TicketDetail, error) {
	query := `SELECT ` + ticketDetailColumns + ` WHERE t.id = $1`

	ticket, err := scanTicketDetail(r.db.QueryRow(ctx, query, id))
	if err != nil {
		r.log.Error("Failed to find ticket",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return nil, fmt.Errorf("find ticket %s: %w", id, err)
	}

	return ticket, nil
}

func (r *ticketRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.TicketDetail, error) {
	query := `SELECT ` + ticketDetailColumns + ` WHERE t.id = $1 AND t.user_id = $2`

	ticket, err := scanTicketDetail(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		r.log.Error("Failed to find ticket for user",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find ticket %s for user %s: %w", id, userID, err)
	}

	return ticket, nil
}

// FindByUserID lists the user's tickets, newest booking first
func (r *ticketRepository) FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*entity.TicketDetail, error) {
	query := `SELECT ` + ticketDetailColumns + `
		WHERE t.user_id = $1
		ORDER BY t.booking_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find tickets by user",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find tickets for user %s: %w", userID, err)
	}
	defer rows.Close()

	var tickets []*entity.TicketDetail
	for rows.Next() {
		ticket, err := scanTicketDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan ticket row", zap.Error(err))
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate tickets: %w", err)
	}

	return tickets, nil
}

func (r *ticketRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		r.log.Error("Failed to count tickets",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count tickets for user %s: %w", userID, err)
	}

	return total, nil
}

// Update rewrites the editable fields of an unpaid ticket. booking_date is never touched.
// A paid ticket yields ErrLocked.
func (r *ticketRepository) Update(ctx context.Context, ticket *entity.Ticket) error {
	query := `
		UPDATE tickets
		SET movie_id = $3, show_time_id = $4, quantity = $5, seat_number = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2 AND is_paid = FALSE
	`

	result, err := r.db.Exec(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.MovieID,
		ticket.ShowTimeID,
		ticket.Quantity,
		ticket.SeatNumber,
		ticket.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update ticket",
			zap.Error(err),
			zap.String("ticket_id", ticket.ID.String()),
		)
		return fmt.Errorf("update ticket %s: %w", ticket.ID, err)
	}

	if result.RowsAffected() > 0 {
		return nil
	}

	// tidak ada baris: tiket tidak ada, atau sudah dibayar
	var isPaid bool
	err = r.db.QueryRow(ctx,
		`SELECT is_paid FROM tickets WHERE id = $1 AND user_id = $2`,
		ticket.ID, ticket.UserID,
	).Scan(&isPaid)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("update ticket %s: %w", ticket.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("check ticket %s: %w", ticket.ID, err)
	}
	if isPaid {
		return fmt.Errorf("update ticket %s: %w", ticket.ID, ErrLocked)
	}
	return fmt.Errorf("update ticket %s: %w", ticket.ID, ErrNotFound)
}

// Delete removes the ticket; its payment goes with it through ON DELETE CASCADE.
func (r *ticketRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.log.Error("Failed to delete ticket",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return fmt.Errorf("delete ticket %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete ticket %s: %w", id, ErrNotFound)
	}

	r.log.Info("Ticket deleted",
		zap.String("ticket_id", id.String()),
		zap.String("user_id", userID.String()))
	return nil
}

func (r *ticketRepository) MarkPaid(ctx context.Context, id, userID uuid.UUID) error {
	query := `
		UPDATE tickets
		SET is_paid = TRUE, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		r.log.Error("Failed to mark ticket paid",
			zap.Error(err),
			zap.String("ticket_id", id.String()),
		)
		return fmt.Errorf("mark ticket %s paid: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("mark ticket %s paid: %w", id, ErrNotFound)
	}

	return nil
}

func scanTicketDetail(row pgx.Row) (*entity.TicketDetail, error) {
	var (
		ticket entity.TicketDetail
		clock  pgtype.Time
	)
	err := row.Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.MovieID,
		&ticket.ShowTimeID,
		&ticket.Quantity,
		&ticket.SeatNumber,
		&ticket.BookingDate,
		&ticket.IsPaid,
		&ticket.UpdatedAt,
		&ticket.MovieTitle,
		&ticket.MoviePrice,
		&clock,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ticket.ShowTime = fromPgTime(clock)
	return &ticket, nil
}
