package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrDuplicate is returned when an insert hits a unique constraint.
	ErrDuplicate = errors.New("duplicate key")
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrLocked is returned by writes to a row that may no longer change, such as a paid ticket.
	ErrLocked = errors.New("record is locked")
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Movie    MovieRepository
	ShowTime ShowTimeRepository
	Ticket   TicketRepository
	Payment  PaymentRepository

	db  database.PgxIface
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	repo := newRepository(db, log)
	repo.db = db
	return repo
}

// newRepository builds the repositories over q, which may be the pool or an open transaction.
func newRepository(q database.Querier, log *zap.Logger) *Repository {
	return &Repository{
		User:     NewUserRepository(q, log),
		Session:  NewSessionRepository(q, log),
		Movie:    NewMovieRepository(q, log),
		ShowTime: NewShowTimeRepository(q, log),
		Ticket:   NewTicketRepository(q, log),
		Payment:  NewPaymentRepository(q, log),
		log:      log,
	}
}

// InTx runs fn with repositories bound to one transaction. The transaction commits
// when fn returns nil and rolls back otherwise. A Repository without a pool
// (already inside InTx, or assembled by hand) runs fn directly on itself.
func (r *Repository) InTx(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin transaction: %w", err)
	}
	// Rollback setelah Commit tidak berpengaruh
	defer tx.Rollback(ctx)

	if err := fn(newRepository(tx, r.log)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
