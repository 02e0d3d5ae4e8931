package entity

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	MovieID     uuid.UUID `db:"movie_id"`
	ShowTimeID  uuid.UUID `db:"show_time_id"`
	Quantity    int       `db:"quantity"`
	SeatNumber  *string   `db:"seat_number"`
	BookingDate time.Time `db:"booking_date"`
	IsPaid      bool      `db:"is_paid"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// TicketDetail is a ticket joined with its movie and showtime for display.
type TicketDetail struct {
	Ticket
	MovieTitle string    `db:"movie_title"`
	MoviePrice float64   `db:"movie_price"`
	ShowTime   time.Time `db:"show_time"`
}
