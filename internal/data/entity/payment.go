package entity

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

type Payment struct {
	Base
	TicketID      uuid.UUID     `db:"ticket_id"`
	Amount        float64       `db:"amount"`
	Status        PaymentStatus `db:"status"`
	TransactionID *string       `db:"transaction_id"`
}

func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}
