package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type PaymentResponse struct {
	ID            string               `json:"id"`
	TicketID      string               `json:"ticket_id"`
	Amount        string               `json:"amount"`
	Status        entity.PaymentStatus `json:"status"`
	TransactionID *string              `json:"transaction_id,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type PaymentPage struct {
	Ticket  TicketResponse  `json:"ticket"`
	Payment PaymentResponse `json:"payment"`
	Fields  []string        `json:"fields"`
}

type PassResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	QRCodeURL string    `json:"qr_code_url"`
}

type PaymentSuccessPage struct {
	Ticket  TicketResponse  `json:"ticket"`
	Payment PaymentResponse `json:"payment"`
	Pass    *PassResponse   `json:"pass,omitempty"`
}

// PassVerification is what the door scanner sees for a pass token.
type PassVerification struct {
	Valid      bool   `json:"valid"`
	TicketID   string `json:"ticket_id"`
	MovieTitle string `json:"movie_title"`
	ShowTime   string `json:"show_time"`
	Quantity   int    `json:"quantity"`
	SeatNumber string `json:"seat_number,omitempty"`
}

func PaymentToResponse(payment *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID.String(),
		TicketID:      payment.TicketID.String(),
		Amount:        FormatMoney(payment.Amount),
		Status:        payment.Status,
		TransactionID: payment.TransactionID,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}
