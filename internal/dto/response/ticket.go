package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type TicketResponse struct {
	ID          string    `json:"id"`
	MovieID     string    `json:"movie_id"`
	MovieTitle  string    `json:"movie_title"`
	ShowTimeID  string    `json:"show_time_id"`
	ShowTime    string    `json:"show_time"`
	Quantity    int       `json:"quantity"`
	SeatNumber  *string   `json:"seat_number,omitempty"`
	BookingDate time.Time `json:"booking_date"`
	IsPaid      bool      `json:"is_paid"`
	Total       string    `json:"total"`
}

type TicketEditPage struct {
	Ticket    TicketResponse     `json:"ticket"`
	ShowTimes []ShowTimeResponse `json:"show_times"`
	Fields    []string           `json:"fields"`
}

type TicketDeletePage struct {
	Ticket  TicketResponse `json:"ticket"`
	Confirm string         `json:"confirm"`
}

func TicketToResponse(ticket *entity.TicketDetail) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID.String(),
		MovieID:     ticket.MovieID.String(),
		MovieTitle:  ticket.MovieTitle,
		ShowTimeID:  ticket.ShowTimeID.String(),
		ShowTime:    ticket.ShowTime.Format("15:04"),
		Quantity:    ticket.Quantity,
		SeatNumber:  ticket.SeatNumber,
		BookingDate: ticket.BookingDate,
		IsPaid:      ticket.IsPaid,
		Total:       FormatMoney(entity.AmountFor(ticket.MoviePrice, ticket.Quantity)),
	}
}

func TicketsToResponse(tickets []*entity.TicketDetail) []TicketResponse {
	resp := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		resp = append(resp, TicketToResponse(t))
	}
	return resp
}
