package request

import "net/url"

const DefaultQuantity = 1

// TicketRequest is the booking form, also used to edit a ticket.
type TicketRequest struct {
	ShowTimeID string  `form:"show_time" json:"show_time" validate:"required,uuid"`
	Quantity   *int    `form:"quantity" json:"quantity,omitempty" validate:"omitempty,gte=1,lte=10000"`
	SeatNumber *string `form:"seat_number" json:"seat_number,omitempty" validate:"omitempty,max=10"`
}

func (r *TicketRequest) FromForm(values url.Values) FieldErrors {
	errs := FieldErrors{}
	r.ShowTimeID = formString(values, "show_time")
	r.Quantity = formInt(values, "quantity", errs)
	r.SeatNumber = formOptional(values, "seat_number")
	return nilIfEmpty(errs)
}

// QuantityOrDefault returns the requested quantity, 1 when omitted.
func (r *TicketRequest) QuantityOrDefault() int {
	if r.Quantity == nil {
		return DefaultQuantity
	}
	return *r.Quantity
}

// Normalize turns a blank seat label into no seat.
func (r *TicketRequest) Normalize() {
	if r.SeatNumber != nil && *r.SeatNumber == "" {
		r.SeatNumber = nil
	}
}

type PaymentRequest struct {
	TransactionID *string `form:"transaction_id" json:"transaction_id,omitempty" validate:"omitempty,max=100"`
}

func (r *PaymentRequest) FromForm(values url.Values) FieldErrors {
	r.TransactionID = formOptional(values, "transaction_id")
	return nil
}
