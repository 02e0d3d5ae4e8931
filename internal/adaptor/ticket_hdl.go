package adaptor

import (
	"fmt"
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// BookTicket handles POST /movies/{id}/book
func (h *TicketHandler) BookTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.TicketRequest
	if !bindForm(w, r, &req) {
		return
	}

	ticket, err := h.service.BookTicket(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "book ticket")
		return
	}

	utils.RedirectSeeOther(w, r, fmt.Sprintf("/tickets/%s/payment", ticket.ID))
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	tickets, err := h.service.ListTickets(r.Context(), userID, request.PaginationFromQuery(r.URL.Query()))
	if err != nil {
		handleServiceError(w, h.log, err, "list tickets")
		return
	}

	utils.ResponseSuccess(w, "Tickets retrieved successfully", tickets)
}

// EditPage handles GET /tickets/{id}/edit
func (h *TicketHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, err := h.service.GetEditPage(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket edit page")
		return
	}

	utils.ResponseSuccess(w, "Edit ticket", page)
}

// UpdateTicket handles POST /tickets/{id}/edit
func (h *TicketHandler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.TicketRequest
	if !bindForm(w, r, &req) {
		return
	}

	if _, err := h.service.UpdateTicket(r.Context(), userID, chi.URLParam(r, "id"), &req); err != nil {
		handleServiceError(w, h.log, err, "update ticket")
		return
	}

	utils.RedirectSeeOther(w, r, "/tickets")
}

// DeletePage handles GET /tickets/{id}/delete
func (h *TicketHandler) DeletePage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	ticket, err := h.service.GetTicket(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket")
		return
	}

	utils.ResponseSuccess(w, "Delete ticket", response.TicketDeletePage{
		Ticket:  *ticket,
		Confirm: fmt.Sprintf("/tickets/%s/delete", ticket.ID),
	})
}

// DeleteTicket handles POST /tickets/{id}/delete
func (h *TicketHandler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteTicket(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, h.log, err, "delete ticket")
		return
	}

	utils.RedirectSeeOther(w, r, "/tickets")
}
