package adaptor

import (
	"fmt"
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// PaymentPage handles GET /tickets/{id}/payment
func (h *PaymentHandler) PaymentPage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, err := h.service.GetPaymentPage(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get payment page")
		return
	}

	utils.ResponseSuccess(w, "Payment", page)
}

// CompletePayment handles POST /tickets/{id}/payment
func (h *PaymentHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.PaymentRequest
	if !bindForm(w, r, &req) {
		return
	}

	ticketID := chi.URLParam(r, "id")
	if _, err := h.service.CompletePayment(r.Context(), userID, ticketID, &req); err != nil {
		handleServiceError(w, h.log, err, "complete payment")
		return
	}

	utils.RedirectSeeOther(w, r, fmt.Sprintf("/tickets/%s/payment/success", ticketID))
}

// SuccessPage handles GET /tickets/{id}/payment/success
func (h *PaymentHandler) SuccessPage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, err := h.service.GetSuccessPage(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get payment success page")
		return
	}

	utils.ResponseSuccess(w, "Payment successful", page)
}

// PassQRCode handles GET /tickets/{id}/pass.png
func (h *PaymentHandler) PassQRCode(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	png, err := h.service.PassQRCode(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "render ticket pass")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// VerifyPass handles GET /passes/{token}
func (h *PaymentHandler) VerifyPass(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.VerifyPass(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		handleServiceError(w, h.log, err, "verify pass")
		return
	}

	utils.ResponseSuccess(w, "Pass is valid", result)
}
