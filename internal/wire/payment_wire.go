package wire

import (
	"movie-booking/internal/adaptor"
	"movie-booking/internal/data/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wirePayment(
	r chi.Router,
	paymentHandler *adaptor.PaymentHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Scanned at the door; the signed token is the credential
	r.Get("/passes/{token}", paymentHandler.VerifyPass)

	// ==================== PROTECTED ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(authenticated(repo, log))

		r.Get("/tickets/{id}/payment", paymentHandler.PaymentPage)
		r.Post("/tickets/{id}/payment", paymentHandler.CompletePayment)
		r.Get("/tickets/{id}/payment/success", paymentHandler.SuccessPage)
		r.Get("/tickets/{id}/pass.png", paymentHandler.PassQRCode)
	})
}
