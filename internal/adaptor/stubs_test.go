package adaptor

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
)

type stubAuth struct {
	signupErr error
	login     *response.AuthResponse
	loginErr  error
	loggedOut []string
	gotLogin  *request.LoginRequest
}

func (s *stubAuth) Signup(_ context.Context, req *request.SignupRequest) (*response.UserResponse, error) {
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return &response.UserResponse{ID: uuid.NewString(), Username: req.Username}, nil
}

func (s *stubAuth) Login(_ context.Context, req *request.LoginRequest, _ request.ClientMeta) (*response.AuthResponse, error) {
	s.gotLogin = req
	return s.login, s.loginErr
}

func (s *stubAuth) Logout(_ context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}

type stubTickets struct {
	booked    *response.TicketResponse
	err       error
	gotUser   uuid.UUID
	gotMovie  string
	gotTicket string
	gotReq    *request.TicketRequest
}

func (s *stubTickets) BookTicket(_ context.Context, userID uuid.UUID, movieID string, req *request.TicketRequest) (*response.TicketResponse, error) {
	s.gotUser, s.gotMovie, s.gotReq = userID, movieID, req
	return s.booked, s.err
}

func (s *stubTickets) ListTickets(_ context.Context, userID uuid.UUID, req request.PaginatedRequest) (*response.PaginatedResponse[response.TicketResponse], error) {
	s.gotUser = userID
	if s.err != nil {
		return nil, s.err
	}
	return response.NewPaginatedResponse([]response.TicketResponse{}, req.Page, req.Limit(), 0), nil
}

func (s *stubTickets) GetTicket(_ context.Context, userID uuid.UUID, ticketID string) (*response.TicketResponse, error) {
	s.gotUser, s.gotTicket = userID, ticketID
	return s.booked, s.err
}

func (s *stubTickets) GetEditPage(_ context.Context, userID uuid.UUID, ticketID string) (*response.TicketEditPage, error) {
	s.gotUser, s.gotTicket = userID, ticketID
	if s.err != nil {
		return nil, s.err
	}
	return &response.TicketEditPage{}, nil
}

func (s *stubTickets) UpdateTicket(_ context.Context, userID uuid.UUID, ticketID string, req *request.TicketRequest) (*response.TicketResponse, error) {
	s.gotUser, s.gotTicket, s.gotReq = userID, ticketID, req
	return s.booked, s.err
}

func (s *stubTickets) DeleteTicket(_ context.Context, userID uuid.UUID, ticketID string) error {
	s.gotUser, s.gotTicket = userID, ticketID
	return s.err
}

type stubPayments struct {
	err       error
	png       []byte
	gotTicket string
	gotReq    *request.PaymentRequest
}

func (s *stubPayments) GetPaymentPage(_ context.Context, _ uuid.UUID, ticketID string) (*response.PaymentPage, error) {
	s.gotTicket = ticketID
	if s.err != nil {
		return nil, s.err
	}
	return &response.PaymentPage{}, nil
}

func (s *stubPayments) CompletePayment(_ context.Context, _ uuid.UUID, ticketID string, req *request.PaymentRequest) (*response.PaymentResponse, error) {
	s.gotTicket, s.gotReq = ticketID, req
	if s.err != nil {
		return nil, s.err
	}
	return &response.PaymentResponse{}, nil
}

func (s *stubPayments) GetSuccessPage(_ context.Context, _ uuid.UUID, ticketID string) (*response.PaymentSuccessPage, error) {
	s.gotTicket = ticketID
	if s.err != nil {
		return nil, s.err
	}
	return &response.PaymentSuccessPage{}, nil
}

func (s *stubPayments) PassQRCode(_ context.Context, _ uuid.UUID, ticketID string) ([]byte, error) {
	s.gotTicket = ticketID
	return s.png, s.err
}

func (s *stubPayments) VerifyPass(_ context.Context, token string) (*response.PassVerification, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response.PassVerification{Valid: true}, nil
}

// withUser mimics the auth middleware.
func withUser(userID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := utils.SetUserContext(r.Context(), userID, "alice", "customer")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func formBody(values url.Values) (*strings.Reader, string) {
	return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
}
