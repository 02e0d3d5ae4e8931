package adaptor

import (
	"net"
	"net/http"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

const defaultLoginRedirect = "/movies"

type AuthHandler struct {
	service usecase.AuthService
	session utils.SessionConfig
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, session utils.SessionConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		session: session,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SignupPage handles GET /signup
func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Sign up", response.FormPage{
		Form:   "signup",
		Action: "/signup",
		Fields: []string{"username", "password", "password_confirm"},
	})
}

// Signup handles POST /signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if !bindForm(w, r, &req) {
		return
	}

	if _, err := h.service.Signup(r.Context(), &req); err != nil {
		handleServiceError(w, h.log, err, "signup")
		return
	}

	utils.RedirectSeeOther(w, r, "/login")
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Log in", response.FormPage{
		Form:   "login",
		Action: "/login",
		Fields: []string{"username", "password"},
		Next:   utils.SafeRedirectPath(r.URL.Query().Get("next"), ""),
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !bindForm(w, r, &req) {
		return
	}
	if req.Next == "" {
		req.Next = r.URL.Query().Get("next")
	}

	auth, err := h.service.Login(r.Context(), &req, clientMeta(r))
	if err != nil {
		handleServiceError(w, h.log, err, "login")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    auth.Token,
		Path:     "/",
		Expires:  auth.ExpiresAt,
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	utils.RedirectSeeOther(w, r, utils.SafeRedirectPath(req.Next, defaultLoginRedirect))
}

// Logout handles GET and POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := utils.SessionToken(r); token != "" {
		if err := h.service.Logout(r.Context(), token); err != nil {
			// cookie tetap dihapus
			h.log.Warn("Failed to revoke session on logout", zap.Error(err))
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.session.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	utils.RedirectSeeOther(w, r, defaultLoginRedirect)
}

func clientMeta(r *http.Request) request.ClientMeta {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return request.ClientMeta{
		UserAgent: r.UserAgent(),
		IPAddress: ip,
	}
}
