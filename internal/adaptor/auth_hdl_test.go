package adaptor

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"movie-booking/internal/dto/response"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func postForm(t *testing.T, handler http.HandlerFunc, target string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := formBody(values)
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func newAuthHandler(svc *stubAuth) *AuthHandler {
	return NewAuthHandler(svc, utils.SessionConfig{ExpiryHours: 24}, zap.NewNop())
}

func TestSignup_RedirectsToLogin(t *testing.T) {
	h := newAuthHandler(&stubAuth{})

	rec := postForm(t, h.Signup, "/signup", url.Values{
		"username":         {"alice"},
		"password":         {"s3cretpass"},
		"password_confirm": {"s3cretpass"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestSignup_DuplicateUsernameIs409(t *testing.T) {
	h := newAuthHandler(&stubAuth{
		signupErr: &usecase.Error{Kind: usecase.ErrConflict, Message: "A user with that username already exists."},
	})

	rec := postForm(t, h.Signup, "/signup", url.Values{"username": {"alice"}})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "A user with that username already exists.")
}

func TestLogin_SetsCookieAndFollowsNext(t *testing.T) {
	expires := time.Now().Add(24 * time.Hour)
	svc := &stubAuth{login: &response.AuthResponse{Token: "tok-1", ExpiresAt: expires}}
	h := newAuthHandler(svc)

	rec := postForm(t, h.Login, "/login", url.Values{
		"username": {"alice"},
		"password": {"s3cretpass"},
		"next":     {"/movies/m-1/book"},
	})

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/movies/m-1/book", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.SessionCookieName, cookies[0].Name)
	assert.Equal(t, "tok-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestLogin_NextFromQueryAndUnsafeNext(t *testing.T) {
	svc := &stubAuth{login: &response.AuthResponse{Token: "tok-1"}}
	h := newAuthHandler(svc)

	rec := postForm(t, h.Login, "/login?next=%2Ftickets", url.Values{"username": {"a"}, "password": {"b"}})
	assert.Equal(t, "/tickets", rec.Header().Get("Location"))

	rec = postForm(t, h.Login, "/login", url.Values{"username": {"a"}, "password": {"b"}, "next": {"//evil.example"}})
	assert.Equal(t, "/movies", rec.Header().Get("Location"))
}

func TestLogin_BadCredentialsIs401(t *testing.T) {
	h := newAuthHandler(&stubAuth{
		loginErr: &usecase.Error{Kind: usecase.ErrInvalidCredentials, Message: "Please enter a correct username and password."},
	})

	rec := postForm(t, h.Login, "/login", url.Values{"username": {"alice"}, "password": {"nope"}})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":false,"message":"Please enter a correct username and password."}`, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogout_RevokesAndClearsCookie(t *testing.T) {
	svc := &stubAuth{}
	h := newAuthHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "tok-1"})
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"tok-1"}, svc.loggedOut)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestLogout_RevokesBearerSession(t *testing.T) {
	svc := &stubAuth{}
	h := newAuthHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Header.Set("Authorization", "Bearer tok-2")
	rec := httptest.NewRecorder()

	h.Logout(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, []string{"tok-2"}, svc.loggedOut)
}

func TestLogout_WithoutSession(t *testing.T) {
	svc := &stubAuth{}
	h := newAuthHandler(svc)
	rec := httptest.NewRecorder()

	h.Logout(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, svc.loggedOut)
}

func TestLoginPage_EchoesSafeNext(t *testing.T) {
	h := newAuthHandler(&stubAuth{})
	rec := httptest.NewRecorder()

	h.LoginPage(rec, httptest.NewRequest(http.MethodGet, "/login?next=%2Ftickets", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"next":"/tickets"`)
}
