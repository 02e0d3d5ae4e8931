package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubSessions struct {
	sessions map[string]*entity.Session
	err      error
}

func (s *stubSessions) Create(context.Context, *entity.Session) error { return nil }

func (s *stubSessions) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sessions[token], nil
}

func (s *stubSessions) Revoke(context.Context, string) error { return nil }

func (s *stubSessions) CleanExpiredSessions(context.Context) (int64, error) { return 0, nil }

type stubUsers struct {
	users map[uuid.UUID]*entity.User
}

func (s *stubUsers) Create(context.Context, *entity.User) error { return nil }

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return s.users[id], nil
}

func (s *stubUsers) FindByUsername(context.Context, string) (*entity.User, error) { return nil, nil }

type authFixture struct {
	sessions *stubSessions
	users    *stubUsers
	user     *entity.User
	token    string
}

func newAuthFixture(role entity.UserRole, active bool) *authFixture {
	user := &entity.User{Username: "alice", Role: role, IsActive: active}
	user.ID = uuid.New()
	token := uuid.New()

	session := &entity.Session{UserID: user.ID, Token: token, ExpiresAt: time.Now().Add(time.Hour)}
	return &authFixture{
		sessions: &stubSessions{sessions: map[string]*entity.Session{token.String(): session}},
		users:    &stubUsers{users: map[uuid.UUID]*entity.User{user.ID: user}},
		user:     user,
		token:    token.String(),
	}
}

func (f *authFixture) handler(next http.Handler) http.Handler {
	return AuthSession(f.sessions, f.users, zap.NewNop())(next)
}

func okHandler(t *testing.T, seen *uuid.UUID) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		*seen = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthSession_NoTokenRedirectsToLogin(t *testing.T) {
	f := newAuthFixture(entity.RoleCustomer, true)
	req := httptest.NewRequest(http.MethodGet, "/tickets?page=2", nil)
	rec := httptest.NewRecorder()

	f.handler(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?next=%2Ftickets%3Fpage%3D2", rec.Header().Get("Location"))
}

func TestAuthSession_Cookie(t *testing.T) {
	f := newAuthFixture(entity.RoleCustomer, true)
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: f.token})
	rec := httptest.NewRecorder()

	var seen uuid.UUID
	f.handler(okHandler(t, &seen)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, f.user.ID, seen)
}

func TestAuthSession_BearerHeader(t *testing.T) {
	f := newAuthFixture(entity.RoleCustomer, true)
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	req.Header.Set("Authorization", "bearer "+f.token)
	rec := httptest.NewRecorder()

	var seen uuid.UUID
	f.handler(okHandler(t, &seen)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, f.user.ID, seen)
}

func TestAuthSession_UnknownTokenOrInactiveUser(t *testing.T) {
	t.Run("unknown token", func(t *testing.T) {
		f := newAuthFixture(entity.RoleCustomer, true)
		req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: uuid.NewString()})
		rec := httptest.NewRecorder()

		f.handler(http.NotFoundHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
	})

	t.Run("inactive user", func(t *testing.T) {
		f := newAuthFixture(entity.RoleCustomer, false)
		req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
		req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: f.token})
		rec := httptest.NewRecorder()

		f.handler(http.NotFoundHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login?next=%2Ftickets", rec.Header().Get("Location"))
	})
}

func TestAuthSession_RepositoryError(t *testing.T) {
	f := newAuthFixture(entity.RoleCustomer, true)
	f.sessions.err = errors.New("connection refused")
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: f.token})
	rec := httptest.NewRecorder()

	f.handler(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAdmin(t *testing.T) {
	tests := []struct {
		name string
		role entity.UserRole
		want int
	}{
		{"admin passes", entity.RoleAdmin, http.StatusOK},
		{"customer is forbidden", entity.RoleCustomer, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthFixture(tt.role, true)
			req := httptest.NewRequest(http.MethodPost, "/admin/movies", nil)
			req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: f.token})
			rec := httptest.NewRecorder()

			var seen uuid.UUID
			f.handler(Admin(zap.NewNop())(okHandler(t, &seen))).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAdmin_WithoutUserIsUnauthorized(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/admin/movies", nil)
	rec := httptest.NewRecorder()

	Admin(zap.NewNop())(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSession_ExpiredSessionRedirects(t *testing.T) {
	f := newAuthFixture(entity.RoleCustomer, true)
	f.sessions.sessions[f.token].ExpiresAt = time.Now().Add(-time.Minute)
	req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: f.token})
	rec := httptest.NewRecorder()

	f.handler(http.NotFoundHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
}
