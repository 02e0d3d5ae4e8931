package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	msgUsernameTaken      = "A user with that username already exists."
	msgInvalidCredentials = "Please enter a correct username and password."
	msgInactiveAccount    = "This account is inactive."
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, meta request.ClientMeta) (*response.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	repo   *repository.Repository // grouping userRepo & sessionRepo
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(repo *repository.Repository, config *utils.Config, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.UserResponse, error) {
	// 1. Validasi input
	if err := validate(req); err != nil {
		s.log.Debug("Signup validation failed", zap.Error(err))
		return nil, err
	}

	// 2. Cek username sudah dipakai
	existing, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, newError(ErrConflict, msgUsernameTaken)
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password, s.config.App.BcryptCost)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username:     req.Username,
		PasswordHash: hashed,
		Role:         entity.RoleCustomer,
		IsActive:     true,
	}

	// 4. Save user; the unique index catches a concurrent signup
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, msgUsernameTaken)
		}
		return nil, err
	}

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, meta request.ClientMeta) (*response.AuthResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Info("Login failed", zap.String("username", req.Username))
		return nil, newError(ErrInvalidCredentials, msgInvalidCredentials)
	}

	if !user.IsActive {
		s.log.Warn("Login attempt on inactive account", zap.String("user_id", user.ID.String()))
		return nil, newError(ErrForbidden, msgInactiveAccount)
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("session_id", session.ID.String()))

	resp := response.AuthToResponse(user, session)
	return &resp, nil
}

// Logout revokes the session token. An unknown token is not an error.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.repo.Session.Revoke(ctx, token); err != nil {
		return err
	}
	s.log.Info("Session revoked")
	return nil
}

func (s *authService) createSession(ctx context.Context, userID uuid.UUID, meta request.ClientMeta) (*entity.Session, error) {
	now := time.Now()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: now,
		},
		UserID:    userID,
		Token:     utils.GenerateSessionToken(),
		ExpiresAt: now.Add(s.config.Session.Expiry()),
	}
	if meta.UserAgent != "" {
		session.UserAgent = &meta.UserAgent
	}
	if meta.IPAddress != "" {
		session.IPAddress = &meta.IPAddress
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
