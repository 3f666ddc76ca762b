package service

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"groupapi/internal/apperror"
	"groupapi/internal/auth"
	"groupapi/internal/model"
)

// AuthService logs users in and resolves bearer tokens to accounts.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
	// Authenticate resolves an access token to an active, verified user.
	Authenticate(ctx context.Context, accessToken string) (*model.User, error)
}

type authService struct {
	users  UserService
	tokens *auth.TokenManager
	log    *zap.Logger
}

func NewAuthService(users UserService, tokens *auth.TokenManager, log *zap.Logger) AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &authService{users: users, tokens: tokens, log: log}
}

func (s *authService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.Unauthorized("invalid email or password.")
	}
	ok, err := auth.CheckPassword(user.Password, password)
	if err != nil {
		s.log.Warn("stored password hash is unreadable", zap.String("auth_uid", user.AuthUID), zap.Error(err))
		return nil, apperror.Unauthorized("invalid email or password.")
	}
	if !ok {
		return nil, apperror.Unauthorized("invalid email or password.")
	}
	if err := checkAccount(user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	user, err := s.resolve(ctx, refreshToken, auth.RefreshToken)
	if err != nil {
		return nil, err
	}
	return s.issue(user)
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*model.User, error) {
	return s.resolve(ctx, accessToken, auth.AccessToken)
}

func (s *authService) resolve(ctx context.Context, raw string, typ auth.TokenType) (*model.User, error) {
	claims, err := s.tokens.Parse(raw, typ)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperror.Unauthorized("token has expired.")
		}
		return nil, apperror.Unauthorized("Unauthorized")
	}

	user, err := s.users.FindOne(ctx, claims.Subject)
	if err != nil {
		if apperror.Is(err, http.StatusNotFound) {
			return nil, apperror.Unauthorized("Unauthorized")
		}
		return nil, err
	}
	if err := checkAccount(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) issue(user *model.User) (*auth.TokenPair, error) {
	pair, err := s.tokens.Issue(user.AuthUID)
	if err != nil {
		s.log.Error("issue tokens", zap.String("auth_uid", user.AuthUID), zap.Error(err))
		return nil, apperror.Conflict("something went wrong when generating the tokens")
	}
	return pair, nil
}

func checkAccount(user *model.User) error {
	if !user.VerifiedEmail {
		return apperror.Forbidden("your account must be verified to access resources.")
	}
	if !user.IsActive {
		return apperror.Unauthorized("user is inactive.")
	}
	return nil
}
