package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"lendshare-backend/internal/domain"
	"lendshare-backend/internal/repository"
	"lendshare-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.RefreshTokenRepository
	tokens    security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.RefreshTokenRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
	}
}

func (s *authService) Signup(ctx context.Context, name, email, phone, password string) (*domain.User, string, string, error) {
	if name == "" || email == "" {
		return nil, "", "", fmt.Errorf("%w: name and email are required", domain.ErrInvalidInput)
	}
	if len(password) < 8 {
		return nil, "", "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, "", "", err
	}
	if existing != nil {
		return nil, "", "", fmt.Errorf("%w: email already registered", domain.ErrAlreadyExists)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}

	// Every member can both lend and rent.
	user := &domain.User{
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: string(hash),
		Roles:        []domain.Role{domain.RoleUser, domain.RoleOwner, domain.RoleTenant},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.issueTokens(ctx, user, security.SchemeUser)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, string, error) {
	return s.login(ctx, email, password, security.SchemeUser)
}

// AdminLogin issues tokens under the admin scheme. Only tokens from this
// scheme unlock the authorizer's admin bypass.
func (s *authService) AdminLogin(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if !user.HasRole(domain.RoleAdmin) {
		return "", "", ErrInvalidCredentials
	}
	return s.login(ctx, email, password, security.SchemeAdmin)
}

func (s *authService) login(ctx context.Context, email, password string, scheme security.Scheme) (string, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", ErrInvalidCredentials
	}
	return s.issueTokens(ctx, user, scheme)
}

func (s *authService) RefreshToken(ctx context.Context, refresh string) (string, string, error) {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	if claims.Type != security.TokenTypeRefresh {
		return "", "", security.ErrWrongTokenType
	}

	ok, err := s.tokenRepo.Exists(ctx, claims.ID)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", security.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return "", "", err
	}

	// Rotate: the presented refresh token is a single-use credential.
	if err := s.tokenRepo.Revoke(ctx, claims.ID); err != nil {
		return "", "", err
	}
	return s.issueTokens(ctx, user, claims.Scheme)
}

func (s *authService) Logout(ctx context.Context, refresh string) error {
	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return err
	}
	return s.tokenRepo.Revoke(ctx, claims.ID)
}

func (s *authService) issueTokens(ctx context.Context, user *domain.User, scheme security.Scheme) (string, string, error) {
	access, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Roles, scheme)
	if err != nil {
		return "", "", err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID, user.Email, scheme)
	if err != nil {
		return "", "", err
	}

	claims, err := s.tokens.ValidateToken(refresh)
	if err != nil {
		return "", "", err
	}
	var expires time.Time
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	if err := s.tokenRepo.Store(ctx, user.ID, claims.ID, expires); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
