package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"marketplace-backend/models"
	apperrors "marketplace-backend/pkg/errors"
)

type IUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	CreateRefreshToken(ctx context.Context, rt *models.RefreshToken) error
	GetRefreshTokenByTokenID(ctx context.Context, tokenID string) (*models.RefreshToken, error)
	RevokeRefreshTokenByTokenID(ctx context.Context, tokenID string) error
	RevokeAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error
}

type ITokenService interface {
	GenerateTokenPair(userID, email, fullName, role string) (*TokenPair, string, error)
	TokenValidator
	RefreshTokenTTL() time.Duration
}

// ProfileWriter publishes a developer's public profile on registration.
type ProfileWriter interface {
	Upsert(ctx context.Context, profile *models.Profile) error
}

// LoginResult carries the token pair plus the dashboard the client should
// land on, classified from the account role.
type LoginResult struct {
	Tokens     *TokenPair       `json:"tokens"`
	Identity   *models.Identity `json:"identity"`
	RedirectTo string           `json:"redirect_to"`
}

type AuthService struct {
	userRepo IUserRepository
	tokens   ITokenService
	profiles ProfileWriter
}

func NewAuthService(ur IUserRepository, ts ITokenService, profiles ProfileWriter) *AuthService {
	return &AuthService{userRepo: ur, tokens: ts, profiles: profiles}
}

// Register creates an account. The role is fixed at registration time and
// must be one of customer or developer; a developer additionally gets a
// public profile document so they show up in the developers list.
func (s *AuthService) Register(ctx context.Context, fullName, email, password, role string) error {
	fullName = strings.TrimSpace(fullName)
	email = strings.TrimSpace(strings.ToLower(email))

	if fullName == "" || email == "" || password == "" {
		return apperrors.ErrValidation.WithMessage("Full name, email and password are required")
	}
	if role != models.RoleCustomer && role != models.RoleDeveloper {
		return apperrors.ErrValidation.WithMessage("Account type must be customer or developer")
	}
	if len(password) < 8 {
		return apperrors.ErrValidation.WithMessage("Password must be at least 8 characters")
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return apperrors.ErrConflict.WithMessage("Email already registered")
	}
	if err != gorm.ErrRecordNotFound {
		return apperrors.ErrRemoteWrite.Wrap(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.ErrInternalServer.Wrap(err)
	}

	newUser := &models.User{
		ID:       uuid.New(),
		Email:    email,
		FullName: fullName,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, newUser); err != nil {
		return apperrors.ErrRemoteWrite.WithMessage("Failed to create account").Wrap(err)
	}

	if role == models.RoleDeveloper {
		profile := &models.Profile{
			ID:       newUser.ID.String(),
			FullName: fullName,
		}
		if err := s.profiles.Upsert(ctx, profile); err != nil {
			// The account exists; a missing profile is recoverable on next save.
			return nil
		}
	}
	return nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return nil, apperrors.ErrValidation.WithMessage("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// RefreshTokens rotates a refresh token: the presented token is revoked and a
// new pair is issued. A revoked or expired token is rejected.
func (s *AuthService) RefreshTokens(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := s.tokens.ValidateToken(refreshToken, "refresh")
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	tokenID, _ := claims["jti"].(string)
	if tokenID == "" {
		return nil, apperrors.ErrInvalidToken
	}

	stored, err := s.userRepo.GetRefreshTokenByTokenID(ctx, tokenID)
	if err != nil || stored.Revoked || time.Now().After(stored.ExpiresAt) {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if err := s.userRepo.RevokeRefreshTokenByTokenID(ctx, tokenID); err != nil {
		return nil, apperrors.ErrRemoteWrite.Wrap(err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes every refresh token the user holds. Access tokens ride out
// their short TTL.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return apperrors.ErrInvalidInput.Wrap(err)
	}
	if err := s.userRepo.RevokeAllUserRefreshTokens(ctx, id); err != nil {
		return apperrors.ErrRemoteWrite.Wrap(err)
	}
	return nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*LoginResult, error) {
	pair, tokenID, err := s.tokens.GenerateTokenPair(user.ID.String(), user.Email, user.FullName, user.Role)
	if err != nil {
		return nil, apperrors.ErrInternalServer.Wrap(err)
	}

	rt := &models.RefreshToken{
		ID:        uuid.New(),
		TokenID:   tokenID,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.tokens.RefreshTokenTTL()),
	}
	if err := s.userRepo.CreateRefreshToken(ctx, rt); err != nil {
		return nil, apperrors.ErrRemoteWrite.Wrap(err)
	}

	identity := &models.Identity{
		UserID:   user.ID.String(),
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	}
	return &LoginResult{
		Tokens:     pair,
		Identity:   identity,
		RedirectTo: identity.DashboardTarget(),
	}, nil
}
