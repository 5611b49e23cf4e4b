package services

import (
	"github.com/golang-jwt/jwt/v4"

	"marketplace-backend/models"
)

// TokenValidator validates a raw token string of an expected type.
type TokenValidator interface {
	ValidateToken(tokenStr, expectedType string) (jwt.MapClaims, error)
}

// SessionService is the session gate. It resolves a raw access token into an
// Identity, classifying the role carried on it. Resolution failures are not
// errors here: a request with a bad, expired or missing token is simply
// anonymous, and it is the route's auth middleware that decides whether
// anonymous is acceptable.
type SessionService struct {
	tokens TokenValidator
}

func NewSessionService(tokens TokenValidator) *SessionService {
	return &SessionService{tokens: tokens}
}

// Resolve turns a raw access token into an Identity, or nil (anonymous) when
// the token is empty or fails validation.
func (s *SessionService) Resolve(tokenStr string) *models.Identity {
	if tokenStr == "" {
		return nil
	}

	claims, err := s.tokens.ValidateToken(tokenStr, "access")
	if err != nil {
		return nil
	}

	identity := &models.Identity{
		UserID:   stringClaim(claims, "sub"),
		Email:    stringClaim(claims, "email"),
		FullName: stringClaim(claims, "full_name"),
		Role:     stringClaim(claims, "role"),
	}
	if identity.UserID == "" {
		return nil
	}
	// The role claim was captured at registration; anything unrecognized
	// degrades to the buyer role rather than failing resolution.
	if identity.Role != models.RoleDeveloper {
		identity.Role = models.RoleCustomer
	}
	return identity
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
