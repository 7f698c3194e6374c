package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nhanstudio/portfolio-api/internal/core/domain"
)

const DefaultTokenTTL = 24 * time.Hour

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs HS256 bearer tokens carrying the user id (sub) and role.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService returns a TokenService. A non-positive ttl falls back to
// DefaultTokenTTL; tokens always expire.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for userID valid for the configured window.
func (s *TokenService) Issue(userID string, role domain.Role) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("issue token: empty user id")
	}

	now := s.now().UTC()
	expiresAt := now.Add(s.ttl)
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded
// identity. Every failure is reported as domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (*domain.Principal, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, domain.ErrInvalidToken
	}

	return &domain.Principal{UserID: claims.Subject, Role: domain.Role(claims.Role)}, nil
}
