package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/protolab/prototype-portal/config"
	"github.com/protolab/prototype-portal/internal/domain"
)

// Session is a signed token handed to the client after sign-in.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Role  string `json:"role"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// TokenManager issues and checks HS256 session tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.JWTIssuer,
		ttl:    cfg.SessionTTL,
		now:    time.Now,
	}
}

// Issue signs a session for u with the user id as subject and the role as a
// custom claim.
func (m *TokenManager) Issue(u domain.User) (Session, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Role:  string(u.Role),
		Email: u.Email,
		Name:  u.Name,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: signed, ExpiresAt: exp.UTC().Truncate(time.Second)}, nil
}

// Parse validates raw and returns the user it was issued for. Every failure
// wraps domain.ErrUnauthorized.
func (m *TokenManager) Parse(raw string) (domain.User, error) {
	if raw == "" {
		return domain.User{}, fmt.Errorf("empty token: %w", domain.ErrUnauthorized)
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	role := domain.Role(claims.Role)
	if claims.Subject == "" || !role.Valid() {
		return domain.User{}, fmt.Errorf("invalid session claims: %w", domain.ErrUnauthorized)
	}
	return domain.User{ID: claims.Subject, Email: claims.Email, Name: claims.Name, Role: role}, nil
}
