package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin        = "admin"
	TypeAdminSession = "admin_session"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims represents the admin session token
type Claims struct {
	Role string `json:"role"`
	Type string `json:"type"`
	jwt.RegisteredClaims
}

// Manager signs and validates HS256 session tokens
type Manager struct {
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a JWT manager issuing tokens valid for ttl
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl, now: time.Now}
}

// TTL is the lifetime of issued tokens
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// GenerateAdminToken issues a session token for the admin gate
func (m *Manager) GenerateAdminToken() (string, error) {
	now := m.now()
	claims := Claims{
		Role: RoleAdmin,
		Type: TypeAdminSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   RoleAdmin,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ValidateToken validates and parses token
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateAdminToken validates a token and checks it is an admin session
func (m *Manager) ValidateAdminToken(tokenString string) (*Claims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Type != TypeAdminSession || claims.Role != RoleAdmin {
		return nil, fmt.Errorf("%w: expected admin session, got %s/%s", ErrInvalidToken, claims.Type, claims.Role)
	}

	return claims, nil
}
