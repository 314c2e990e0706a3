package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the JWT payload issued by the identity provider for portal admins.
// The backend only consumes these tokens; it never issues credentials itself.
type Claims struct {
	jwt.RegisteredClaims
	AdminID string `json:"admin_id"`
	Name    string `json:"name"`
	Level   int    `json:"level"`
}

// Manager verifies admin JWTs with a shared HMAC secret
type Manager struct {
	secretKey []byte
}

// NewManager creates a new JWT Manager
func NewManager(secret string) *Manager {
	return &Manager{secretKey: []byte(secret)}
}

// VerifyToken parses and validates a token string
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// GenerateToken signs a token for the given admin. Used by local tooling and
// tests; production tokens come from the identity provider.
func (m *Manager) GenerateToken(adminID, name string, level int, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AdminID: adminID,
		Name:    name,
		Level:   level,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}
