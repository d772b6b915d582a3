package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// generateToken issues an HS256 token carrying the account id and role.
// Extra claims (donor phone scope) are merged in when present.
func generateToken(secret string, expiry time.Duration, id, role string, extra map[string]any) (string, error) {
	claims := jwt.MapClaims{
		"id":   id,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(expiry).Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// TokenClaims is the decoded subject of a bearer token.
type TokenClaims struct {
	ID         string
	Role       string
	DonorPhone string
}

// ParseToken validates a bearer token and extracts its claims.
func ParseToken(secret, tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	out := &TokenClaims{}
	if v, ok := claims["id"].(string); ok {
		out.ID = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = v
	}
	if v, ok := claims["donorPhone"].(string); ok {
		out.DonorPhone = v
	}
	if out.ID == "" || out.Role == "" {
		return nil, errors.New("token missing subject claims")
	}
	return out, nil
}
