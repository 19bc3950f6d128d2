package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"hospital-appointment-server/internal/config"
	"hospital-appointment-server/internal/models"
)

// SessionClaims represents the JWT claims carried by the session cookie:
// the authenticated principal's id and role.
type SessionClaims struct {
	PrincipalID uint        `json:"principal_id"`
	Role        models.Role `json:"role"`
	jwt.RegisteredClaims
}

// GenerateSessionToken mints the signed session token for a principal.
func GenerateSessionToken(principalID uint, role models.Role, cfg *config.Config) (string, error) {
	expirationTime := time.Now().Add(time.Duration(cfg.SessionTTLHours) * time.Hour)
	claims := &SessionClaims{
		PrincipalID: principalID,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   fmt.Sprintf("%d", principalID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.SessionSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// ValidateSessionToken validates a session token and returns its claims.
func ValidateSessionToken(tokenString string, secretKey string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
