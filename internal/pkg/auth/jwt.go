// internal/pkg/auth/jwt.go
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/your-org/glowing-legacy-backend/internal/config"
)

// Claims represents the claims carried by a hosted-auth session token.
// Tokens are issued by the hosted auth provider; this service only
// verifies them.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenVerifier verifies hosted-auth session tokens
type TokenVerifier struct {
	config *config.Config
}

// NewTokenVerifier creates a new token verifier
func NewTokenVerifier(cfg *config.Config) *TokenVerifier {
	return &TokenVerifier{
		config: cfg,
	}
}

// VerifyToken validates a session token's signature, expiry and issuer,
// and resolves the user ID from the subject claim
func (v *TokenVerifier) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.config.Auth.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if v.config.Auth.Issuer != "" && claims.Issuer != v.config.Auth.Issuer {
		return nil, fmt.Errorf("unexpected token issuer: %s", claims.Issuer)
	}

	// Hosted auth puts the user ID in the subject; the user_id claim is
	// a convenience duplicate some token versions omit.
	if claims.UserID == uuid.Nil {
		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return nil, fmt.Errorf("token subject is not a user ID: %w", err)
		}
		claims.UserID = userID
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts the bearer token from an
// Authorization header
func ExtractTokenFromHeader(authHeader string) string {
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}
	return ""
}
