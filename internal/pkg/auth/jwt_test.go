package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/glowing-legacy-backend/internal/config"
)

const testSecret = "test-secret-at-least-32-characters!!"

func testVerifier(issuer string) *TokenVerifier {
	return NewTokenVerifier(&config.Config{
		Auth: config.AuthConfig{
			JWTSecret: testSecret,
			Issuer:    issuer,
		},
	})
}

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifyToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, Claims{
		UserID: userID,
		Email:  "maya@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "glowing-legacy",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := testVerifier("glowing-legacy").VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "maya@example.com", claims.Email)
}

func TestVerifyTokenUserIDFromSubject(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := testVerifier("").VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestVerifyTokenRejectsBadSignature(t *testing.T) {
	token := signToken(t, "wrong-secret-with-32-characters-abc!", Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := testVerifier("").VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	token := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := testVerifier("").VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongIssuer(t *testing.T) {
	token := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	_, err := testVerifier("glowing-legacy").VerifyToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader(""))
	assert.Empty(t, ExtractTokenFromHeader("Basic dXNlcjpwYXNz"))
	assert.Empty(t, ExtractTokenFromHeader("Bearer"))
}
