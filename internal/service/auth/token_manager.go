package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenMissing is returned when a protected call carries no token.
	ErrTokenMissing = errors.New("token not found")
	// ErrInvalidToken indicates the token failed signature or expiry checks.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the identity a verified token binds.
type Claims struct {
	UserID   string
	Username string
	IsAdmin  bool
}

type tokenClaims struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"admin"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256-signed bearer tokens with a fixed
// TTL. There is no refresh mechanism; expiry forces re-login.
type TokenManager struct {
	signingKey []byte
	ttl        time.Duration
}

func NewTokenManager(signingKey string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		signingKey: []byte(signingKey),
		ttl:        ttl,
	}
}

// Issue produces a signed, time-limited token binding user identity and the
// admin flag.
func (m *TokenManager) Issue(userID, username string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Username: username,
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.signingKey)
}

// Verify validates the token and returns the claims it binds. An empty token
// yields ErrTokenMissing; anything failing parsing, signature or expiry
// yields ErrInvalidToken.
func (m *TokenManager) Verify(token string) (Claims, error) {
	if token == "" {
		return Claims{}, ErrTokenMissing
	}
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.signingKey, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return Claims{
		UserID:   claims.Subject,
		Username: claims.Username,
		IsAdmin:  claims.IsAdmin,
	}, nil
}
