package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issue signs an HS256 session token for the user.
func Issue(secret string, userID int64, username string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"exp":      time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse verifies a raw token string and returns its claims.
func Parse(tokenStr, secret string) (jwt.MapClaims, error) {
	if tokenStr == "" {
		return nil, errors.New("missing token")
	}
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return nil, errors.New("invalid claims")
	}
	return mc, nil
}

// UserID reads the numeric subject claim.
func UserID(mc jwt.MapClaims) (int64, error) {
	// JSON numbers decode as float64.
	if f, ok := mc["sub"].(float64); ok && f > 0 {
		return int64(f), nil
	}
	return 0, errors.New("sub missing in claims")
}
