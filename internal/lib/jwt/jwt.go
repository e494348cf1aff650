package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/drodber/results-service/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken mints an HS256 token carrying the user identity and role.
func NewAccessToken(user entity.User, secret string, ttl time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)

	claims["uid"] = user.ID
	claims["email"] = user.Email
	claims["admin"] = user.Admin
	claims["exp"] = time.Now().Add(ttl).Unix()

	return token.SignedString([]byte(secret))
}

// ParseAccessToken verifies the signature and expiry and rebuilds the
// principal from the claims.
func ParseAccessToken(tokenString, secret string) (entity.Principal, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		return entity.Principal{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return entity.Principal{}, ErrInvalidToken
	}

	uid, ok := claims["uid"].(float64)
	if !ok {
		return entity.Principal{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	admin, _ := claims["admin"].(bool)

	return entity.Principal{UserID: int64(uid), Email: email, Admin: admin}, nil
}
