package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/drodber/results-service/internal/lib/jwt"
	"github.com/drodber/results-service/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Auth struct {
	log         *slog.Logger
	userStorage UserStorage
	tokenSecret string
	tokenTTL    time.Duration
}

func NewAuth(log *slog.Logger, userStorage UserStorage, tokenSecret string, tokenTTL time.Duration) *Auth {
	return &Auth{
		log:         log,
		userStorage: userStorage,
		tokenSecret: tokenSecret,
		tokenTTL:    tokenTTL,
	}
}

// Login checks the credentials against the users table and returns a signed
// access token. Unknown user and wrong password are indistinguishable to
// the caller.
func (a *Auth) Login(ctx context.Context, email, password string) (string, error) {
	const op = "services.Auth.Login"

	log := a.log.With(slog.String("op", op))

	user, err := a.userStorage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			log.Warn("user not found")
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", slog.Int64("user", user.ID))
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewAccessToken(user, a.tokenSecret, a.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.Int64("user", user.ID))

	return token, nil
}
