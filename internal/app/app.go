package app

import (
	"context"
	"log/slog"

	httpapp "github.com/drodber/results-service/internal/app/http"
	"github.com/drodber/results-service/internal/config"
	"github.com/drodber/results-service/internal/handlers"
	"github.com/drodber/results-service/internal/middleware"
	"github.com/drodber/results-service/internal/repo/postgres"
	"github.com/drodber/results-service/internal/services"
)

type App struct {
	HTTPServer *httpapp.App
	Results    *services.ResultService
	Auth       *services.Auth
}

func NewApp(log *slog.Logger, cfg *config.Config) *App {
	storage, err := postgres.New(cfg.StoragePath)
	if err != nil {
		panic(err)
	}

	resultService := services.NewResultService(log, storage, storage)
	authService := services.NewAuth(log, storage, cfg.Token.Secret, cfg.Token.TTL)

	resultHandler := handlers.NewResultHandler(resultService)
	loginHandler := handlers.NewLoginHandler(authService)
	authMiddleware := middleware.NewAuthMiddleware(cfg.Token.Secret)

	httpApp := httpapp.NewApp(log, cfg.HTTP.Port, resultHandler, loginHandler, authMiddleware.Middleware())

	return &App{
		HTTPServer: httpApp,
		Results:    resultService,
		Auth:       authService,
	}
}

func (a *App) Stop(ctx context.Context) error {
	return a.HTTPServer.Stop(ctx)
}
