package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/drodber/results-service/internal/handlers"
	"github.com/drodber/results-service/internal/routes"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type App struct {
	log    *slog.Logger
	engine *gin.Engine
	server *http.Server
	port   int
}

// NewApp builds the gin engine, mounts the API routes and wraps the
// engine in an http.Server.
func NewApp(
	log *slog.Logger,
	port int,
	resultHandler *handlers.ResultHandler,
	loginHandler *handlers.LoginHandler,
	authMiddleware gin.HandlerFunc,
) *App {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"ETag", "Location", "Allow"},
		AllowCredentials: true,
	}))

	api := r.Group("/api/v1")
	{
		routes.RegisterPublicRoutes(api, resultHandler, loginHandler)

		privateGroup := api.Group("", authMiddleware)
		routes.RegisterPrivateRoutes(privateGroup, resultHandler)
	}

	// Home page redirect to the API docs
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/api-docs/index.html")
	})

	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	return &App{
		log:    log,
		engine: r,
		server: httpServer,
		port:   port,
	}
}

// Run starts the HTTP server.
func (a *App) Run() error {
	a.log.Info("HTTP server is running", slog.String("addr", a.server.Addr))
	return a.server.ListenAndServe()
}

// Stop shuts the server down gracefully.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("HTTP server is stopping...")
	return a.server.Shutdown(ctx)
}

func (a *App) Engine() *gin.Engine {
	return a.engine
}
