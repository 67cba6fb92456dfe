package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rocketscienceinc/tictactoe-match/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type matchService interface {
	NewMatch(ctx context.Context) (*entity.Match, error)
	GetMatch(ctx context.Context, id string) (*entity.Match, error)
	DeleteMatch(ctx context.Context, id string) error

	InitialPlayers() entity.Players
}

type Options struct {
	CORSOrigins []string
	StaticDir   string
}

type Server struct {
	logger       *slog.Logger
	matchService matchService
	options      Options
}

func New(logger *slog.Logger, matchService matchService, options Options) *Server {
	return &Server{
		logger:       logger.With("component", "rest"),
		matchService: matchService,
		options:      options,
	}
}

// Router builds the gin engine with every route of the backend.
func (that *Server) Router() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(that.requestLogger())
	router.Use(requestMetrics())

	if len(that.options.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     that.options.CORSOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/ping", pingHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/health", that.health)
	api.GET("/players", that.players)
	api.GET("/gameboard", that.gameBoard)
	api.GET("/new-match", that.newMatch)
	api.GET("/matches/:id", that.getMatch)
	api.DELETE("/matches/:id", that.deleteMatch)

	router.NoRoute(that.noRoute)

	return router
}

// Start - starts HTTP server and stops it when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
