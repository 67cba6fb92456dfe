package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rocketscienceinc/tictactoe-match/internal/config"
	"github.com/rocketscienceinc/tictactoe-match/internal/provider"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository"
	"github.com/rocketscienceinc/tictactoe-match/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-match/internal/service"
	"github.com/rocketscienceinc/tictactoe-match/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-match/transport/rest"
	"github.com/rocketscienceinc/tictactoe-match/transport/tui"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the backend until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	matchRepo := repository.NewMatchRepository(redisStorage.Connection, conf.MatchTTL)
	matchService := service.NewMatchService(matchRepo)
	restServer := rest.New(logger, matchService, rest.Options{
		CORSOrigins: conf.CORSOrigins,
		StaticDir:   conf.StaticDir,
	})

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// RunClient - runs the terminal client until the player quits.
func RunClient(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "client")

	matchProvider, err := provider.New(conf.Client)
	if err != nil {
		return fmt.Errorf("could not create match provider: %w", err)
	}

	controller := usecase.NewMatchController(logger, matchProvider)

	log.Info("Starting client", "source", conf.Client.Source)

	program := tea.NewProgram(tui.New(ctx, logger, controller), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err = program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("client stopped: %w", err)
	}

	return nil
}
