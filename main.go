package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-match/internal"
	"github.com/rocketscienceinc/tictactoe-match/internal/config"
)

const stderrLogFile = "-"

var (
	configPath   string
	clientSource string
)

// main - is the entry point of the application. It builds the command tree and runs it.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tictactoe",
		Short:        "Two-player tic-tac-toe: match backend and terminal client",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config.yml", "path to the config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the match backend",
		RunE: func(_ *cobra.Command, _ []string) error {
			conf := initConfig()
			logger := initLogger(conf, os.Stdout)

			if err := app.RunApp(logger, conf); err != nil {
				return fmt.Errorf("app run failed: %w", err)
			}

			return nil
		},
	}

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "Play a match in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := initConfig()
			if cmd.Flags().Changed("source") {
				conf.Client.Source = clientSource
			}

			out, closeLog, err := openClientLog(conf.Client.LogFile)
			if err != nil {
				return err
			}
			defer closeLog()

			logger := initLogger(conf, out)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err = app.RunClient(ctx, logger, conf); err != nil {
				return fmt.Errorf("client run failed: %w", err)
			}

			return nil
		},
	}

	playCmd.Flags().StringVar(&clientSource, "source", config.SourceRemote, "where matches come from: local or remote")

	rootCmd.AddCommand(serveCmd, playCmd)

	return rootCmd
}

// initialize config.
func initConfig() *config.Config {
	return config.MustLoad(configPath)
}

// initialize logger.
func initLogger(conf *config.Config, out io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

// openClientLog keeps client logs away from the terminal the UI draws on.
func openClientLog(path string) (io.Writer, func(), error) {
	if path == stderrLogFile {
		return os.Stderr, func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open client log file: %w", err)
	}

	return file, func() { _ = file.Close() }, nil
}
