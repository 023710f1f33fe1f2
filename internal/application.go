package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/permutation"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository"
	"github.com/rocketscienceinc/tictactoe-console/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-console/internal/service"
	"github.com/rocketscienceinc/tictactoe-console/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis host is empty")

// NewLogger - builds the JSON logger for the configured level.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var logLevel slog.Level

	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// RunPermutations - prints the configured number of permutations of 1..length, one per line.
func RunPermutations(logger *slog.Logger, conf *config.Config, out io.Writer) error {
	log := logger.With("component", "permutations")

	start := permutation.Identity(conf.Permutations.Length)

	perms, err := permutation.Generate(start, conf.Permutations.Count)
	if err != nil && !errors.Is(err, apperror.ErrNoSuccessor) {
		return fmt.Errorf("failed to generate permutations: %w", err)
	}

	if err != nil {
		log.Warn("ran out of permutations", "requested", conf.Permutations.Count, "generated", len(perms))
	}

	for _, perm := range perms {
		if _, err = fmt.Fprintln(out, permutation.Format(perm)); err != nil {
			return fmt.Errorf("failed to write permutation: %w", err)
		}
	}

	log.Debug("permutations printed", "length", conf.Permutations.Length, "count", len(perms))

	return nil
}

// RunGame - runs one console session until it ends or the process is interrupted.
func RunGame(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	var results repository.ResultRepository
	if conf.Scoreboard.Enabled {
		if conf.Redis.Host == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		results = repository.NewResultRepository(redisStorage.Connection, conf.Scoreboard.History)
	}

	session := usecase.NewSession(logger, service.NewLineReader(in), out, results)

	// the session blocks on console reads, which a signal cannot interrupt
	errCh := make(chan error, 1)
	go func() {
		_, err := session.Run(ctx)
		errCh <- err
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("game session failed: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
