package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-solo/internal/config"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository"
	"github.com/rocketscienceinc/tictactoe-solo/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-solo/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-solo/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-solo/transport/rest"
	"github.com/rocketscienceinc/tictactoe-solo/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

type repositories struct {
	players repository.PlayerRepository
	rounds  repository.RoundRepository
	close   func()
}

// RunApp - runs the application.
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

	repos, err := newRepositories(ctx, log, conf)
	if err != nil {
		return err
	}
	defer repos.close()

	gameManager := usecase.NewGameManager(
		logger,
		repos.players,
		repos.rounds,
		tictactoe.NewMoveSelector(nil),
		conf.ComputerDelay,
	)
	defer gameManager.Close()

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameManager).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gameManager).Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func newRepositories(ctx context.Context, log *slog.Logger, conf *config.Config) (*repositories, error) {
	if conf.Storage != config.StorageRedis {
		log.Info("Using in-memory storage")

		return &repositories{
			players: repository.NewMemoryPlayerRepository(),
			rounds:  repository.NewMemoryRoundRepository(),
			close:   func() {},
		}, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Using redis storage", "addr", redisAddrString)

	return &repositories{
		players: repository.NewPlayerRepository(redisStorage, conf.RoundTTL),
		rounds:  repository.NewRoundRepository(redisStorage, conf.RoundTTL),
		close: func() {
			if err := redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		},
	}, nil
}
