package rest

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-solo/internal/entity"
	"github.com/rocketscienceinc/tictactoe-solo/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

//go:embed assets/*.svg
var assets embed.FS

type gameManager interface {
	GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error)
	GetOrCreateRound(ctx context.Context, playerID string) (*entity.Round, error)
	MakeTurn(ctx context.Context, playerID string, cell int) (*entity.Round, error)
	NewGame(ctx context.Context, playerID string) (*entity.Round, error)
}

type Server struct {
	logger  *slog.Logger
	manager gameManager
	page    *page
}

func New(logger *slog.Logger, manager gameManager) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		manager: manager,
		page:    newPage(),
	}
}

// Handler returns the router with every route and middleware mounted.
func (that *Server) Handler() http.Handler {
	images, err := fs.Sub(assets, "assets")
	if err != nil {
		panic(fmt.Errorf("failed to mount assets: %w", err))
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(that.logger))
	r.Use(middleware.Recoverer)

	r.Get("/ping", handlers.PingHandler)

	r.Get("/", that.index)
	r.Post("/cells/{cell}", that.pageTurn)
	r.Post("/new", that.pageNewGame)
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.FS(images))))

	r.Route("/api/game", func(r chi.Router) {
		r.Get("/", that.getGame)
		r.Post("/cells/{cell}", that.makeTurn)
		r.Post("/new", that.newGame)
	})

	return r
}

// Start - starts HTTP server and shuts it down when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Info("request served",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"requestID", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
