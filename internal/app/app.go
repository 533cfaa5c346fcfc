package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
	"github.com/vancomm/minesweeper-engine/internal/handlers"
	"github.com/vancomm/minesweeper-engine/internal/middleware"
	"github.com/vancomm/minesweeper-engine/internal/repository"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const (
	shutdownTimeout = 30 * time.Second
	recordTimeout   = 5 * time.Second
)

type App struct {
	log      *logrus.Logger
	config   *config.App
	game     *config.Game
	ws       *config.WebSocket
	router   *http.ServeMux
	db       *pgxpool.Pool
	sessions *session.Registry
}

func New(log *logrus.Logger, cfg *config.App) *App {
	return &App{
		log:    log,
		config: cfg,
		router: http.NewServeMux(),
	}
}

// connect opens the results database. The server keeps running without one:
// games are still playable, only highscores are unavailable.
func (a *App) connect(ctx context.Context) error {
	db, err := database.ConnectAndMigrate(ctx)
	if errors.Is(err, config.ErrNoDatabase) {
		a.log.Warn("no database configured, highscores disabled")
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	return nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Recover(a.log),
		middleware.Logging(a.log),
		middleware.Cors(a.config.CorsOrigins),
	)
}

func (a *App) Start(ctx context.Context) error {
	game, err := config.NewGame()
	if err != nil {
		return err
	}
	a.game = game

	ws, err := config.NewWebSocket()
	if err != nil {
		return err
	}
	a.ws = ws

	if err := a.connect(ctx); err != nil {
		return err
	}
	if a.db != nil {
		defer a.db.Close()
	}

	a.sessions = session.NewRegistry(a.log, game.SessionTTL)
	a.loadRoutes()

	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		a.log.WithField("addr", a.config.Addr).Info("server listening")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	eg.Go(func() error {
		return a.sessions.Run(ctx, game.SweepInterval)
	})

	return eg.Wait()
}

func (a *App) resultStore() handlers.ResultStore {
	if a.db == nil {
		return nil
	}
	return repository.New(a.db)
}
