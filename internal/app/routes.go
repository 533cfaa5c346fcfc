package app

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/handlers"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.sessions, a.game, a.ws)
	highscores := handlers.NewHighscoreHandler(a.log, a.resultStore())

	a.sessions.OnFinish(func(r session.Result) {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := highscores.Record(ctx, r); err != nil {
			a.log.WithError(err).WithFields(logrus.Fields{
				"session": r.SessionID,
				"game":    r.GameID,
			}).Error("unable to record result")
		}
	})

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE /game/{id}", game.Delete)
	a.router.HandleFunc("POST /game/{id}/move", game.MakeAMove)
	a.router.HandleFunc("POST /game/{id}/reset", game.Reset)
	a.router.HandleFunc("/game/{id}/connect", game.ConnectWS)
	a.router.HandleFunc("GET /highscores", highscores.Highscores)
}
