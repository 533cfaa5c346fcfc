package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type GameHandler struct {
	log      logrus.FieldLogger
	sessions *session.Registry
	game     *config.Game
	ws       *config.WebSocket
}

func NewGameHandler(
	log logrus.FieldLogger,
	sessions *session.Registry,
	game *config.Game,
	ws *config.WebSocket,
) *GameHandler {
	return &GameHandler{
		log:      log,
		sessions: sessions,
		game:     game,
		ws:       ws,
	}
}

func (g GameHandler) parseSize(query map[string][]string) (BoardSizeDTO, error) {
	dto, err := ParseBoardSizeDTO(query)
	if err != nil {
		return dto, err
	}
	return dto, g.game.ValidateSize(dto.Width, dto.Height)
}

// lookup writes the error response itself and returns nil when the session
// cannot be served.
func (g GameHandler) lookup(w http.ResponseWriter, r *http.Request) *session.Session {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, fmt.Errorf("invalid session id"))
		return nil
	}
	s, err := g.sessions.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendErrorOrLog(w, g.log, http.StatusNotFound, err)
		return nil
	}
	if err != nil {
		g.log.WithError(err).Error("unable to fetch session")
		w.WriteHeader(http.StatusInternalServerError)
		return nil
	}
	return s
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	size, err := g.parseSize(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	s, err := g.sessions.Create(size.Width, size.Height)
	if err != nil {
		g.log.WithError(err).Error("unable to create a new game")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	sendJSONOrLog(w, g.log, http.StatusCreated, NewGameSessionDTO(s.Info()))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s := g.lookup(w, r)
	if s == nil {
		return
	}
	sendJSONOrLog(w, g.log, http.StatusOK, NewGameSessionDTO(s.Info()))
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	pos, err := ParsePositionDTO(query)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	s := g.lookup(w, r)
	if s == nil {
		return
	}

	var info session.Info
	switch move {
	case Reveal:
		info, err = s.Reveal(pos.X, pos.Y)
	case Flag:
		info, err = s.ToggleFlag(pos.X, pos.Y)
	}
	if errors.Is(err, mines.ErrOutOfBounds) {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		g.log.WithError(err).Error("unable to make a move")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	sendJSONOrLog(w, g.log, http.StatusOK, NewGameSessionDTO(info))
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	size, err := g.parseSize(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	s := g.lookup(w, r)
	if s == nil {
		return
	}

	info, err := s.Reset(size.Width, size.Height)
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	sendJSONOrLog(w, g.log, http.StatusOK, NewGameSessionDTO(info))
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, fmt.Errorf("invalid session id"))
		return
	}
	if !g.sessions.Delete(id) {
		sendErrorOrLog(w, g.log, http.StatusNotFound, session.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
