package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

type ResultStore interface {
	CreateResult(ctx context.Context, params repository.CreateResultParams) error
	GetHighscores(ctx context.Context, filter repository.HighscoreFilter) ([]repository.Highscore, error)
}

var errNoDatabase = errors.New("highscores are not available")

const maxHighscores = 100

// HighscoreHandler serves won games. With a nil store it answers 503.
type HighscoreHandler struct {
	log   logrus.FieldLogger
	store ResultStore
}

func NewHighscoreHandler(log logrus.FieldLogger, store ResultStore) *HighscoreHandler {
	return &HighscoreHandler{log: log, store: store}
}

// Record stores a finished game. It is meant to be registered with
// [session.Registry.OnFinish].
func (h HighscoreHandler) Record(ctx context.Context, result session.Result) error {
	if h.store == nil {
		return nil
	}
	err := h.store.CreateResult(ctx, repository.CreateResultParams{
		GameID:        result.GameID,
		GameSessionID: result.SessionID,
		Width:         result.Width,
		Height:        result.Height,
		Won:           result.Phase == mines.Won,
		StartedAt:     result.StartedAt,
		EndedAt:       result.EndedAt,
	})
	if errors.Is(err, repository.ErrAlreadyRecorded) {
		h.log.WithFields(logrus.Fields{
			"session": result.SessionID,
			"game":    result.GameID,
		}).Warn("result already recorded")
		return nil
	}
	return err
}

func (h HighscoreHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		sendErrorOrLog(w, h.log, http.StatusServiceUnavailable, errNoDatabase)
		return
	}

	dto, err := ParseHighscoresDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, h.log, http.StatusBadRequest, err)
		return
	}
	if dto.Limit <= 0 || dto.Limit > maxHighscores {
		dto.Limit = maxHighscores
	}

	scores, err := h.store.GetHighscores(r.Context(), repository.HighscoreFilter{
		Width:  dto.Width,
		Height: dto.Height,
		Limit:  dto.Limit,
	})
	if err != nil {
		h.log.WithError(err).Error("unable to fetch highscores")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if scores == nil {
		scores = []repository.Highscore{}
	}

	sendJSONOrLog(w, h.log, http.StatusOK, scores)
}
