package handlers

import (
	"errors"
	"strings"

	"github.com/gorilla/schema"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type BoardSizeDTO struct {
	Width  int `schema:"width,required"`
	Height int `schema:"height,required"`
}

func ParseBoardSizeDTO(src map[string][]string) (BoardSizeDTO, error) {
	var dto BoardSizeDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePositionDTO(src map[string][]string) (PositionDTO, error) {
	var dto PositionDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type HighscoresDTO struct {
	Width  *int `schema:"width"`
	Height *int `schema:"height"`
	Limit  int  `schema:"limit"`
}

func ParseHighscoresDTO(src map[string][]string) (HighscoresDTO, error) {
	var dto HighscoresDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type GameMove uint8

const (
	Reveal GameMove = iota + 1
	Flag
)

var ErrBadMove = errors.New("move must be one of 'reveal', 'flag'")

func ParseGameMove(s string) (GameMove, error) {
	switch strings.ToLower(s) {
	case "reveal", "open":
		return Reveal, nil
	case "flag":
		return Flag, nil
	default:
		return 0, ErrBadMove
	}
}

type GameSessionDTO struct {
	GameSessionId string `json:"game_session_id"`
	GameId        string `json:"game_id"`
	StartedAt     int64  `json:"started_at"`
	EndedAt       *int64 `json:"ended_at,omitempty"`
	mines.Snapshot
}

func NewGameSessionDTO(info session.Info) *GameSessionDTO {
	var endedAt *int64
	if info.EndedAt != nil {
		e := info.EndedAt.UnixMilli()
		endedAt = &e
	}
	return &GameSessionDTO{
		GameSessionId: info.ID.String(),
		GameId:        info.GameID.String(),
		StartedAt:     info.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
		Snapshot:      info.State,
	}
}
