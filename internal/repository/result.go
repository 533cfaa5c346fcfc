package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrAlreadyRecorded = errors.New("result already recorded")

type CreateResultParams struct {
	GameID        uuid.UUID
	GameSessionID uuid.UUID
	Width         int
	Height        int
	Won           bool
	StartedAt     time.Time
	EndedAt       time.Time
}

func (q *Queries) CreateResult(ctx context.Context, params CreateResultParams) error {
	_, err := q.db.Exec(
		ctx,
		`INSERT INTO game_result (
			game_id, game_session_id, width, height, won, started_at, ended_at
		)
		VALUES (
			@game_id, @game_session_id, @width, @height, @won, @started_at, @ended_at
		);`,
		pgx.NamedArgs{
			"game_id":         params.GameID,
			"game_session_id": params.GameSessionID,
			"width":           params.Width,
			"height":          params.Height,
			"won":             params.Won,
			"started_at":      params.StartedAt,
			"ended_at":        params.EndedAt,
		},
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrAlreadyRecorded
	}
	return err
}

type Highscore struct {
	GameId        uuid.UUID `json:"game_id" db:"game_id"`
	GameSessionId uuid.UUID `json:"game_session_id" db:"game_session_id"`
	Width         int       `json:"width" db:"width"`
	Height        int       `json:"height" db:"height"`
	EndedAt       time.Time `json:"ended_at" db:"ended_at"`
	PlaytimeMs    float64   `json:"playtime_ms" db:"playtime_ms"`
}

type HighscoreFilter struct {
	Width  *int
	Height *int
	Limit  int
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Width != nil {
		clauses = append(clauses, "width = @width")
		args["width"] = *f.Width
	}
	if f.Height != nil {
		clauses = append(clauses, "height = @height")
		args["height"] = *f.Height
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) GetHighscores(
	ctx context.Context, filter HighscoreFilter,
) ([]Highscore, error) {
	query := `
	SELECT
		game_id,
		game_session_id,
		width,
		height,
		ended_at,
		(
			extract('epoch' from ended_at) -
			extract('epoch' from started_at)
		) * 1000 playtime_ms
	FROM game_result
	WHERE won = true
	`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " AND " + whereClause
	}

	query += " ORDER BY playtime_ms"
	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args["limit"] = filter.Limit
	}

	rows, err := q.db.Query(ctx, query+";", args)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
