package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"lostark-hub/partyfinder/internal/constants"
	"lostark-hub/partyfinder/internal/models/dtos"
)

const (
	defaultBoardLimit = 50
	maxBoardLimit     = 200
)

// BoardFilter narrows the board listing. Zero values mean "any".
type BoardFilter struct {
	ContentType constants.ContentType
	RegionID    uint
	ServerID    uint
	States      []constants.PostState
	Limit       int
}

// PostBoardRepository serves the read-only board listing with raw SQL.
type PostBoardRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewPostBoardRepository(db *sqlx.DB) *PostBoardRepository {
	return &PostBoardRepository{db: db, now: time.Now}
}

func (r *PostBoardRepository) List(ctx context.Context, f BoardFilter) ([]dtos.BoardPost, error) {
	states := f.States
	if len(states) == 0 {
		states = []constants.PostState{constants.PostStateRecruiting, constants.PostStateRerecruiting, constants.PostStateFull}
	}
	limit := f.Limit
	if limit <= 0 {
		limit = defaultBoardLimit
	}
	if limit > maxBoardLimit {
		limit = maxBoardLimit
	}

	query := constants.ListBoardPosts
	args := []any{r.now().UTC(), states}
	if f.ContentType != "" {
		query += " AND b.content_type = ?"
		args = append(args, f.ContentType)
	}
	if f.ServerID != 0 {
		query += " AND b.server_id = ?"
		args = append(args, f.ServerID)
	}
	if f.RegionID != 0 {
		query += " AND b.server_id IN (SELECT id FROM servers WHERE region_id = ?)"
		args = append(args, f.RegionID)
	}
	query += constants.BoardOrderLimit
	args = append(args, limit)

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to expand board query: %w", err)
	}

	posts := []dtos.BoardPost{}
	if err := r.db.SelectContext(ctx, &posts, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list board: %w", err)
	}
	return posts, nil
}
