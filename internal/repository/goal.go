package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/pagination"
)

type GoalRepository interface {
	WithTx(tx *sqlx.Tx) GoalRepository
	Create(ctx context.Context, owner model.OwnerID, goal *model.Goal) error
	ByID(ctx context.Context, owner model.OwnerID, goalID int64) (*model.Goal, error)
	Goals(ctx context.Context, owner model.OwnerID, page pagination.Params) (pagination.Page[*model.Goal], error)
	Update(ctx context.Context, owner model.OwnerID, goal *model.Goal) error
	Delete(ctx context.Context, owner model.OwnerID, goalID int64) error
}

type goalRepository struct {
	scoped[model.Goal]
}

func NewGoalRepository(db sqlx.ExtContext) GoalRepository {
	return &goalRepository{scoped[model.Goal]{
		db:       db,
		table:    "goals",
		notFound: ErrGoalNotFound,
		id:       model.GoalID,
	}}
}

func (r *goalRepository) WithTx(tx *sqlx.Tx) GoalRepository {
	return NewGoalRepository(tx)
}

// Create stores goal under owner. Any UserID already set on goal is replaced.
func (r *goalRepository) Create(ctx context.Context, owner model.OwnerID, goal *model.Goal) error {
	goal.UserID = int64(owner)

	query := `INSERT INTO goals (user_id, title, created_at, updated_at)
	          VALUES (?, ?, ?, ?) RETURNING id`

	id, err := r.insert(ctx, query,
		goal.UserID,
		goal.Title,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		return err
	}

	goal.ID = id
	return nil
}

func (r *goalRepository) ByID(ctx context.Context, owner model.OwnerID, goalID int64) (*model.Goal, error) {
	return r.byID(ctx, owner, goalID)
}

func (r *goalRepository) Goals(ctx context.Context, owner model.OwnerID, page pagination.Params) (pagination.Page[*model.Goal], error) {
	return r.list(ctx, owner, nil, page)
}

func (r *goalRepository) Update(ctx context.Context, owner model.OwnerID, goal *model.Goal) error {
	query := `UPDATE goals
	          SET title = ?, updated_at = ?
	          WHERE id = ? AND user_id = ?`

	return r.exec(ctx, query,
		goal.Title,
		goal.UpdatedAt,
		goal.ID,
		int64(owner),
	)
}

func (r *goalRepository) Delete(ctx context.Context, owner model.OwnerID, goalID int64) error {
	return r.delete(ctx, owner, goalID)
}
