package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/pagination"
)

type TodoRepository interface {
	WithTx(tx *sqlx.Tx) TodoRepository
	Create(ctx context.Context, owner model.OwnerID, todo *model.Todo) error
	ByID(ctx context.Context, owner model.OwnerID, todoID int64) (*model.Todo, error)
	Todos(ctx context.Context, owner model.OwnerID, filter model.TodoFilter, page pagination.Params) (pagination.Page[*model.Todo], error)
	Progress(ctx context.Context, owner model.OwnerID, goalID int64) (*model.TodoProgress, error)
	Update(ctx context.Context, owner model.OwnerID, todo *model.Todo) error
	LinkNote(ctx context.Context, owner model.OwnerID, todoID, noteID int64) error
	Delete(ctx context.Context, owner model.OwnerID, todoID int64) error
}

type todoRepository struct {
	scoped[model.Todo]
}

func NewTodoRepository(db sqlx.ExtContext) TodoRepository {
	return &todoRepository{scoped[model.Todo]{
		db:       db,
		table:    "todos",
		notFound: ErrTodoNotFound,
		id:       model.TodoID,
	}}
}

func (r *todoRepository) WithTx(tx *sqlx.Tx) TodoRepository {
	return NewTodoRepository(tx)
}

func (r *todoRepository) Create(ctx context.Context, owner model.OwnerID, todo *model.Todo) error {
	todo.UserID = int64(owner)

	query := `INSERT INTO todos (user_id, goal_id, note_id, title, done, link_url, file_url, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`

	id, err := r.insert(ctx, query,
		todo.UserID,
		todo.GoalID,
		todo.NoteID,
		todo.Title,
		todo.Done,
		todo.LinkURL,
		todo.FileURL,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return err
	}

	todo.ID = id
	return nil
}

func (r *todoRepository) ByID(ctx context.Context, owner model.OwnerID, todoID int64) (*model.Todo, error) {
	return r.byID(ctx, owner, todoID)
}

func todoConditions(filter model.TodoFilter) []condition {
	var conds []condition
	if filter.GoalID != nil {
		conds = append(conds, eq("goal_id", *filter.GoalID))
	}
	if filter.Done != nil {
		conds = append(conds, eq("done", *filter.Done))
	}
	return conds
}

func (r *todoRepository) Todos(ctx context.Context, owner model.OwnerID, filter model.TodoFilter, page pagination.Params) (pagination.Page[*model.Todo], error) {
	return r.list(ctx, owner, todoConditions(filter), page)
}

// Progress counts all and completed todos of one goal.
func (r *todoRepository) Progress(ctx context.Context, owner model.OwnerID, goalID int64) (*model.TodoProgress, error) {
	progress := &model.TodoProgress{GoalID: goalID}
	query := r.db.Rebind(`SELECT COUNT(*) AS total,
	                             COALESCE(SUM(CASE WHEN done THEN 1 ELSE 0 END), 0) AS completed
	                      FROM todos
	                      WHERE user_id = ? AND goal_id = ?`)

	err := sqlx.GetContext(ctx, r.db, progress, query, int64(owner), goalID)
	if err != nil {
		return nil, translate(err)
	}

	if progress.Total > 0 {
		progress.Progress = float64(progress.Completed) / float64(progress.Total)
	}

	return progress, nil
}

func (r *todoRepository) Update(ctx context.Context, owner model.OwnerID, todo *model.Todo) error {
	query := `UPDATE todos
	          SET goal_id = ?, title = ?, done = ?, link_url = ?, file_url = ?, updated_at = ?
	          WHERE id = ? AND user_id = ?`

	return r.exec(ctx, query,
		todo.GoalID,
		todo.Title,
		todo.Done,
		todo.LinkURL,
		todo.FileURL,
		todo.UpdatedAt,
		todo.ID,
		int64(owner),
	)
}

// LinkNote points a todo at the note written for it.
func (r *todoRepository) LinkNote(ctx context.Context, owner model.OwnerID, todoID, noteID int64) error {
	query := `UPDATE todos SET note_id = ? WHERE id = ? AND user_id = ?`
	return r.exec(ctx, query, noteID, todoID, int64(owner))
}

func (r *todoRepository) Delete(ctx context.Context, owner model.OwnerID, todoID int64) error {
	return r.delete(ctx, owner, todoID)
}
