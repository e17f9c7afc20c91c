package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/pagination"
)

type NoteRepository interface {
	WithTx(tx *sqlx.Tx) NoteRepository
	Create(ctx context.Context, owner model.OwnerID, note *model.Note) error
	ByID(ctx context.Context, owner model.OwnerID, noteID int64) (*model.Note, error)
	Notes(ctx context.Context, owner model.OwnerID, filter model.NoteFilter, page pagination.Params) (pagination.Page[*model.Note], error)
	Update(ctx context.Context, owner model.OwnerID, note *model.Note) error
	Delete(ctx context.Context, owner model.OwnerID, noteID int64) error
}

type noteRepository struct {
	scoped[model.Note]
}

func NewNoteRepository(db sqlx.ExtContext) NoteRepository {
	return &noteRepository{scoped[model.Note]{
		db:       db,
		table:    "notes",
		notFound: ErrNoteNotFound,
		id:       model.NoteID,
	}}
}

func (r *noteRepository) WithTx(tx *sqlx.Tx) NoteRepository {
	return NewNoteRepository(tx)
}

func (r *noteRepository) Create(ctx context.Context, owner model.OwnerID, note *model.Note) error {
	note.UserID = int64(owner)

	query := `INSERT INTO notes (user_id, goal_id, todo_id, title, content, link_url, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`

	id, err := r.insert(ctx, query,
		note.UserID,
		note.GoalID,
		note.TodoID,
		note.Title,
		note.Content,
		note.LinkURL,
		note.CreatedAt,
		note.UpdatedAt,
	)
	if err != nil {
		return err
	}

	note.ID = id
	return nil
}

func (r *noteRepository) ByID(ctx context.Context, owner model.OwnerID, noteID int64) (*model.Note, error) {
	return r.byID(ctx, owner, noteID)
}

func (r *noteRepository) Notes(ctx context.Context, owner model.OwnerID, filter model.NoteFilter, page pagination.Params) (pagination.Page[*model.Note], error) {
	var conds []condition
	if filter.GoalID != nil {
		conds = append(conds, eq("goal_id", *filter.GoalID))
	}
	if filter.TodoID != nil {
		conds = append(conds, eq("todo_id", *filter.TodoID))
	}

	return r.list(ctx, owner, conds, page)
}

func (r *noteRepository) Update(ctx context.Context, owner model.OwnerID, note *model.Note) error {
	query := `UPDATE notes
	          SET title = ?, content = ?, link_url = ?, updated_at = ?
	          WHERE id = ? AND user_id = ?`

	return r.exec(ctx, query,
		note.Title,
		note.Content,
		note.LinkURL,
		note.UpdatedAt,
		note.ID,
		int64(owner),
	)
}

func (r *noteRepository) Delete(ctx context.Context, owner model.OwnerID, noteID int64) error {
	return r.delete(ctx, owner, noteID)
}
