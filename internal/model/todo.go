package model

import (
	"strings"
	"time"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/patch"
)

type Todo struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	GoalID    int64     `db:"goal_id" json:"goal_id"`
	NoteID    *int64    `db:"note_id" json:"note_id"`
	Title     string    `db:"title" json:"title"`
	Done      bool      `db:"done" json:"done"`
	LinkURL   *string   `db:"link_url" json:"link_url"`
	FileURL   *string   `db:"file_url" json:"file_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func TodoID(t *Todo) int64 { return t.ID }

// TodoFilter narrows a todo listing. Nil fields do not filter.
type TodoFilter struct {
	GoalID *int64
	Done   *bool
}

type TodoPatch struct {
	Title   patch.Field[string]  `json:"title" validate:"omitnil,notblank,max=255"`
	Done    patch.Field[bool]    `json:"done"`
	LinkURL patch.Field[*string] `json:"linkUrl" validate:"omitnil,url"`
	FileURL patch.Field[*string] `json:"fileUrl"`
	GoalID  patch.Field[int64]   `json:"goalId" validate:"omitnil,gt=0"`
}

func (p TodoPatch) Validate() error {
	if title, ok := p.Title.Value(); ok && strings.TrimSpace(title) == "" {
		return apperror.BadRequest("title must not be empty")
	}
	if goalID, ok := p.GoalID.Value(); ok && goalID <= 0 {
		return apperror.BadRequest("goalId must be a positive integer")
	}
	return nil
}

func (p TodoPatch) Apply(t *Todo) {
	p.Title.Apply(&t.Title)
	p.Done.Apply(&t.Done)
	p.LinkURL.Apply(&t.LinkURL)
	p.FileURL.Apply(&t.FileURL)
	p.GoalID.Apply(&t.GoalID)
}

// TodoProgress summarises completion of the todos under one goal.
// Progress is a ratio between 0 and 1.
type TodoProgress struct {
	GoalID    int64   `db:"-" json:"goal_id"`
	Total     int     `db:"total" json:"total"`
	Completed int     `db:"completed" json:"completed"`
	Progress  float64 `db:"-" json:"progress"`
}
