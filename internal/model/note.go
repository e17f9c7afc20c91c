package model

import (
	"strings"
	"time"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/patch"
)

type Note struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	GoalID    int64     `db:"goal_id" json:"goal_id"`
	TodoID    int64     `db:"todo_id" json:"todo_id"`
	Title     string    `db:"title" json:"title"`
	Content   string    `db:"content" json:"content"`
	LinkURL   *string   `db:"link_url" json:"link_url"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func NoteID(n *Note) int64 { return n.ID }

type NoteFilter struct {
	GoalID *int64
	TodoID *int64
}

type NotePatch struct {
	Title   patch.Field[string]  `json:"title" validate:"omitnil,notblank,max=255"`
	Content patch.Field[string]  `json:"content"`
	LinkURL patch.Field[*string] `json:"link_url" validate:"omitnil,url"`
}

func (p NotePatch) Validate() error {
	if title, ok := p.Title.Value(); ok && strings.TrimSpace(title) == "" {
		return apperror.BadRequest("title must not be empty")
	}
	return nil
}

func (p NotePatch) Apply(n *Note) {
	p.Title.Apply(&n.Title)
	p.Content.Apply(&n.Content)
	p.LinkURL.Apply(&n.LinkURL)
}
