package model

import (
	"strings"
	"time"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/patch"
)

type Goal struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Title     string    `db:"title" json:"title"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func GoalID(g *Goal) int64 { return g.ID }

type GoalPatch struct {
	Title patch.Field[string] `json:"title" validate:"omitnil,notblank,max=255"`
}

func (p GoalPatch) Validate() error {
	if title, ok := p.Title.Value(); ok && strings.TrimSpace(title) == "" {
		return apperror.BadRequest("title must not be empty")
	}
	return nil
}

func (p GoalPatch) Apply(g *Goal) {
	p.Title.Apply(&g.Title)
}
