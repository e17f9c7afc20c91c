package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goalnote/internal/db"
	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/pagination"
	"github.com/templui/goalnote/internal/repository"
)

type GoalService struct {
	db   *sqlx.DB
	repo repository.GoalRepository
}

func NewGoalService(database *sqlx.DB, repo repository.GoalRepository) *GoalService {
	return &GoalService{
		db:   database,
		repo: repo,
	}
}

func (s *GoalService) Create(ctx context.Context, owner model.OwnerID, title string) (*model.Goal, error) {
	now := time.Now().UTC()
	goal := &model.Goal{
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return s.repo.WithTx(tx).Create(ctx, owner, goal)
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) ByID(ctx context.Context, owner model.OwnerID, goalID int64) (*model.Goal, error) {
	return s.repo.ByID(ctx, owner, goalID)
}

func (s *GoalService) Goals(ctx context.Context, owner model.OwnerID, page pagination.Params) (pagination.Page[*model.Goal], error) {
	return s.repo.Goals(ctx, owner, page)
}

// Update merges the supplied fields into the stored goal. An empty patch
// only refreshes updated_at.
func (s *GoalService) Update(ctx context.Context, owner model.OwnerID, goalID int64, p model.GoalPatch) (*model.Goal, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}

	var goal *model.Goal
	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := s.repo.WithTx(tx)

		goal, err = repo.ByID(ctx, owner, goalID)
		if err != nil {
			return err
		}

		p.Apply(goal)
		goal.UpdatedAt = time.Now().UTC()

		return repo.Update(ctx, owner, goal)
	})
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, owner model.OwnerID, goalID int64) error {
	return db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return s.repo.WithTx(tx).Delete(ctx, owner, goalID)
	})
}
