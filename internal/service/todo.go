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

type TodoService struct {
	db       *sqlx.DB
	repo     repository.TodoRepository
	goalRepo repository.GoalRepository
}

func NewTodoService(database *sqlx.DB, repo repository.TodoRepository, goalRepo repository.GoalRepository) *TodoService {
	return &TodoService{
		db:       database,
		repo:     repo,
		goalRepo: goalRepo,
	}
}

// Create stores a todo under a goal the owner holds. A goal owned by
// someone else is reported as not found.
func (s *TodoService) Create(ctx context.Context, owner model.OwnerID, todo *model.Todo) error {
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	return db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		_, err := s.goalRepo.WithTx(tx).ByID(ctx, owner, todo.GoalID)
		if err != nil {
			return err
		}

		return s.repo.WithTx(tx).Create(ctx, owner, todo)
	})
}

func (s *TodoService) ByID(ctx context.Context, owner model.OwnerID, todoID int64) (*model.Todo, error) {
	return s.repo.ByID(ctx, owner, todoID)
}

func (s *TodoService) Todos(ctx context.Context, owner model.OwnerID, filter model.TodoFilter, page pagination.Params) (pagination.Page[*model.Todo], error) {
	return s.repo.Todos(ctx, owner, filter, page)
}

func (s *TodoService) Progress(ctx context.Context, owner model.OwnerID, goalID int64) (*model.TodoProgress, error) {
	_, err := s.goalRepo.ByID(ctx, owner, goalID)
	if err != nil {
		return nil, err
	}

	return s.repo.Progress(ctx, owner, goalID)
}

// Update merges the supplied fields into the stored todo. Moving the todo to
// another goal requires the owner to hold that goal too.
func (s *TodoService) Update(ctx context.Context, owner model.OwnerID, todoID int64, p model.TodoPatch) (*model.Todo, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}

	var todo *model.Todo
	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := s.repo.WithTx(tx)

		todo, err = repo.ByID(ctx, owner, todoID)
		if err != nil {
			return err
		}

		if goalID, ok := p.GoalID.Value(); ok && goalID != todo.GoalID {
			_, err = s.goalRepo.WithTx(tx).ByID(ctx, owner, goalID)
			if err != nil {
				return err
			}
		}

		p.Apply(todo)
		todo.UpdatedAt = time.Now().UTC()

		return repo.Update(ctx, owner, todo)
	})
	if err != nil {
		return nil, err
	}

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, owner model.OwnerID, todoID int64) error {
	return db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return s.repo.WithTx(tx).Delete(ctx, owner, todoID)
	})
}
