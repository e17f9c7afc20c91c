package service

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/db"
	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/pagination"
	"github.com/templui/goalnote/internal/repository"
)

var ErrTodoNotInGoal = apperror.BadRequest("Todo does not belong to the goal")

type NoteService struct {
	db       *sqlx.DB
	repo     repository.NoteRepository
	goalRepo repository.GoalRepository
	todoRepo repository.TodoRepository
}

func NewNoteService(
	database *sqlx.DB,
	repo repository.NoteRepository,
	goalRepo repository.GoalRepository,
	todoRepo repository.TodoRepository,
) *NoteService {
	return &NoteService{
		db:       database,
		repo:     repo,
		goalRepo: goalRepo,
		todoRepo: todoRepo,
	}
}

// Create stores a note for one of the owner's todos and links the todo back
// to it in the same transaction.
func (s *NoteService) Create(ctx context.Context, owner model.OwnerID, note *model.Note) error {
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now

	return db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		todoRepo := s.todoRepo.WithTx(tx)

		_, err := s.goalRepo.WithTx(tx).ByID(ctx, owner, note.GoalID)
		if err != nil {
			return err
		}

		todo, err := todoRepo.ByID(ctx, owner, note.TodoID)
		if err != nil {
			return err
		}
		if todo.GoalID != note.GoalID {
			return ErrTodoNotInGoal
		}

		err = s.repo.WithTx(tx).Create(ctx, owner, note)
		if err != nil {
			return err
		}

		return todoRepo.LinkNote(ctx, owner, todo.ID, note.ID)
	})
}

func (s *NoteService) ByID(ctx context.Context, owner model.OwnerID, noteID int64) (*model.Note, error) {
	return s.repo.ByID(ctx, owner, noteID)
}

func (s *NoteService) Notes(ctx context.Context, owner model.OwnerID, filter model.NoteFilter, page pagination.Params) (pagination.Page[*model.Note], error) {
	return s.repo.Notes(ctx, owner, filter, page)
}

func (s *NoteService) Update(ctx context.Context, owner model.OwnerID, noteID int64, p model.NotePatch) (*model.Note, error) {
	err := p.Validate()
	if err != nil {
		return nil, err
	}

	var note *model.Note
	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := s.repo.WithTx(tx)

		note, err = repo.ByID(ctx, owner, noteID)
		if err != nil {
			return err
		}

		p.Apply(note)
		note.UpdatedAt = time.Now().UTC()

		return repo.Update(ctx, owner, note)
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, owner model.OwnerID, noteID int64) error {
	return db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return s.repo.WithTx(tx).Delete(ctx, owner, noteID)
	})
}
