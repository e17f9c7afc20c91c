package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/pagination"
	"github.com/templui/goalnote/internal/patch"
	"github.com/templui/goalnote/internal/repository"
)

func TestNoteCreateLinksTodo(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	owner := s.register(t, "a@x.com")

	goal, err := s.goals.Create(ctx, owner, "g")
	require.NoError(t, err)
	todo := &model.Todo{GoalID: goal.ID, Title: "t"}
	require.NoError(t, s.todos.Create(ctx, owner, todo))

	note := &model.Note{GoalID: goal.ID, TodoID: todo.ID, Title: "n", Content: "body"}
	require.NoError(t, s.notes.Create(ctx, owner, note))
	assert.NotZero(t, note.ID)

	linked, err := s.todos.ByID(ctx, owner, todo.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.NoteID)
	assert.Equal(t, note.ID, *linked.NoteID)

	todoID := todo.ID
	page, err := s.notes.Notes(ctx, owner, model.NoteFilter{TodoID: &todoID}, pagination.Params{Size: 20, Sort: pagination.SortNewest})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
}

func TestNoteParentChecks(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	alice := s.register(t, "a@x.com")
	bob := s.register(t, "b@x.com")

	goal, err := s.goals.Create(ctx, alice, "g")
	require.NoError(t, err)
	other, err := s.goals.Create(ctx, alice, "other")
	require.NoError(t, err)
	todo := &model.Todo{GoalID: goal.ID, Title: "t"}
	require.NoError(t, s.todos.Create(ctx, alice, todo))

	bobGoal, err := s.goals.Create(ctx, bob, "bob")
	require.NoError(t, err)

	err = s.notes.Create(ctx, bob, &model.Note{GoalID: goal.ID, TodoID: todo.ID, Title: "n"})
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	err = s.notes.Create(ctx, bob, &model.Note{GoalID: bobGoal.ID, TodoID: todo.ID, Title: "n"})
	assert.ErrorIs(t, err, repository.ErrTodoNotFound)

	err = s.notes.Create(ctx, alice, &model.Note{GoalID: other.ID, TodoID: todo.ID, Title: "n"})
	assert.ErrorIs(t, err, ErrTodoNotInGoal)

	// Nothing from the failed attempts was committed
	page, err := s.notes.Notes(ctx, alice, model.NoteFilter{}, pagination.Params{Size: 20, Sort: pagination.SortNewest})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
}

func TestNoteUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestServices(t)
	owner := s.register(t, "a@x.com")

	goal, err := s.goals.Create(ctx, owner, "g")
	require.NoError(t, err)
	todo := &model.Todo{GoalID: goal.ID, Title: "t"}
	require.NoError(t, s.todos.Create(ctx, owner, todo))
	note := &model.Note{GoalID: goal.ID, TodoID: todo.ID, Title: "n", Content: "old"}
	require.NoError(t, s.notes.Create(ctx, owner, note))

	updated, err := s.notes.Update(ctx, owner, note.ID, model.NotePatch{Content: patch.Set("new")})
	require.NoError(t, err)
	assert.Equal(t, "n", updated.Title)
	assert.Equal(t, "new", updated.Content)

	_, err = s.notes.Update(ctx, owner, note.ID, model.NotePatch{Title: patch.Set("")})
	assert.Error(t, err)
}
