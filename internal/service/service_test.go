package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/templui/goalnote/internal/db"
	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/repository"
)

type testServices struct {
	db     *sqlx.DB
	tokens *TokenService
	auth   *AuthService
	users  *UserService
	goals  *GoalService
	todos  *TodoService
	notes  *NoteService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	conn := filepath.Join(t.TempDir(), "service.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	database, err := db.Init("sqlite", conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	userRepo := repository.NewUserRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	todoRepo := repository.NewTodoRepository(database)
	noteRepo := repository.NewNoteRepository(database)
	tokens := NewTokenService("test-secret", 30*time.Minute, 720*time.Hour)

	return &testServices{
		db:     database,
		tokens: tokens,
		auth:   NewAuthService(userRepo, tokens),
		users:  NewUserService(userRepo),
		goals:  NewGoalService(database, goalRepo),
		todos:  NewTodoService(database, todoRepo, goalRepo),
		notes:  NewNoteService(database, noteRepo, goalRepo, todoRepo),
	}
}

func (s *testServices) register(t *testing.T, email string) model.OwnerID {
	t.Helper()

	user, err := s.users.Register(context.Background(), email, "pw", "")
	require.NoError(t, err)
	return user.Owner()
}
