package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goalnote/internal/apperror"
	"github.com/templui/goalnote/internal/db"
	"github.com/templui/goalnote/internal/model"
	"github.com/templui/goalnote/internal/pagination"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn := filepath.Join(t.TempDir(), "repo.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	database, err := db.Init("sqlite", conn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func createUser(t *testing.T, database *sqlx.DB, email string) model.OwnerID {
	t.Helper()

	now := time.Now().UTC()
	user := &model.User{Email: email, PasswordHash: "hash", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, NewUserRepository(database).Create(context.Background(), user))
	return user.Owner()
}

func createGoals(t *testing.T, repo GoalRepository, owner model.OwnerID, n int) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for i := 1; i <= n; i++ {
		now := time.Now().UTC()
		goal := &model.Goal{Title: fmt.Sprintf("goal %d", i), CreatedAt: now, UpdatedAt: now}
		require.NoError(t, repo.Create(context.Background(), owner, goal))
		ids = append(ids, goal.ID)
	}
	return ids
}

func goalIDs(goals []*model.Goal) []int64 {
	ids := make([]int64, 0, len(goals))
	for _, g := range goals {
		ids = append(ids, g.ID)
	}
	return ids
}

func reversed(ids []int64) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}

func TestGoalPagination(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	repo := NewGoalRepository(database)
	owner := createUser(t, database, "a@x.com")
	ids := createGoals(t, repo, owner, 25)
	newestFirst := reversed(ids)

	first, err := repo.Goals(ctx, owner, pagination.Params{Size: 20, Sort: pagination.SortNewest})
	require.NoError(t, err)
	assert.Equal(t, newestFirst[:20], goalIDs(first.Items))
	assert.Equal(t, 25, first.TotalCount)
	require.NotNil(t, first.NextCursor)
	assert.Equal(t, newestFirst[20], *first.NextCursor)

	second, err := repo.Goals(ctx, owner, pagination.Params{Cursor: *first.NextCursor, Size: 20, Sort: pagination.SortNewest})
	require.NoError(t, err)
	assert.Equal(t, newestFirst[20:], goalIDs(second.Items))
	assert.Nil(t, second.NextCursor)
	assert.Equal(t, 25, second.TotalCount)
}

func TestGoalSortOrdersMirror(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	repo := NewGoalRepository(database)
	owner := createUser(t, database, "a@x.com")
	createGoals(t, repo, owner, 3)

	newest, err := repo.Goals(ctx, owner, pagination.Params{Size: 20, Sort: pagination.SortNewest})
	require.NoError(t, err)
	oldest, err := repo.Goals(ctx, owner, pagination.Params{Size: 20, Sort: pagination.SortOldest})
	require.NoError(t, err)

	assert.Equal(t, goalIDs(newest.Items), reversed(goalIDs(oldest.Items)))
}

func TestGoalTraversal(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	repo := NewGoalRepository(database)
	owner := createUser(t, database, "a@x.com")

	const n = 7
	ids := createGoals(t, repo, owner, n)

	orders := []struct {
		sort pagination.SortOrder
		want []int64
	}{
		{pagination.SortNewest, reversed(ids)},
		{pagination.SortOldest, ids},
	}

	for _, order := range orders {
		for size := 1; size <= n+1; size++ {
			t.Run(fmt.Sprintf("%s/size=%d", order.sort, size), func(t *testing.T) {
				var visited []int64
				pages := 0
				p := pagination.Params{Size: size, Sort: order.sort}
				for {
					page, err := repo.Goals(ctx, owner, p)
					require.NoError(t, err)
					require.LessOrEqual(t, len(page.Items), size)
					assert.Equal(t, n, page.TotalCount)

					visited = append(visited, goalIDs(page.Items)...)
					pages++
					require.LessOrEqual(t, pages, n+1, "traversal does not terminate")

					if page.NextCursor == nil {
						break
					}
					p.Cursor = *page.NextCursor
				}

				assert.Equal(t, order.want, visited)
				assert.Equal(t, (n+size-1)/size, pages)
			})
		}
	}
}

func TestGoalCursorRowDeletedBetweenPages(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	repo := NewGoalRepository(database)
	owner := createUser(t, database, "a@x.com")
	newestFirst := reversed(createGoals(t, repo, owner, 6))

	first, err := repo.Goals(ctx, owner, pagination.Params{Size: 3, Sort: pagination.SortNewest})
	require.NoError(t, err)
	require.NotNil(t, first.NextCursor)

	require.NoError(t, repo.Delete(ctx, owner, *first.NextCursor))

	second, err := repo.Goals(ctx, owner, pagination.Params{Cursor: *first.NextCursor, Size: 3, Sort: pagination.SortNewest})
	require.NoError(t, err)
	assert.Equal(t, newestFirst[4:], goalIDs(second.Items))
	for _, id := range goalIDs(second.Items) {
		assert.LessOrEqual(t, id, *first.NextCursor)
	}
}

func TestGoalsAreOwnerScoped(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	repo := NewGoalRepository(database)
	alice := createUser(t, database, "a@x.com")
	bob := createUser(t, database, "b@x.com")
	ids := createGoals(t, repo, alice, 2)

	page, err := repo.Goals(ctx, bob, pagination.Params{Size: 20, Sort: pagination.SortNewest})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.TotalCount)
	assert.Nil(t, page.NextCursor)

	_, err = repo.ByID(ctx, bob, ids[0])
	assert.ErrorIs(t, err, ErrGoalNotFound)

	err = repo.Update(ctx, bob, &model.Goal{ID: ids[0], Title: "stolen", UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrGoalNotFound)

	err = repo.Delete(ctx, bob, ids[0])
	assert.ErrorIs(t, err, ErrGoalNotFound)

	goal, err := repo.ByID(ctx, alice, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "goal 1", goal.Title)
}

func TestGoalCreateForcesOwner(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	repo := NewGoalRepository(database)
	alice := createUser(t, database, "a@x.com")
	bob := createUser(t, database, "b@x.com")

	now := time.Now().UTC()
	goal := &model.Goal{UserID: int64(bob), Title: "mine", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(ctx, alice, goal))

	assert.Equal(t, int64(alice), goal.UserID)
	_, err := repo.ByID(ctx, bob, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalDeleteTwice(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	repo := NewGoalRepository(database)
	owner := createUser(t, database, "a@x.com")
	ids := createGoals(t, repo, owner, 1)

	require.NoError(t, repo.Delete(ctx, owner, ids[0]))
	assert.ErrorIs(t, repo.Delete(ctx, owner, ids[0]), ErrGoalNotFound)
}

func TestListRejectsInvalidSize(t *testing.T) {
	database := openTestDB(t)
	repo := NewGoalRepository(database)
	owner := createUser(t, database, "a@x.com")

	_, err := repo.Goals(context.Background(), owner, pagination.Params{Size: 0, Sort: pagination.SortNewest})
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func createTodo(t *testing.T, repo TodoRepository, owner model.OwnerID, goalID int64, title string, done bool) *model.Todo {
	t.Helper()

	now := time.Now().UTC()
	todo := &model.Todo{GoalID: goalID, Title: title, Done: done, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, repo.Create(context.Background(), owner, todo))
	return todo
}

func TestTodoFiltersAndTotalCount(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	goals := NewGoalRepository(database)
	todos := NewTodoRepository(database)
	owner := createUser(t, database, "a@x.com")
	goalIDs := createGoals(t, goals, owner, 2)

	for i := 0; i < 5; i++ {
		createTodo(t, todos, owner, goalIDs[0], fmt.Sprintf("first %d", i), i < 2)
	}
	for i := 0; i < 3; i++ {
		createTodo(t, todos, owner, goalIDs[1], fmt.Sprintf("second %d", i), false)
	}

	goalID := goalIDs[0]
	done := true

	page, err := todos.Todos(ctx, owner, model.TodoFilter{GoalID: &goalID}, pagination.Params{Size: 2, Sort: pagination.SortNewest})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 5, page.TotalCount)
	assert.NotNil(t, page.NextCursor)

	page, err = todos.Todos(ctx, owner, model.TodoFilter{GoalID: &goalID, Done: &done}, pagination.Params{Size: 20, Sort: pagination.SortNewest})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.TotalCount)
	for _, todo := range page.Items {
		assert.True(t, todo.Done)
		assert.Equal(t, goalID, todo.GoalID)
	}

	page, err = todos.Todos(ctx, owner, model.TodoFilter{}, pagination.Params{Size: 20, Sort: pagination.SortNewest})
	require.NoError(t, err)
	assert.Equal(t, 8, page.TotalCount)
}

func TestTodoProgress(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	goals := NewGoalRepository(database)
	todos := NewTodoRepository(database)
	owner := createUser(t, database, "a@x.com")
	goalIDs := createGoals(t, goals, owner, 2)

	for i := 0; i < 5; i++ {
		createTodo(t, todos, owner, goalIDs[0], "todo", i < 2)
	}

	progress, err := todos.Progress(ctx, owner, goalIDs[0])
	require.NoError(t, err)
	assert.Equal(t, 5, progress.Total)
	assert.Equal(t, 2, progress.Completed)
	assert.InDelta(t, 0.4, progress.Progress, 1e-9)

	empty, err := todos.Progress(ctx, owner, goalIDs[1])
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.Progress)
}

func TestTodoForeignKeyViolationIsBadRequest(t *testing.T) {
	database := openTestDB(t)
	todos := NewTodoRepository(database)
	owner := createUser(t, database, "a@x.com")

	now := time.Now().UTC()
	err := todos.Create(context.Background(), owner, &model.Todo{GoalID: 9999, Title: "orphan", CreatedAt: now, UpdatedAt: now})

	require.Error(t, err)
	assert.Equal(t, apperror.KindBadRequest, apperror.KindOf(err))
}

func TestNoteLinkAndCascade(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	goals := NewGoalRepository(database)
	todos := NewTodoRepository(database)
	notes := NewNoteRepository(database)
	owner := createUser(t, database, "a@x.com")
	goalID := createGoals(t, goals, owner, 1)[0]
	todo := createTodo(t, todos, owner, goalID, "write", false)

	now := time.Now().UTC()
	note := &model.Note{GoalID: goalID, TodoID: todo.ID, Title: "n", Content: "c", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, notes.Create(ctx, owner, note))
	require.NoError(t, todos.LinkNote(ctx, owner, todo.ID, note.ID))

	linked, err := todos.ByID(ctx, owner, todo.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.NoteID)
	assert.Equal(t, note.ID, *linked.NoteID)

	require.NoError(t, notes.Delete(ctx, owner, note.ID))
	unlinked, err := todos.ByID(ctx, owner, todo.ID)
	require.NoError(t, err)
	assert.Nil(t, unlinked.NoteID)

	require.NoError(t, goals.Delete(ctx, owner, goalID))
	_, err = todos.ByID(ctx, owner, todo.ID)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestDuplicateEmail(t *testing.T) {
	database := openTestDB(t)
	createUser(t, database, "a@x.com")

	now := time.Now().UTC()
	err := NewUserRepository(database).Create(context.Background(), &model.User{
		Email: "a@x.com", PasswordHash: "hash", CreatedAt: now, UpdatedAt: now,
	})

	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestTransactionBoundRepositories(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	goals := NewGoalRepository(database)
	owner := createUser(t, database, "a@x.com")

	err := db.WithTx(ctx, database, func(tx *sqlx.Tx) error {
		createGoals(t, goals.WithTx(tx), owner, 2)
		return fmt.Errorf("abort")
	})
	require.Error(t, err)

	page, err := goals.Goals(ctx, owner, pagination.Params{Size: 20, Sort: pagination.SortNewest})
	require.NoError(t, err)
	assert.Zero(t, page.TotalCount)
}
